package assistant

import "strings"

// ParseInput splits a line on whitespace and lower-cases the command.
// There is no quoting: every whitespace-separated word is one argument.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

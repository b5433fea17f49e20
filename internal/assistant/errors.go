package assistant

import (
	"errors"
	"strings"

	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
)

var (
	ErrMissingArgs = errors.New(config.ErrMissingArgs)
	ErrNoBirthday  = errors.New(config.ErrNoBirthday)
)

// usageError reports a command called with the wrong number of arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string { return config.ErrMissingArgs + ": " + e.usage }
func (e *usageError) Unwrap() error { return ErrMissingArgs }

// importError marks failures of the import pipeline (I/O, network).
type importError struct {
	err error
}

func (e *importError) Error() string { return e.err.Error() }
func (e *importError) Unwrap() error { return e.err }

// requireArgs checks for exactly n arguments.
func requireArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return &usageError{usage: usage}
	}
	return nil
}

// translate turns an error returned by a handler into catalog text.
func (a *Assistant) translate(err error) string {
	var ue *usageError
	var ie *importError

	switch {
	case errors.As(err, &ue):
		return a.Catalog.Msg(config.TKeyErrUsage, map[string]any{"Usage": ue.usage})
	case errors.Is(err, book.ErrInvalidPhone):
		return a.Catalog.Msg(config.TKeyErrPhoneFormat, nil)
	case errors.Is(err, book.ErrInvalidBirthday):
		return a.Catalog.Msg(config.TKeyErrDateFormat, nil)
	case errors.Is(err, book.ErrEmptyName):
		return a.Catalog.Msg(config.TKeyErrNameEmpty, nil)
	case errors.Is(err, book.ErrContactNotFound):
		return a.Catalog.Msg(config.TKeyErrContactAbsent, nil)
	case errors.Is(err, book.ErrPhoneNotFound):
		return a.Catalog.Msg(config.TKeyErrPhoneAbsent, nil)
	case errors.Is(err, ErrNoBirthday):
		return a.Catalog.Msg(config.TKeyNoBirthday, nil)
	case errors.As(err, &ie):
		return a.Catalog.Msg(config.TKeyErrImport, map[string]any{"Error": ie.err.Error()})
	default:
		return a.Catalog.Msg(config.TKeyErrUnexpected, map[string]any{"Error": strings.TrimSpace(err.Error())})
	}
}

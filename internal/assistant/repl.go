package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/birthday-assistant/internal/config"
)

// styles colors the session when out is a terminal; on pipes and buffers the
// renderer degrades to plain text.
type styles struct {
	title  lipgloss.Style
	prompt lipgloss.Style
	failed lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		prompt: r.NewStyle().Foreground(lipgloss.Color("8")),
		failed: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Run reads commands from in until exit/close, end of input or ctx
// cancellation, writing every reply to out.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := newStyles(out)
	fmt.Fprintln(out, st.title.Render(a.Catalog.Msg(config.TKeyWelcome, nil)))

	// The scanner blocks on stdin, so it runs apart from the select below and
	// a signal can still end the session.
	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, st.prompt.Render(a.Catalog.Msg(config.TKeyPrompt, nil)))

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompAssistant)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("%s: %w", config.ErrReadInput, err)
				}
				return nil
			}
			line = l
		}

		resp := a.Handle(ctx, line)
		switch {
		case resp.Text == "":
		case resp.Failed:
			fmt.Fprintln(out, st.failed.Render(resp.Text))
		default:
			fmt.Fprintln(out, resp.Text)
		}
		if resp.Exit {
			return nil
		}
	}
}

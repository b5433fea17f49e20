package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/birthday-assistant/internal/assistant"
	"github.com/tartampluch/birthday-assistant/internal/config"
	"github.com/tartampluch/birthday-assistant/internal/engine"
	"github.com/tartampluch/birthday-assistant/internal/server"
	"golang.org/x/sync/errgroup"
)

// options holds the parsed command-line flags.
type options struct {
	debug    bool
	port     string
	reminder string
	source   string
}

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	var opts options

	rootCmd := &cobra.Command{
		Use:           config.AppCommand,
		Short:         config.CmdShort,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logCloser := setupLogging(opts.debug)
			if logCloser != nil {
				defer func() { _ = logCloser.Close() }()
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logStartupInfo()
			if err := run(ctx, opts, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	rootCmd.SetVersionTemplate(config.VersionTemplate)

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.StringVar(&opts.port, config.FlagPort, "", config.FlagDescPort)
	flags.StringVar(&opts.reminder, config.FlagReminder, "", config.FlagDescReminder)
	flags.StringVar(&opts.source, config.FlagImport, "", config.FlagDescImport)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// run wires the assistant, the optional feed server and the startup import,
// then hands the terminal to the command loop. Leaving the loop stops the
// server; a server failure ends the session.
func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	catalog, err := assistant.NewCatalog(config.DefaultLanguage)
	if err != nil {
		return err
	}

	gen := engine.NewGenerator(opts.reminder)
	bot := assistant.New(gen, catalog, assistant.KeyringCredentials{Service: config.KeyringService})

	if opts.source != "" {
		stats, err := gen.Import(ctx, bot.Book, engine.ImportSource{Location: opts.source})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, catalog.Msg(config.TKeyImported, map[string]any{"Count": stats.Imported}))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	if opts.port != "" {
		srv := server.NewFeedServer(opts.port)
		bot.Publisher = srv
		bot.Publish()
		g.Go(func() error {
			return srv.Start(gCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return bot.Run(gCtx, in, out)
	})

	return g.Wait()
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default JSON logger. Stdout belongs to the
// command loop, so logs go to a file in the user cache dir and, in debug
// mode, to stderr as well.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/reoring/fragskema/config"
	"github.com/reoring/fragskema/internal/state"
)

// set with -ldflags at release time
var version = "dev"

// initializeAppContext prepares application context before command execution
// but after command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.Load(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if lvl := cmd.String("log-level"); len(lvl) > 0 {
		env.Cfg.Logging.Level = lvl
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	env.RestoreStdLog()
	return nil
}

// Errors from subcommands are logged here, before the app context is
// destroyed. Anything that happens earlier goes to stderr from main.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Cfg != nil {
		reportError(env.Log, err)
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            config.AppName,
		Usage:           "composes schema fragments into documents and derives Go types from them",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "log-level", Usage: "override logging `LEVEL` (none, normal, debug)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "compose",
				Usage:        "Composes fragments into a single schema document",
				OnUsageError: usageErrorHandler,
				Action:       runCompose,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "root", Aliases: []string{"r"}, Usage: "fragment `ID` to compose (repeatable)"},
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "compose every top-level fragment into a bundle"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT` (json, yaml)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the document to `FILE` instead of STDOUT"},
				},
				ArgsUsage: "[PATH...]",
			},
			{
				Name:         "derive",
				Usage:        "Derives Go type declarations from composed fragments",
				OnUsageError: usageErrorHandler,
				Action:       runDerive,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "package", Aliases: []string{"p"}, Usage: "Go package `NAME` of the generated file"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write Go source to `FILE` instead of STDOUT"},
				},
				ArgsUsage: "[PATH...]",
			},
			{
				Name:         "check",
				Usage:        "Loads and composes fragments, reporting every definition error",
				OnUsageError: usageErrorHandler,
				Action:       runCheck,
				ArgsUsage:    "[PATH...]",
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps the actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "[DESTINATION]",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}

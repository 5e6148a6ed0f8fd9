package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/config"
	"github.com/reoring/fragskema/derive"
	"github.com/reoring/fragskema/internal/state"
	"github.com/reoring/fragskema/load"
	"github.com/reoring/fragskema/openapi/spec"
)

// sources loads fragments from the command arguments, the configured
// sources, or the built-in catalogue, in that order of preference.
func sources(env *state.LocalEnv, cmd *cli.Command) ([]*fragskema.Fragment, error) {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		paths = env.Cfg.Sources
	}
	if len(paths) == 0 {
		env.Log.Debug("No sources given, using built-in catalogue")
		return spec.Roots(), nil
	}
	frags, err := load.Paths(paths...)
	if err != nil {
		return nil, err
	}
	env.Log.Debug("Fragments loaded", zap.Strings("paths", paths), zap.Int("count", len(frags)))
	return frags, nil
}

func pickRoots(frags []*fragskema.Fragment, ids []string) ([]*fragskema.Fragment, error) {
	if len(ids) == 0 {
		return frags, nil
	}
	out := make([]*fragskema.Fragment, 0, len(ids))
	for _, id := range ids {
		f, ok := load.Find(frags, id)
		if !ok {
			return nil, fmt.Errorf("root fragment %q not found in sources", id)
		}
		out = append(out, f)
	}
	return out, nil
}

func runCompose(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	frags, err := sources(env, cmd)
	if err != nil {
		return err
	}
	ids := cmd.StringSlice("root")
	if len(ids) == 0 {
		ids = env.Cfg.Roots
	}
	roots, err := pickRoots(frags, ids)
	if err != nil {
		return err
	}
	opts := append(env.Cfg.ComposeOptions(), fragskema.WithLogger(env.Log))

	var doc *fragskema.Document
	if len(roots) == 1 && !cmd.Bool("all") {
		doc, err = fragskema.Compose(roots[0], opts...)
	} else {
		doc, err = fragskema.ComposeAll(roots, opts...)
	}
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if len(format) == 0 {
		format = env.Cfg.Output.Format
	}
	var data []byte
	switch format {
	case "json":
		data, err = doc.JSON(env.Cfg.Output.Pretty)
	case "yaml":
		data, err = doc.YAML()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("unable to encode document: %w", err)
	}
	dest := cmd.String("output")
	if len(dest) == 0 {
		dest = env.Cfg.Output.Path
	}
	env.Log.Info("Document composed", zap.String("root", doc.RootID), zap.Strings("fragments", doc.IDs()), zap.String("format", format))
	return writeOutput(env, dest, data)
}

func runDerive(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	pkg := cmd.String("package")
	if len(pkg) == 0 {
		pkg = env.Cfg.Derive.Package
	}
	if len(pkg) == 0 {
		return derive.ErrNoPackage
	}
	frags, err := sources(env, cmd)
	if err != nil {
		return err
	}
	doc, err := fragskema.ComposeAll(frags, fragskema.WithLogger(env.Log))
	if err != nil {
		return err
	}
	src, err := derive.Render(doc, derive.Options{Package: pkg, Names: env.Cfg.Derive.Names})
	if err != nil {
		return err
	}
	dest := cmd.String("output")
	if len(dest) == 0 {
		dest = env.Cfg.Derive.Path
	}
	env.Log.Info("Types derived", zap.String("package", pkg), zap.Int("fragments", doc.Len()))
	return writeOutput(env, dest, src)
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	frags, err := sources(env, cmd)
	if err == nil {
		var doc *fragskema.Document
		if doc, err = fragskema.ComposeAll(frags, append(env.Cfg.ComposeOptions(), fragskema.WithLogger(env.Log))...); err == nil {
			env.Log.Info("Fragments are consistent", zap.Strings("fragments", doc.IDs()))
			return nil
		}
	}
	return err
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	data, err := config.Dump(env.Cfg)
	if err != nil {
		return err
	}
	return writeOutput(env, cmd.Args().Get(0), data)
}

func writeOutput(env *state.LocalEnv, dest string, data []byte) error {
	if len(dest) == 0 {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", dest, err)
	}
	env.Log.Debug("Output written", zap.String("file", dest), zap.Int("bytes", len(data)))
	return nil
}

// reportError logs every member of an aggregated error with its code.
func reportError(log *zap.Logger, err error) {
	errs := fragskema.Errors(err)
	if len(errs) <= 1 {
		log.Error("Program ended with error", zap.String("code", codeOf(err)), zap.Error(err))
		return
	}
	for _, e := range errs {
		log.Error("Definition error", zap.String("code", codeOf(e)), zap.Error(e))
	}
	log.Error("Program ended with errors", zap.Int("count", len(errs)))
}

func codeOf(err error) string {
	if c := fragskema.CodeOf(err); len(c) > 0 {
		return c
	}
	return "error"
}

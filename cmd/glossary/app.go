package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/0xcro3dile/glossary-go/internal/adapters/codec"
	"github.com/0xcro3dile/glossary-go/internal/domain/usecases"
	"github.com/0xcro3dile/glossary-go/internal/infrastructure/config"
	"github.com/0xcro3dile/glossary-go/internal/infrastructure/logging"
)

type globalOptions struct {
	File    string `short:"f" long:"file" description:"Glossary file (.json, .yaml, .yml, .db, .sqlite, .sqlite3)" required:"true"`
	Config  string `long:"config" description:"Config file (default: user config dir/glossary/config.yaml)"`
	Verbose bool   `short:"v" long:"verbose" description:"Log at debug level"`
}

// app holds what every command shares.
type app struct {
	ctx    context.Context
	opts   globalOptions
	stdout io.Writer
	stderr io.Writer
	styles styles

	cfg    config.Config
	logger *logging.Logger
	codec  *codec.MultiCodec
}

// setup loads config and logging once per process.
func (a *app) setup() error {
	if a.logger != nil {
		return nil
	}

	path := a.opts.Config
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		GlossaryPath: a.opts.File,
		Dir:          cfg.Log.Dir,
		Level:        level,
		Fallback:     a.stderr,
	})
	if logger == nil {
		return err
	}
	if err != nil {
		logger.WithField("err", err).Warn("logging to stderr")
	}
	a.logger = logger
	a.codec = codec.NewMultiCodec()
	return nil
}

// open loads the glossary named by --file.
func (a *app) open() (*usecases.Glossary, error) {
	if err := a.setup(); err != nil {
		return nil, err
	}
	return usecases.Open(a.ctx, a.opts.File, a.codec,
		usecases.WithLogger(a.logger),
		usecases.WithDefaults(a.cfg.Metadata()),
	)
}

// commit saves g after a mutation.
func (a *app) commit(g *usecases.Glossary) error {
	if !g.Edited() {
		fmt.Fprintln(a.stdout, a.styles.dim.Render("nothing changed"))
		return nil
	}
	if err := g.Save(a.ctx); err != nil {
		return errors.Wrap(err, "save")
	}
	fmt.Fprintln(a.stdout, a.styles.dim.Render(fmt.Sprintf("saved %s", g.Path())))
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		a.logger.Close()
	}
}

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/0xcro3dile/glossary-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
	"github.com/0xcro3dile/glossary-go/internal/domain/ports"
	"github.com/0xcro3dile/glossary-go/internal/domain/usecases"
)

type keywordArg struct {
	Keyword string `positional-arg-name:"keyword" required:"yes"`
}

type showCommand struct {
	app *app
}

func (c *showCommand) Execute(args []string) error {
	defer c.app.close()
	g, err := c.app.open()
	if err != nil {
		return err
	}
	c.app.styles.renderGlossary(c.app.stdout, g.Snapshot())
	return nil
}

type lookupCommand struct {
	app  *app
	Args keywordArg `positional-args:"yes"`
}

func (c *lookupCommand) Execute(args []string) error {
	defer c.app.close()
	g, err := c.app.open()
	if err != nil {
		return err
	}
	e, err := g.Lookup(c.Args.Keyword)
	if err != nil {
		return err
	}
	c.app.styles.renderEntry(c.app.stdout, c.Args.Keyword, e)
	return nil
}

type searchCommand struct {
	app  *app
	Mode string `short:"m" long:"mode" description:"substring, exact or approx (default from config)"`
	Max  int    `short:"n" long:"max" description:"Maximum number of results; approx mode defaults to 5 (default from config)"`
	Args struct {
		Query string `positional-arg-name:"query" required:"yes"`
	} `positional-args:"yes"`
}

func (c *searchCommand) Execute(args []string) error {
	defer c.app.close()
	g, err := c.app.open()
	if err != nil {
		return err
	}

	opts, err := c.app.cfg.SearchOptions()
	if err != nil {
		return err
	}
	if c.Mode != "" {
		if opts.Mode, err = entities.ParseSearchMode(c.Mode); err != nil {
			return err
		}
	}
	if c.Max != 0 {
		opts.MaxResults = c.Max
	}

	matches, err := g.SearchWith(c.Args.Query, opts)
	if err != nil {
		return err
	}
	c.app.styles.renderMatches(c.app.stdout, opts.Mode, matches)
	return nil
}

// EntryFlags are the texts shared by add and remove.
// An empty flag value counts as not given.
type EntryFlags struct {
	Definition string `short:"d" long:"definition" description:"Definition text"`
	Reference  string `short:"r" long:"reference" description:"Reference text"`
}

func (f EntryFlags) options() []usecases.EntryOption {
	var opts []usecases.EntryOption
	if f.Definition != "" {
		opts = append(opts, usecases.Definition(f.Definition))
	}
	if f.Reference != "" {
		opts = append(opts, usecases.Reference(f.Reference))
	}
	return opts
}

type addCommand struct {
	app *app
	EntryFlags
	CaseSensitive bool `long:"case-sensitive" description:"Match the keyword case-sensitively when searching"`
	AllowEmpty    bool `long:"allow-empty" description:"Allow a new keyword without definition or reference"`
	Args          keywordArg `positional-args:"yes"`
}

func (c *addCommand) Execute(args []string) error {
	defer c.app.close()
	g, err := c.app.open()
	if err != nil {
		return err
	}

	opts := c.options()
	if c.CaseSensitive {
		opts = append(opts, usecases.CaseSensitive(true))
	}
	if c.AllowEmpty {
		opts = append(opts, usecases.AllowEmpty())
	}
	if err := g.Add(c.Args.Keyword, opts...); err != nil {
		return err
	}
	return c.app.commit(g)
}

type removeCommand struct {
	app *app
	EntryFlags
	Args keywordArg `positional-args:"yes"`
}

func (c *removeCommand) Execute(args []string) error {
	defer c.app.close()
	g, err := c.app.open()
	if err != nil {
		return err
	}
	if err := g.Remove(c.Args.Keyword, c.options()...); err != nil {
		return err
	}
	return c.app.commit(g)
}

type watchCommand struct {
	app *app
}

func (c *watchCommand) Execute(args []string) error {
	defer c.app.close()
	if err := c.app.setup(); err != nil {
		return err
	}

	w, err := filewatcher.NewFSNotifyWatcher(c.app.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	events, err := w.Watch(c.app.ctx, c.app.opts.File)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.app.stdout, "watching %s\n", c.app.opts.File)

	for ev := range events {
		c.handle(ev)
	}
	return nil
}

// handle reports one change of the watched file.
func (c *watchCommand) handle(ev ports.FileEvent) {
	log := c.app.logger.WithFields(logrus.Fields{
		"path":      ev.Path,
		"operation": ev.Operation.String(),
	})

	if ev.Operation == ports.FileDeleted {
		log.Warn("glossary file removed")
		fmt.Fprintf(c.app.stdout, "%s %s\n", c.app.styles.warn.Render("removed"), ev.Path)
		return
	}

	g, err := c.app.open()
	if err != nil {
		log.WithField("err", err).Error("failed to reload glossary")
		fmt.Fprintf(c.app.stdout, "%s %v\n", c.app.styles.warn.Render("invalid"), err)
		return
	}
	log.WithField("keywords", g.Len()).Info("reloaded glossary")
	fmt.Fprintf(c.app.stdout, "%s %s: %d keywords\n", c.app.styles.label.Render(ev.Operation.String()), ev.Path, g.Len())
}

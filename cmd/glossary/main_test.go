package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/glossary-go/internal/domain/ports"
)

type cli struct {
	t      *testing.T
	dir    string
	file   string
	config string
}

func newCLI(t *testing.T, name string) *cli {
	dir := t.TempDir()
	return &cli{
		t:      t,
		dir:    dir,
		file:   filepath.Join(dir, name),
		config: filepath.Join(dir, "config.yaml"),
	}
}

func (c *cli) run(args ...string) (string, string, int) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-f", c.file, "--config", c.config}, args...)
	code := run(context.Background(), full, &stdout, &stderr, false)
	return stdout.String(), stderr.String(), code
}

func TestCLI_AddThenLookup(t *testing.T) {
	c := newCLI(t, "animals.json")

	out, errOut, code := c.run("add", "cat", "-d", "A small mammal", "-r", "felis catus")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "saved")
	assert.FileExists(t, c.file)

	out, errOut, code = c.run("lookup", "cat")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, "1. A small mammal")
	assert.Contains(t, out, "see: felis catus")

	assert.FileExists(t, filepath.Join(c.dir, "animals.log"))
}

func TestCLI_AddWithoutContent(t *testing.T) {
	c := newCLI(t, "g.json")

	_, errOut, code := c.run("add", "cat")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid argument")
	assert.NoFileExists(t, c.file)

	_, errOut, code = c.run("add", "cat", "--allow-empty", "--case-sensitive")
	require.Equal(t, 0, code, errOut)

	out, _, _ := c.run("show")
	assert.Contains(t, out, "cat (case-sensitive)")
}

func TestCLI_AddNothingToExisting(t *testing.T) {
	c := newCLI(t, "g.json")
	_, _, code := c.run("add", "cat", "-d", "mammal")
	require.Equal(t, 0, code)

	out, _, code := c.run("add", "cat")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "nothing changed")
}

func TestCLI_LookupMissing(t *testing.T) {
	c := newCLI(t, "g.json")

	_, errOut, code := c.run("lookup", "dog")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not found")
}

func TestCLI_Remove(t *testing.T) {
	c := newCLI(t, "g.yaml")
	c.run("add", "cat", "-d", "one")
	c.run("add", "cat", "-d", "two")

	_, errOut, code := c.run("remove", "cat", "-d", "one")
	require.Equal(t, 0, code, errOut)

	out, _, _ := c.run("lookup", "cat")
	assert.Contains(t, out, "1. two")
	assert.NotContains(t, out, "one")

	_, _, code = c.run("remove", "cat", "-d", "three")
	assert.Equal(t, 1, code)

	_, _, code = c.run("remove", "cat")
	require.Equal(t, 0, code)

	out, _, _ = c.run("show")
	assert.Contains(t, out, "(no keywords)")
}

func TestCLI_Search(t *testing.T) {
	c := newCLI(t, "g.db")
	for _, kw := range []string{"keyword", "keywords", "other"} {
		_, errOut, code := c.run("add", kw, "-d", "d")
		require.Equal(t, 0, code, errOut)
	}

	out, _, code := c.run("search", "WORD")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "keywords")
	assert.NotContains(t, out, "other")

	out, _, code = c.run("search", "--mode", "approx", "-n", "1", "keyword")
	require.Equal(t, 0, code)
	assert.Equal(t, "[0] keyword\n", out)

	out, _, _ = c.run("search", "missing")
	assert.Contains(t, out, "no matches")

	_, errOut, code := c.run("search", "--mode", "sideways", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid argument")
}

func TestCLI_ConfigDefaults(t *testing.T) {
	c := newCLI(t, "g.json")
	require.NoError(t, os.WriteFile(c.config, []byte("defaults:\n  title: Animals\n  author: someone\n"), 0o644))

	out, errOut, code := c.run("show")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Animals")
	assert.Contains(t, out, "author: someone")
}

func TestCLI_BadConfig(t *testing.T) {
	c := newCLI(t, "g.json")
	require.NoError(t, os.WriteFile(c.config, []byte("log: ["), 0o644))

	_, _, code := c.run("show")
	assert.Equal(t, 1, code)
}

func TestCLI_FlagErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"show"}, &stdout, &stderr, false)
	assert.Equal(t, 1, code, "file flag is required")

	stdout.Reset()
	code = run(context.Background(), []string{"--help"}, &stdout, &stderr, false)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Usage")
}

func TestWatchCommand_Handle(t *testing.T) {
	c := newCLI(t, "g.json")
	c.run("add", "cat", "-d", "mammal")

	var stdout bytes.Buffer
	a := &app{
		ctx:    context.Background(),
		opts:   globalOptions{File: c.file, Config: c.config},
		stdout: &stdout,
		stderr: &stdout,
		styles: newStyles(false),
	}
	require.NoError(t, a.setup())
	defer a.close()
	cmd := &watchCommand{app: a}

	cmd.handle(ports.FileEvent{Path: c.file, Operation: ports.FileModified})
	assert.Contains(t, stdout.String(), "modified "+c.file+": 1 keywords")

	require.NoError(t, os.WriteFile(c.file, []byte("{"), 0o644))
	cmd.handle(ports.FileEvent{Path: c.file, Operation: ports.FileModified})
	assert.Contains(t, stdout.String(), "invalid")

	cmd.handle(ports.FileEvent{Path: c.file, Operation: ports.FileDeleted})
	assert.Contains(t, stdout.String(), "removed "+c.file)
}

func TestCLI_SearchHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"search", "--help"}, &stdout, &stderr, false)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Maximum number of results")
	assert.NotContains(t, stdout.String(), "Result limit for approx mode")
}

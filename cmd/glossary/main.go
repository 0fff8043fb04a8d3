// Command glossary reads and edits keyword glossaries stored as JSON, YAML
// or SQLite files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, term.IsTerminal(int(os.Stdout.Fd())))
	stop()
	os.Exit(code)
}

// run parses args and executes the chosen command. It returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, color bool) int {
	a := &app{
		ctx:    ctx,
		stdout: stdout,
		stderr: stderr,
		styles: newStyles(color),
	}

	parser := newParser(a)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintf(stderr, "glossary: %v\n", err)
		return 1
	}
	return 0
}

func newParser(a *app) *flags.Parser {
	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "glossary"

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"show", "Print the whole glossary", "Print metadata and every keyword in file order.", &showCommand{app: a}},
		{"lookup", "Print one keyword", "Print the definitions and references of a keyword.", &lookupCommand{app: a}},
		{"search", "Find keywords", "Find keywords by substring, exact match or edit distance.", &searchCommand{app: a}},
		{"add", "Add a keyword or append to it", "Add a keyword, or append a definition and a reference to an existing one. The file is saved immediately.", &addCommand{app: a}},
		{"remove", "Remove a keyword or one of its texts", "Remove a keyword, or the first matching definition and reference of it. The file is saved immediately.", &removeCommand{app: a}},
		{"watch", "Follow changes to the file", "Reload and summarize the glossary whenever another process changes its file.", &watchCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			panic(err)
		}
	}
	return parser
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

type styles struct {
	title   lipgloss.Style
	keyword lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	warn    lipgloss.Style
}

// newStyles returns plain styles unless color is set.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, keyword: plain, label: plain, dim: plain, warn: plain}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		keyword: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		dim:     lipgloss.NewStyle().Faint(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (s styles) renderGlossary(w io.Writer, doc *entities.Document) {
	fmt.Fprintln(w, s.title.Render(doc.Title))
	fmt.Fprintf(w, "%s %s\n", s.label.Render("author:"), doc.Author)
	fmt.Fprintf(w, "%s %s\n", s.label.Render("revised:"), doc.RevisionDate)
	if doc.Description != "" {
		fmt.Fprintln(w, doc.Description)
	}
	fmt.Fprintln(w)

	if len(doc.Contents) == 0 {
		fmt.Fprintln(w, s.dim.Render("(no keywords)"))
		return
	}
	for _, kv := range doc.Contents {
		e := kv.Entry
		s.renderEntry(w, kv.Keyword, &e)
	}
}

func (s styles) renderEntry(w io.Writer, keyword string, e *entities.Entry) {
	head := s.keyword.Render(keyword)
	if e.CaseSensitive {
		head += " " + s.dim.Render("(case-sensitive)")
	}
	fmt.Fprintln(w, head)

	for i, d := range e.Definitions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, d)
	}
	if len(e.References) > 0 {
		fmt.Fprintf(w, "  %s %s\n", s.label.Render("see:"), strings.Join(e.References, ", "))
	}
}

func (s styles) renderMatches(w io.Writer, mode entities.SearchMode, matches []entities.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, s.dim.Render("no matches"))
		return
	}
	for _, m := range matches {
		if mode == entities.SearchApprox {
			fmt.Fprintf(w, "%s %s\n", s.dim.Render(fmt.Sprintf("[%d]", m.Distance)), s.keyword.Render(m.Keyword))
			continue
		}
		s.renderEntry(w, m.Keyword, m.Entry)
	}
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/nestjam/yap-sequencer/internal/api"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

func newTable(w io.Writer, headers ...any) table.Table {
	tbl := table.New(headers...).WithWriter(w)

	tbl.WithFirstColumnFormatter(func(format string, vals ...any) string {
		return boldStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)
	tbl.WithWidthFunc(lipgloss.Width)

	return tbl
}

func printSequences(w io.Writer, sequences []api.Sequence) {
	tbl := newTable(w, "NAME", "CURRENT", "COUNT", "ALPHABET", "MIN LENGTH")
	for _, seq := range sequences {
		tbl.AddRow(seq.Name, seq.Current, seq.Count, seq.Alphabet, strconv.Itoa(seq.MinLength))
	}
	tbl.Print()
}

func printSequence(w io.Writer, seq api.Sequence) {
	printSequences(w, []api.Sequence{seq})
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/grammars"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Show the ACTION and GOTO tables of a grammar",
		Example: `  lrzero table --grammar dangling --html dangling.html`,
		Args:    cobra.NoArgs,
		RunE:    runTable,
	}
	tableFlags.html = cmd.Flags().String("html", "", "export the tables to an HTML file")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	wb, err := loadGrammar(*rootFlags.grammar)
	if err != nil {
		return err
	}
	table := wb.lrgen.Table()
	header := []string{"state"}
	for _, t := range table.Terminals() {
		header = append(header, t.String())
	}
	for _, N := range table.NonTerminals() {
		header = append(header, N)
	}
	data := pterm.TableData{header}
	for q := 0; q < table.StateCount(); q++ {
		row := []string{fmt.Sprintf("%d", q)}
		for _, t := range table.Terminals() {
			row = append(row, actionCell(table, q, t))
		}
		for _, N := range table.NonTerminals() {
			if p, ok := table.Goto(q, N); ok {
				row = append(row, fmt.Sprintf("%d", p))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	for r, rule := range table.Rules() {
		pterm.Printfln("r%d = %v", r, rule)
	}
	for _, c := range table.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	if *tableFlags.html != "" {
		return writeFile(*tableFlags.html, func(f *os.File) error {
			if err := lr.ActionTableAsHTML(table, f); err != nil {
				return err
			}
			io.WriteString(f, "<p>\n")
			return lr.GotoTableAsHTML(table, f)
		})
	}
	return nil
}

func actionCell(table *lr.Table[grammars.Tok, string], q int, t grammars.Tok) string {
	a1, a2 := table.Actions(q, t)
	switch {
	case a1.Kind == lr.Error:
		return ""
	case a2.Kind == lr.Error:
		return a1.String()
	}
	return a1.String() + "/" + a2.String()
}

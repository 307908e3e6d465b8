package main

import (
	"fmt"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/grammars"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "first",
		Short: "Show FIRST sets and nullable non-terminals of a grammar",
		Args:  cobra.NoArgs,
		RunE:  runFirst,
	}
	rootCmd.AddCommand(cmd)
}

func runFirst(cmd *cobra.Command, args []string) error {
	g, err := grammars.ByName(*rootFlags.grammar)
	if err != nil {
		return err
	}
	ga := lr.Analysis(g)
	data := pterm.TableData{{"non-terminal", "FIRST", "nullable"}}
	for _, N := range g.NonTerminals() {
		first := ga.First(lr.NonTerm[grammars.Tok](N))
		data = append(data, []string{N, fmt.Sprintf("%v", first), fmt.Sprintf("%v", ga.Nullable(N))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

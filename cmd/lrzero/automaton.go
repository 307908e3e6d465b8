package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var automatonFlags = struct {
	dot *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "automaton",
		Short:   "Show the CFSM of a grammar",
		Example: `  lrzero automaton --grammar parens --dot parens.dot`,
		Args:    cobra.NoArgs,
		RunE:    runAutomaton,
	}
	automatonFlags.dot = cmd.Flags().String("dot", "", "export the CFSM to a Graphviz file")
	rootCmd.AddCommand(cmd)
}

func runAutomaton(cmd *cobra.Command, args []string) error {
	wb, err := loadGrammar(*rootFlags.grammar)
	if err != nil {
		return err
	}
	cfsm := wb.lrgen.CFSM()
	ll := pterm.LeveledList{pterm.LeveledListItem{Level: 0, Text: wb.g.Name}}
	for _, s := range cfsm.States() {
		label := fmt.Sprintf("state %d", s.ID)
		if s.Accept {
			label += " (accept)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: label})
		for _, i := range s.Items().Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: i.String()})
		}
		for _, e := range cfsm.EdgesFrom(s) {
			ll = append(ll, pterm.LeveledListItem{
				Level: 2,
				Text:  fmt.Sprintf("-- %v --> %d", e.Label, e.To.ID),
			})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		return err
	}
	if *automatonFlags.dot != "" {
		return writeFile(*automatonFlags.dot, func(f *os.File) error {
			return cfsm.CFSM2GraphViz(f)
		})
	}
	return nil
}

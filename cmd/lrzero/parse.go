package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/lrzero/lr/grammars"
	"github.com/npillmayer/lrzero/lr/lr0"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	steps *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <input>",
		Short:   "Parse an input string",
		Example: `  lrzero parse --steps '((1)+(1+1))$'`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.steps = cmd.Flags().Bool("steps", false, "show every step of the parse")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	wb, err := loadGrammar(*rootFlags.grammar)
	if err != nil {
		return err
	}
	p, err := wb.parser(*parseFlags.steps)
	if err != nil {
		return err
	}
	if err := p.parse(strings.Join(args, " ")); err != nil {
		os.Exit(2) // error has been displayed
	}
	return nil
}

// interp parses input strings for a grammar and displays the results.
type interp struct {
	wb     *workbench
	lexer  *scanner.LMAdapter[grammars.Tok]
	parser *lr0.Parser[grammars.Tok, string]
	steps  pterm.TableData
}

func (wb *workbench) parser(showSteps bool) (*interp, error) {
	lex, err := grammars.Lexer()
	if err != nil {
		return nil, err
	}
	intp := &interp{wb: wb, lexer: lex}
	var opts []lr0.Option
	if showSteps {
		opts = append(opts, lr0.WithStepHandler(intp.recordStep))
	}
	intp.parser = lr0.NewParser(wb.lrgen.Table(), opts...)
	return intp, nil
}

func (intp *interp) recordStep(step lr0.Step) {
	if intp.steps == nil {
		intp.steps = pterm.TableData{{"step", "stack", "lookahead", "remaining", "action"}}
	}
	action := step.Action.String()
	if step.Rule != "" {
		action += " " + step.Rule
	}
	intp.steps = append(intp.steps, []string{
		fmt.Sprintf("%d", step.N),
		fmt.Sprintf("%v", step.Stack),
		step.Lookahead,
		fmt.Sprintf("%d", step.Remaining),
		action,
	})
}

func (intp *interp) parse(input string) error {
	tokens, err := intp.lexer.Tokenize(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	tracer().Debugf("input tokens = %v", tokens)
	intp.steps = nil
	result, err := intp.parser.Parse(tokens)
	if intp.steps != nil {
		pterm.DefaultTable.WithHasHeader().WithData(intp.steps).Render()
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	pterm.Success.Println("accepted")
	printResult(result)
	return nil
}

func printResult(result interface{}) {
	node, ok := result.(*grammars.Node)
	if !ok {
		pterm.Info.Printfln("%v", result)
		return
	}
	pterm.Info.Println(node.String())
	var ll pterm.LeveledList
	for _, line := range node.Lines() {
		ll = append(ll, pterm.LeveledListItem{Level: line.Depth, Text: line.Label})
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	if v, err := node.Eval(); err == nil {
		pterm.Info.Printfln("value = %d", v)
	}
}

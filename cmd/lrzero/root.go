package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/grammars"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	grammar *string
	trace   *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lrzero",
	Short: "Construct and exercise LR(0) parser tables",
	Long: `lrzero provides the following features for a set of example grammars:
- Displays the characteristic finite state machine (CFSM) and exports it to Graphviz.
- Displays the ACTION and GOTO tables, including conflicts, and exports them to HTML.
- Parses input and displays the resulting abstract syntax tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		initTracing(*rootFlags.trace)
	},
}

func init() {
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "parens",
		fmt.Sprintf("example grammar %v", grammars.Names()))
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error",
		"trace level [Debug|Info|Error]")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// tracer traces to the global syntax tracer.
func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// All packages of this module select their tracers by key. We route all of
// them to a single Go logger.
func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return gtrace.SyntaxTracer
	}))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
	tracer().Infof("Trace level is %s", level)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// workbench bundles a grammar with its CFSM and tables.
type workbench struct {
	g     *grammars.Grammar
	lrgen *lr.TableGenerator[grammars.Tok, string]
}

func loadGrammar(name string) (*workbench, error) {
	g, err := grammars.ByName(name)
	if err != nil {
		return nil, err
	}
	g.Dump()
	lrgen := lr.NewTableGenerator(g)
	if err := lrgen.CreateTables(); err != nil {
		return nil, fmt.Errorf("cannot create tables for grammar %q: %w", g.Name, err)
	}
	if lrgen.HasConflicts {
		pterm.Warning.Printfln("grammar %q is not LR(0): %d conflict(s)", g.Name,
			len(lrgen.Table().Conflicts()))
	}
	return &workbench{g: g, lrgen: lrgen}, nil
}

func writeFile(name string, export func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export(f); err != nil {
		return err
	}
	pterm.Success.Printfln("written %s", name)
	return nil
}

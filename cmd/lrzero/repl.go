package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	init  *string
	steps *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Long: `repl reads input lines and parses each of them with the selected grammar.
Quit with <ctrl>D or by entering ":quit".`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	replFlags.init = cmd.Flags().String("init", "", "file with input lines to parse before going interactive")
	replFlags.steps = cmd.Flags().Bool("steps", false, "show every step of a parse")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	wb, err := loadGrammar(*rootFlags.grammar)
	if err != nil {
		return err
	}
	intp, err := wb.parser(*replFlags.steps)
	if err != nil {
		return err
	}
	rl, err := readline.New("lrzero> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	intp.loadInitFile(*replFlags.init)
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			break
		}
		intp.parse(line) // errors have been displayed
	}
	pterm.Println("Good bye!")
	return nil
}

func (intp *interp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pterm.Info.Println(line)
		intp.parse(line)
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("error while reading init file: %v", err)
	}
}

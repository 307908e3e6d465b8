/*
Command lrzero is a workbench for LR(0) grammars. It constructs the CFSM and
parser tables for one of the example grammars of package lr/grammars, displays
them, and parses input, either given on the command line or interactively.

	lrzero table --grammar parens --html parens.html
	lrzero automaton --grammar dangling --dot dangling.dot
	lrzero parse --steps '((1)+(1+1))$'
	lrzero first --grammar balanced
	lrzero repl --grammar parens

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

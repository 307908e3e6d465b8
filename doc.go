/*
Package lrzero is an LR(0) parsing toolbox.

It constructs the characteristic finite state machine (CFSM) of a grammar,
compiles it into ACTION and GOTO tables and runs a table-driven shift-reduce
parser over a token sequence, calling semantic actions on every reduction.
Package structure is as follows:

■ lr: Package lr implements grammars, LR(0) items, the CFSM construction and
the table compiler, together with exports to Graphviz and HTML.

■ lr/lr0: Package lr0 implements the parser runtime.

■ lr/sparse: Package sparse implements the sparse matrices backing the parser tables.

■ lr/scanner: Package scanner adapts lexmachine to produce token sequences.

■ lr/grammars: Package grammars holds a few small example grammars.

The base package contains data types which are used throughout all the other packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lrzero

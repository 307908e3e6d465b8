/*
Package grammars provides example grammars for LR(0) parsing, together with
semantic actions which build a small abstract syntax tree.

All grammars share the terminal type Tok and use strings for non-terminals.
A lexmachine based scanner for all terminals is provided by Lexer().

	g, _ := grammars.Parens()
	lrgen := lr.NewTableGenerator(g)
	lrgen.CreateTables()
	p := lr0.NewParser(lrgen.Table())
	tokens, _ := lexer.Tokenize("((1)+(1+1))$")
	ast, err := p.Parse(tokens)     // ast is a *grammars.Node

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammars

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrzero/lr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Tok is the terminal type of the example grammars.
type Tok int

// Terminals of the example grammars.
const (
	EOF Tok = iota
	LParen
	RParen
	Plus
	One
	If
	Else
	A
	X
)

var tokNames = map[Tok]string{
	EOF:    "$",
	LParen: "(",
	RParen: ")",
	Plus:   "+",
	One:    "1",
	If:     "if",
	Else:   "else",
	A:      "a",
	X:      "x",
}

func (t Tok) String() string {
	if s, ok := tokNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tok(%d)", int(t))
}

// Grammar is the type of the example grammars.
type Grammar = lr.Grammar[Tok, string]

// Value is the type of the example grammars' value stack entries.
type Value = lr.Value[Tok]

// --- AST -------------------------------------------------------------------

// Node is a node of an abstract syntax tree. Leafs carry the lexeme of a token.
type Node struct {
	Op       string
	Lexeme   string
	Children []*Node
}

// Leaf creates a leaf node.
func Leaf(lexeme string) *Node {
	return &Node{Lexeme: lexeme}
}

// Op creates an inner node.
func Op(op string, children ...*Node) *Node {
	return &Node{Op: op, Children: children}
}

// IsLeaf is true for nodes without an operator.
func (n *Node) IsLeaf() bool {
	return n.Op == ""
}

// String returns an s-expression for n.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsLeaf() {
		return n.Lexeme
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.Op)
	for _, ch := range n.Children {
		b.WriteString(" ")
		b.WriteString(ch.String())
	}
	b.WriteString(")")
	return b.String()
}

// Eval evaluates an arithmetic tree of the parenthesis grammar.
func (n *Node) Eval() (int, error) {
	if n.IsLeaf() {
		if n.Lexeme == "1" {
			return 1, nil
		}
		return 0, fmt.Errorf("cannot evaluate leaf %q", n.Lexeme)
	}
	switch n.Op {
	case "+":
		sum := 0
		for _, ch := range n.Children {
			v, err := ch.Eval()
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	case "()":
		if len(n.Children) == 1 {
			return n.Children[0].Eval()
		}
	}
	return 0, fmt.Errorf("cannot evaluate %v", n)
}

// Lines returns n as a list of (depth, label) pairs, in pre-order.
func (n *Node) Lines() []Line {
	var lines []Line
	var walk func(*Node, int)
	walk = func(n *Node, depth int) {
		label := n.Lexeme
		if !n.IsLeaf() {
			label = n.Op
		}
		lines = append(lines, Line{Depth: depth, Label: label})
		for _, ch := range n.Children {
			walk(ch, depth+1)
		}
	}
	walk(n, 0)
	return lines
}

// Line is an entry of a pre-order list of tree nodes.
type Line struct {
	Depth int
	Label string
}

// --- Semantic actions ------------------------------------------------------

// leaf wraps the lexeme of a single terminal.
func leaf(args []Value) interface{} {
	return Leaf(args[0].Token().Lexeme())
}

// pass hands the value of the single RHS symbol through.
func pass(args []Value) interface{} {
	return args[0].Value()
}

// paren wraps the value of the 2nd RHS symbol, i.e. the one in parens.
func paren(args []Value) interface{} {
	return Op("()", args[1].Value().(*Node))
}

func add(args []Value) interface{} {
	return Op("+", args[0].Value().(*Node), args[2].Value().(*Node))
}

// --- Grammars --------------------------------------------------------------

// Parens builds the grammar
//
//	S' ➞ S $
//	S  ➞ ( E )
//	E  ➞ E + P
//	E  ➞ P
//	P  ➞ ( E )
//	P  ➞ 1
//
// This grammar is LR(0). Parsing yields an AST of *Node.
func Parens() (*Grammar, error) {
	b := lr.NewGrammarBuilder[Tok, string]("Parens")
	b.LHS("S'").N("S").EOF(EOF)
	b.LHS("S").T(LParen).N("E").T(RParen).Action(paren).End()
	b.LHS("E").N("E").T(Plus).N("P").Action(add).End()
	b.LHS("E").N("P").Action(pass).End()
	b.LHS("P").T(LParen).N("E").T(RParen).Action(paren).End()
	b.LHS("P").T(One).Action(leaf).End()
	return b.Grammar()
}

// DanglingElse builds the grammar
//
//	S' ➞ X $
//	X  ➞ if X
//	X  ➞ if X else X
//	X  ➞ a
//
// This grammar is not LR(0): it has a shift/reduce conflict on 'else'.
// With the default conflict resolution an 'else' binds to the innermost 'if'.
func DanglingElse() (*Grammar, error) {
	b := lr.NewGrammarBuilder[Tok, string]("Dangling Else")
	b.LHS("S'").N("X").EOF(EOF)
	b.LHS("X").T(If).N("X").Action(func(args []Value) interface{} {
		return Op("if", args[1].Value().(*Node))
	}).End()
	b.LHS("X").T(If).N("X").T(Else).N("X").Action(func(args []Value) interface{} {
		return Op("if-else", args[1].Value().(*Node), args[3].Value().(*Node))
	}).End()
	b.LHS("X").T(A).Action(leaf).End()
	return b.Grammar()
}

// ReduceReduce builds the grammar
//
//	S' ➞ S $
//	S  ➞ A
//	S  ➞ B
//	A  ➞ x
//	B  ➞ x
//
// This grammar has a reduce/reduce conflict after reading 'x'.
func ReduceReduce() (*Grammar, error) {
	b := lr.NewGrammarBuilder[Tok, string]("Reduce/Reduce")
	b.LHS("S'").N("S").EOF(EOF)
	b.LHS("S").N("A").Action(pass).End()
	b.LHS("S").N("B").Action(pass).End()
	b.LHS("A").T(X).Action(func(args []Value) interface{} {
		return Op("A", Leaf(args[0].Token().Lexeme()))
	}).End()
	b.LHS("B").T(X).Action(func(args []Value) interface{} {
		return Op("B", Leaf(args[0].Token().Lexeme()))
	}).End()
	return b.Grammar()
}

// Balanced builds a grammar with an epsilon production:
//
//	S' ➞ S $
//	S  ➞ ( S ) S
//	S  ➞
//
// It recognizes balanced parentheses. It is not LR(0), but the default conflict
// resolution parses it correctly. Parsing yields the number of pairs of parens.
func Balanced() (*Grammar, error) {
	b := lr.NewGrammarBuilder[Tok, string]("Balanced")
	b.LHS("S'").N("S").EOF(EOF)
	b.LHS("S").T(LParen).N("S").T(RParen).N("S").Action(func(args []Value) interface{} {
		return 1 + args[1].Value().(int) + args[3].Value().(int)
	}).End()
	b.LHS("S").Action(func(args []Value) interface{} {
		return 0
	}).Epsilon()
	return b.Grammar()
}

var registry = map[string]func() (*Grammar, error){
	"parens":   Parens,
	"dangling": DanglingElse,
	"rr":       ReduceReduce,
	"balanced": Balanced,
}

// Names returns the names of all example grammars, sorted.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// ByName returns an example grammar by name.
func ByName(name string) (*Grammar, error) {
	create, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("no example grammar %q; known grammars are %v", name, Names())
	}
	return create()
}

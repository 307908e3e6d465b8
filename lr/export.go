package lr

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"

	"golang.org/x/exp/constraints"
)

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format. Edges on terminals are
// drawn solid, edges on non-terminals bold. The accepting state is shaded.
func (c *CFSM[T, NT]) CFSM2GraphViz(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(bw, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	for _, e := range c.Edges() {
		style := "solid"
		if !e.Label.IsTerminal() {
			style = "bold"
		}
		fmt.Fprintf(bw, "s%03d -> s%03d [style=%s, label=\"%s\"]\n", e.From.ID, e.To.ID,
			style, dotEscape(e.Label.String()))
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func nodecolor[T, NT constraints.Ordered](state *CFSMState[T, NT]) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz[T, NT constraints.Ordered](S *ItemSet[T, NT]) string {
	var b strings.Builder
	for k, i := range S.Items() {
		if k > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(dotEscape(i.String()))
	}
	b.WriteString("\\l")
	return b.String()
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}

// --- HTML ------------------------------------------------------------------

// ActionTableAsHTML exports the ACTION table in HTML format. Cells with a
// shift/reduce conflict show both actions.
func ActionTableAsHTML[T, NT constraints.Ordered](table *Table[T, NT], w io.Writer) error {
	if table == nil {
		return fmt.Errorf("ACTION table not yet created, cannot export to HTML")
	}
	header := make([]string, len(table.terminals))
	for j, t := range table.terminals {
		header[j] = fmt.Sprintf("%v", t)
	}
	return parserTableAsHTML(w, "ACTION", table.actions.ValueCount(), table.StateCount(), header,
		func(q, j int) string {
			a1, a2 := table.Actions(q, table.terminals[j])
			if a1.Kind == Error {
				return ""
			} else if a2.Kind == Error {
				return a1.String()
			}
			return a1.String() + "/" + a2.String()
		})
}

// GotoTableAsHTML exports the GOTO table in HTML format.
func GotoTableAsHTML[T, NT constraints.Ordered](table *Table[T, NT], w io.Writer) error {
	if table == nil {
		return fmt.Errorf("GOTO table not yet created, cannot export to HTML")
	}
	header := make([]string, len(table.nonterminals))
	for j, N := range table.nonterminals {
		header[j] = NonTerm[T](N).String()
	}
	return parserTableAsHTML(w, "GOTO", table.gotos.ValueCount(), table.StateCount(), header,
		func(q, j int) string {
			if p, ok := table.Goto(q, table.nonterminals[j]); ok {
				return fmt.Sprintf("%d", p)
			}
			return ""
		})
}

func parserTableAsHTML(w io.Writer, tname string, size int, states int, header []string,
	cell func(q, j int) string) error {
	//
	bw := bufio.NewWriter(w)
	bw.WriteString("<html><body>\n")
	fmt.Fprintf(bw, "%s table of size = %d<p>", tname, size)
	bw.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	bw.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, h := range header {
		fmt.Fprintf(bw, "<td>%s</td>", html.EscapeString(h))
	}
	bw.WriteString("</tr>\n")
	for q := 0; q < states; q++ {
		fmt.Fprintf(bw, "<tr><td>state %d</td>\n", q)
		for j := range header {
			td := cell(q, j)
			if td == "" {
				td = "&nbsp;"
			}
			fmt.Fprintf(bw, "<td>%s</td>\n", td)
		}
		bw.WriteString("</tr>\n")
	}
	bw.WriteString("</table></body></html>\n")
	return bw.Flush()
}

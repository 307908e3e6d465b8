package lr

import (
	"fmt"

	"github.com/npillmayer/lrzero/lr/sparse"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// === Parser Actions ========================================================

// ActionKind is the kind of an ACTION table entry.
type ActionKind int8

// Kinds of parser actions. Error is the zero value, i.e. an empty table cell.
const (
	Error ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	}
	return "error"
}

// Action is an entry of an ACTION table. For shift actions Target is the state
// to shift to, for reduce actions it is an index into the table's rule table.
type Action struct {
	Kind   ActionKind
	Target int
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Target)
	case Accept:
		return "acc"
	}
	return "err"
}

// Actions are stored in a sparse matrix as target<<2 | kind. An empty cell
// decodes to Error.
func (a Action) encode() int32 {
	return int32(a.Target<<2 | int(a.Kind))
}

func decodeAction(v int32) Action {
	if v == sparse.DefaultNullValue {
		return Action{Kind: Error}
	}
	return Action{Kind: ActionKind(v & 3), Target: int(v >> 2)}
}

// === Conflicts =============================================================

// ConflictKind classifies table conflicts.
type ConflictKind int8

// Conflicts detected during table construction.
const (
	ShiftReduce ConflictKind = iota + 1
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict is a diagnostic about a state which is not LR(0). Conflicts do not
// prevent a table from being built: for reduce/reduce conflicts the first
// complete item (in item order) is chosen, for shift/reduce conflicts the
// shift action wins on the conflicting terminal.
type Conflict[T, NT constraints.Ordered] struct {
	Kind     ConflictKind
	State    int            // state ID
	Terminal T              // conflicting terminal (shift/reduce only)
	Rules    []*Rule[T, NT] // rules involved in reductions
	Chosen   Action         // the action which has been entered into the table
}

func (c Conflict[T, NT]) String() string {
	if c.Kind == ShiftReduce {
		return fmt.Sprintf("%s conflict in state %d on %v: %v vs. reduce %v",
			c.Kind, c.State, c.Terminal, c.Chosen, c.Rules[0])
	}
	return fmt.Sprintf("%s conflict in state %d: %v, chosen %v", c.Kind, c.State, c.Rules, c.Chosen)
}

// === Tables ================================================================

// Table holds the compiled ACTION and GOTO tables for a grammar, together with
// the rule table referenced by reduce actions. A Table is immutable after
// construction and may be shared between any number of concurrent parsers.
type Table[T, NT constraints.Ordered] struct {
	actions      *sparse.IntMatrix // states x terminals
	gotos        *sparse.IntMatrix // states x non-terminals
	terminals    []T
	nonterminals []NT
	tcols        map[T]int
	ntcols       map[NT]int
	rules        []*Rule[T, NT] // dense rule table, indexed by reduce actions
	initial      int
	end          T
	augStart     NT
	start        NT
	conflicts    []Conflict[T, NT]
}

// Action returns the primary action for state and terminal t. If t is not part of
// the table's alphabet, defined is false.
func (tbl *Table[T, NT]) Action(state int, t T) (action Action, defined bool) {
	col, ok := tbl.tcols[t]
	if !ok || state < 0 || state >= tbl.actions.M() {
		return Action{Kind: Error}, false
	}
	return decodeAction(tbl.actions.Value(state, col)), true
}

// Actions returns both actions stored for state and terminal t. The second one
// is set for cells with a shift/reduce conflict and holds the displaced action.
func (tbl *Table[T, NT]) Actions(state int, t T) (Action, Action) {
	col, ok := tbl.tcols[t]
	if !ok || state < 0 || state >= tbl.actions.M() {
		return Action{}, Action{}
	}
	a1, a2 := tbl.actions.Values(state, col)
	return decodeAction(a1), decodeAction(a2)
}

// Goto returns the GOTO entry for state and non-terminal N.
func (tbl *Table[T, NT]) Goto(state int, N NT) (int, bool) {
	col, ok := tbl.ntcols[N]
	if !ok || state < 0 || state >= tbl.gotos.M() {
		return 0, false
	}
	v := tbl.gotos.Value(state, col)
	if v == tbl.gotos.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Rule returns the rule for a reduce action's rule index, or nil.
func (tbl *Table[T, NT]) Rule(r int) *Rule[T, NT] {
	if r < 0 || r >= len(tbl.rules) {
		return nil
	}
	return tbl.rules[r]
}

// Rules returns the rule table.
func (tbl *Table[T, NT]) Rules() []*Rule[T, NT] {
	return slices.Clone(tbl.rules)
}

// InitialState returns the ID of the parser's start state.
func (tbl *Table[T, NT]) InitialState() int {
	return tbl.initial
}

// End returns the end-of-input terminal.
func (tbl *Table[T, NT]) End() T {
	return tbl.end
}

// Start returns the start symbol S and the augmented start symbol S'.
func (tbl *Table[T, NT]) Start() (start NT, augStart NT) {
	return tbl.start, tbl.augStart
}

// StateCount returns the number of parser states.
func (tbl *Table[T, NT]) StateCount() int {
	return tbl.actions.M()
}

// Terminals returns the terminal alphabet of the table, sorted.
func (tbl *Table[T, NT]) Terminals() []T {
	return slices.Clone(tbl.terminals)
}

// NonTerminals returns the non-terminals of the table, sorted.
func (tbl *Table[T, NT]) NonTerminals() []NT {
	return slices.Clone(tbl.nonterminals)
}

// Conflicts returns all conflicts detected during table construction.
func (tbl *Table[T, NT]) Conflicts() []Conflict[T, NT] {
	return slices.Clone(tbl.conflicts)
}

// HasConflicts is true if the grammar is not LR(0).
func (tbl *Table[T, NT]) HasConflicts() bool {
	return len(tbl.conflicts) > 0
}

// AcceptingStates returns all states with an accept action.
func (tbl *Table[T, NT]) AcceptingStates() []int {
	var acc []int
	for q := 0; q < tbl.StateCount(); q++ {
		if a, _ := tbl.Action(q, tbl.end); a.Kind == Accept {
			acc = append(acc, q)
		}
	}
	return acc
}

func (tbl *Table[T, NT]) ruleIndex(r *Rule[T, NT], index map[*Rule[T, NT]]int) int {
	if inx, ok := index[r]; ok {
		return inx
	}
	index[r] = len(tbl.rules)
	tbl.rules = append(tbl.rules, r)
	return index[r]
}

func (tbl *Table[T, NT]) conflict(c Conflict[T, NT]) {
	tracer().Infof("%v", c)
	tbl.conflicts = append(tbl.conflicts, c)
}

// CompileTable builds ACTION and GOTO tables from a CFSM. augStart ➞ start end
// must be the start rule the CFSM has been constructed from. terminals is the
// terminal alphabet of the ACTION table; end is always part of it.
//
// For every state, in discovery order:
//
// - If the state has a complete item (other than augStart ➞ start end •),
// a reduce action is entered for every terminal. More than one complete item
// is a reduce/reduce conflict.
//
// - Every transition on a terminal becomes a shift action, or an accept action if
// it leads to the state containing the completed start rule. A shift replaces a
// reduce action on the same terminal and is reported as a shift/reduce conflict.
//
// - Every transition on a non-terminal becomes a GOTO entry.
//
// Conflicts are collected in the table and traced at info level.
func CompileTable[T, NT constraints.Ordered](cfsm *CFSM[T, NT], augStart NT, start NT,
	end T, terminals []T) (*Table[T, NT], error) {
	//
	if cfsm == nil {
		return nil, fmt.Errorf("cannot compile table without CFSM")
	}
	r := cfsm.startRule
	if r.LHS != augStart || r.Len() != 2 || !r.rhs[0].IsNonTerminal(start) ||
		!r.rhs[1].IsTerminal() || r.rhs[1].Terminal() != end {
		return nil, fmt.Errorf("%w: CFSM built from %v", ErrMalformedStartRule, r)
	}
	tbl := &Table[T, NT]{
		end:      end,
		augStart: augStart,
		start:    start,
		tcols:    make(map[T]int),
		ntcols:   make(map[NT]int),
	}
	tbl.terminals = slices.Clone(terminals)
	if !slices.Contains(tbl.terminals, end) {
		tbl.terminals = append(tbl.terminals, end)
	}
	slices.Sort(tbl.terminals)
	tbl.terminals = slices.Compact(tbl.terminals)
	for j, t := range tbl.terminals {
		tbl.tcols[t] = j
	}
	tbl.nonterminals = cfsm.g.NonTerminals()
	for j, N := range tbl.nonterminals {
		tbl.ntcols[N] = j
	}
	n := cfsm.Size()
	tracer().Debugf("ACTION table of size %d x %d", n, len(tbl.terminals))
	tracer().Debugf("GOTO table of size %d x %d", n, len(tbl.nonterminals))
	tbl.actions = sparse.NewIntMatrix(n, len(tbl.terminals), sparse.DefaultNullValue)
	tbl.gotos = sparse.NewIntMatrix(n, len(tbl.nonterminals), sparse.DefaultNullValue)
	initialItem := StartItem(r)
	tbl.initial = -1
	index := make(map[*Rule[T, NT]]int)
	for _, state := range cfsm.States() {
		q := state.ID
		if state.items.Contains(initialItem) && tbl.initial < 0 {
			tbl.initial = q
		}
		tracer().Debugf("--- state %d --------------------------------", q)
		var complete []Item[T, NT]
		for _, i := range state.items.Items() {
			if i.IsComplete() && i.rule != r {
				complete = append(complete, i)
			}
		}
		var reduce *Action
		if len(complete) > 0 {
			a := Action{Kind: Reduce, Target: tbl.ruleIndex(complete[0].rule, index)}
			reduce = &a
			if len(complete) > 1 {
				rules := make([]*Rule[T, NT], len(complete))
				for k, i := range complete {
					rules[k] = i.rule
				}
				tbl.conflict(Conflict[T, NT]{Kind: ReduceReduce, State: q, Rules: rules, Chosen: a})
			}
			tracer().Debugf("    reduce %v on every terminal", complete[0].rule)
			for col := range tbl.terminals {
				tbl.actions.Set(q, col, a.encode())
			}
		}
		for _, e := range cfsm.EdgesFrom(state) {
			if !e.Label.IsTerminal() {
				tbl.gotos.Set(q, tbl.ntcols[e.Label.NonTerminal()], int32(e.To.ID))
				continue
			}
			t := e.Label.Terminal()
			col, ok := tbl.tcols[t]
			if !ok {
				tracer().Debugf("    terminal %v not in alphabet, skipping edge to %d", t, e.To.ID)
				continue
			}
			a := Action{Kind: Shift, Target: e.To.ID}
			if e.To.Accept {
				a = Action{Kind: Accept}
			}
			tracer().Debugf("    %v on %v", a, t)
			tbl.actions.Set(q, col, a.encode())
			if reduce != nil {
				tbl.actions.Add(q, col, reduce.encode())
				tbl.conflict(Conflict[T, NT]{
					Kind:     ShiftReduce,
					State:    q,
					Terminal: t,
					Rules:    []*Rule[T, NT]{complete[0].rule},
					Chosen:   a,
				})
			}
		}
	}
	if tbl.initial < 0 {
		return nil, fmt.Errorf("%w: no state contains %v", ErrNoStartRule, initialItem)
	}
	return tbl, nil
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR(0) parser tables.
// Clients usually create a Grammar G, and then a table generator.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for
// an LR(0)-parser recognizing grammar G. Rule 0 of G has to be the augmented
// start rule S' ➞ S EOF.
type TableGenerator[T, NT constraints.Ordered] struct {
	g            *Grammar[T, NT]
	dfa          *CFSM[T, NT]
	table        *Table[T, NT]
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator[T, NT constraints.Ordered](g *Grammar[T, NT]) *TableGenerator[T, NT] {
	return &TableGenerator[T, NT]{g: g}
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously. If the grammar is malformed, CFSM returns nil.
func (lrgen *TableGenerator[T, NT]) CFSM() *CFSM[T, NT] {
	if lrgen.dfa == nil {
		lrgen.buildCFSM()
	}
	return lrgen.dfa
}

func (lrgen *TableGenerator[T, NT]) buildCFSM() error {
	augStart, _, _, err := lrgen.g.Augmentation()
	if err != nil {
		tracer().Errorf("grammar %q is not augmented: %v", lrgen.g.Name, err)
		return err
	}
	lrgen.dfa, err = CanonicalAutomaton(lrgen.g, augStart, lrgen.g.Symbols())
	return err
}

// Table returns the parser tables. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator[T, NT]) Table() *Table[T, NT] {
	if lrgen.table == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.table
}

// CreateTables creates the CFSM and the ACTION and GOTO tables for an LR(0)
// parser.
func (lrgen *TableGenerator[T, NT]) CreateTables() error {
	if lrgen.dfa == nil {
		if err := lrgen.buildCFSM(); err != nil {
			return err
		}
	}
	augStart, start, eof, _ := lrgen.g.Augmentation()
	table, err := CompileTable(lrgen.dfa, augStart, start, eof, lrgen.g.Terminals())
	if err != nil {
		return err
	}
	lrgen.table = table
	lrgen.HasConflicts = table.HasConflicts()
	return nil
}

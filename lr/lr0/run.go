package lr0

import (
	"fmt"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
	"golang.org/x/exp/constraints"
)

// Status is the status of a parse run.
type Status int8

// A run is Running until it either accepts its input or fails.
const (
	Running Status = iota
	Accepted
	Failed
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Failed:
		return "failed"
	}
	return "running"
}

// Step describes a single step of a parse run. It is handed to the step handler
// of a parser, if one is set.
type Step struct {
	N         int       // step number, starting at 1
	State     int       // state on top of the stack at the beginning of the step
	Lookahead string    // the lookahead token
	Remaining int       // number of input tokens not yet consumed
	Action    lr.Action // action performed; Error for failing steps
	Rule      string    // rule for reduce actions
	Stack     []int     // state stack after the step
}

func (s Step) String() string {
	if s.Action.Kind == lr.Reduce {
		return fmt.Sprintf("%3d: state %d, la=%s: %v %s", s.N, s.State, s.Lookahead, s.Action, s.Rule)
	}
	return fmt.Sprintf("%3d: state %d, la=%s: %v", s.N, s.State, s.Lookahead, s.Action)
}

// Run is a single parse of an input token sequence. Clients usually call
// Parser.Parse, but may step through a parse using a Run.
//
// A run holds a stack of states and a stack of semantic values. For every
// state but the initial one, there is exactly one value on the value stack.
type Run[T, NT constraints.Ordered] struct {
	parser   *Parser[T, NT]
	table    *lr.Table[T, NT]
	states   []int
	values   []lr.Value[T]
	input    []lrzero.Token[T]
	pos      int
	status   Status
	result   interface{}
	err      error
	steps    int
	progress progress
}

// progress detects reductions which will never consume input.
//
// Every stack entry gets a serial number. Between two shifts the lookahead
// is fixed, so the actions depend on the stack alone. The run will never
// shift again if, since the last shift,
//
//   - state q is pushed onto an entry e again, with e not popped meanwhile, or
//   - state q is pushed while an entry for q pushed earlier is still on the stack.
//
// In both cases the actions in between would repeat forever.
type progress struct {
	serials []int           // serial numbers, parallel to the state stack
	next    int             // next serial number
	since   int             // serial number of the first entry after the last shift
	live    map[int]int     // states of entries pushed since the last shift
	seen    map[[2]int]bool // (serial of entry, state pushed onto it) since the last shift
}

func (pg *progress) reset() {
	pg.since = pg.next
	pg.live = make(map[int]int)
	pg.seen = make(map[[2]int]bool)
}

// key identifies pushing q onto the current top entry.
func (pg *progress) key(q int) [2]int {
	if len(pg.serials) == 0 {
		return [2]int{-1, q}
	}
	return [2]int{pg.serials[len(pg.serials)-1], q}
}

// loops checks if pushing q would repeat an earlier configuration.
func (pg *progress) loops(q int) bool {
	return pg.live[q] > 0 || pg.seen[pg.key(q)]
}

// NewRun prepares a parse of tokens.
func (p *Parser[T, NT]) NewRun(tokens []lrzero.Token[T]) *Run[T, NT] {
	run := &Run[T, NT]{
		parser: p,
		table:  p.table,
		input:  tokens,
		states: make([]int, 0, 64),
		values: make([]lr.Value[T], 0, 64),
	}
	if p.table == nil {
		run.fail(ErrNotInitialized)
		return run
	}
	run.progress.reset()
	run.push(p.table.InitialState())
	return run
}

// Status returns the status of the run.
func (r *Run[T, NT]) Status() Status {
	return r.status
}

// Result returns the synthesized value of an accepted run, or nil.
func (r *Run[T, NT]) Result() interface{} {
	return r.result
}

// Err returns the error of a failed run, or nil.
func (r *Run[T, NT]) Err() error {
	return r.err
}

// StateStack returns a copy of the current state stack, bottom first.
func (r *Run[T, NT]) StateStack() []int {
	return append([]int(nil), r.states...)
}

// ValueDepth returns the number of entries on the value stack.
func (r *Run[T, NT]) ValueDepth() int {
	return len(r.values)
}

// Step performs a single parse step. Calling Step on a run which is not
// running any more is a no-op.
func (r *Run[T, NT]) Step() Status {
	if r.status != Running {
		return r.status
	}
	r.steps++
	q := r.states[len(r.states)-1] // TOS
	token := r.lookahead()
	action, defined := r.table.Action(q, token.Kind())
	tracer().Debugf("action(%d,%v)=%v", q, token, action)
	step := Step{
		N:         r.steps,
		State:     q,
		Lookahead: fmt.Sprintf("%v", token),
		Remaining: len(r.input) - r.pos,
		Action:    action,
	}
	switch {
	case !defined:
		r.fail(&SyntaxError[T]{State: q, Token: token, Reason: ErrNoAction})
	case action.Kind == lr.Shift:
		tracer().Debugf("shifting %v, next state = %d", token, action.Target)
		r.progress.reset()
		r.push(action.Target)
		r.values = append(r.values, lr.TerminalValue[T](token))
		r.pos++
	case action.Kind == lr.Reduce:
		rule := r.table.Rule(action.Target)
		step.Rule = rule.String()
		r.reduce(rule, token)
	case action.Kind == lr.Accept:
		if r.pos < len(r.input)-1 { // explicit end-of-input token followed by more input
			r.fail(&SyntaxError[T]{State: q, Token: r.input[r.pos+1], Reason: ErrUnexpectedToken})
			break
		}
		if len(r.values) > 0 {
			r.result = r.values[len(r.values)-1].Value()
		}
		r.status = Accepted
		tracer().Debugf("accept, value = %v", r.result)
	default:
		r.fail(&SyntaxError[T]{State: q, Token: token, Reason: ErrUnexpectedToken})
	}
	if r.parser.opts.onStep != nil {
		step.Stack = r.StateStack()
		r.parser.opts.onStep(step)
	}
	return r.status
}

// reduce performs a reduce action for a rule
//
//	LHS ➞ X1 … Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stacks as states and values
//
//	[TOS]  Sn(Xn) … S1(X1)  …
//
// The values are handed to the rule's semantic action, in order X1 … Xn.
func (r *Run[T, NT]) reduce(rule *lr.Rule[T, NT], lookahead lrzero.Token[T]) {
	tracer().Infof("reduce %v", rule)
	action := rule.Action()
	if action == nil {
		err := fmt.Errorf("%w: %v", ErrMissingAction, rule)
		tracer().Errorf("cannot reduce: %v", err)
		if r.parser.opts.panicOnMissing {
			panic(err)
		}
		r.fail(err)
		return
	}
	n := rule.Len()
	args := make([]lr.Value[T], n)
	copy(args, r.values[len(r.values)-n:])
	r.pop(n)
	r.values = r.values[:len(r.values)-n]
	var handlespan lrzero.Span
	for _, v := range args {
		handlespan = handlespan.Extend(v.Span())
	}
	if handlespan.IsNull() { // resulted from an epsilon production
		pos := lookahead.Span().From()
		handlespan = lrzero.Span{pos, pos} // epsilon was just before lookahead
	}
	top := r.states[len(r.states)-1]
	next, ok := r.table.Goto(top, rule.LHS)
	if !ok {
		r.fail(fmt.Errorf("%w for state %d and %v", ErrNoGoto, top, lr.NonTerm[T](rule.LHS)))
		return
	}
	if r.progress.loops(next) {
		r.fail(&SyntaxError[T]{State: next, Token: lookahead, Reason: ErrNoProgress})
		return
	}
	r.push(next)
	v := action(args)
	r.values = append(r.values, lr.NonTerminalValue[T](v, handlespan))
	tracer().Debugf("reduced to next state = %d", next)
}

// lookahead returns the next input token. If the input is exhausted, an
// end-of-input token is returned.
func (r *Run[T, NT]) lookahead() lrzero.Token[T] {
	if r.pos < len(r.input) {
		return r.input[r.pos]
	}
	var pos uint64
	if len(r.input) > 0 {
		pos = r.input[len(r.input)-1].Span().To()
	}
	return lrzero.EOFToken(r.table.End(), pos)
}

func (r *Run[T, NT]) push(q int) {
	pg := &r.progress
	pg.seen[pg.key(q)] = true
	pg.live[q]++
	pg.serials = append(pg.serials, pg.next)
	pg.next++
	r.states = append(r.states, q)
}

func (r *Run[T, NT]) pop(n int) {
	pg := &r.progress
	for i := len(r.states) - n; i < len(r.states); i++ {
		if pg.serials[i] >= pg.since {
			pg.live[r.states[i]]--
		}
	}
	pg.serials = pg.serials[:len(pg.serials)-n]
	r.states = r.states[:len(r.states)-n]
}

func (r *Run[T, NT]) fail(err error) {
	tracer().Infof("parse failed: %v", err)
	r.status = Failed
	r.err = err
}

package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"golang.org/x/exp/constraints"
)

// Item is an LR(0) configuration item, i.e. a rule with a dot position:
//
//	A ➞ B • C d
//
// Items are values. Two items are equal if they refer to the same rule and
// have the same dot position.
type Item[T, NT constraints.Ordered] struct {
	rule *Rule[T, NT]
	dot  int
}

// StartItem returns the item for a rule with the dot at position 0.
func StartItem[T, NT constraints.Ordered](r *Rule[T, NT]) Item[T, NT] {
	return Item[T, NT]{rule: r}
}

// AllItems creates every item of a grammar: one item per rule and dot position.
// Items are created in rule order, then by dot position.
func AllItems[T, NT constraints.Ordered](g *Grammar[T, NT]) []Item[T, NT] {
	var items []Item[T, NT]
	for _, r := range g.rules {
		for dot := 0; dot <= r.Len(); dot++ {
			items = append(items, Item[T, NT]{rule: r, dot: dot})
		}
	}
	return items
}

// Rule returns the rule of an item.
func (i Item[T, NT]) Rule() *Rule[T, NT] {
	return i.rule
}

// Dot returns the dot position.
func (i Item[T, NT]) Dot() int {
	return i.dot
}

// IsComplete is true if the dot is behind the complete right hand side.
func (i Item[T, NT]) IsComplete() bool {
	return i.dot >= i.rule.Len()
}

// PeekSymbol returns the symbol after the dot. If the item is complete, ok is false.
func (i Item[T, NT]) PeekSymbol() (A Symbol[T, NT], ok bool) {
	if i.IsComplete() {
		return
	}
	return i.rule.rhs[i.dot], true
}

// Advances is true if sym immediately follows the dot.
func (i Item[T, NT]) Advances(sym Symbol[T, NT]) bool {
	A, ok := i.PeekSymbol()
	return ok && A == sym
}

// Advance returns the item with the dot moved one symbol to the right.
// For complete items Advance returns i unchanged.
func (i Item[T, NT]) Advance() Item[T, NT] {
	if i.IsComplete() {
		return i
	}
	return Item[T, NT]{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols in front of the dot.
func (i Item[T, NT]) Prefix() []Symbol[T, NT] {
	return i.rule.rhs[:i.dot]
}

// Compare orders items by LHS, then RHS, then dot position.
func (i Item[T, NT]) Compare(j Item[T, NT]) int {
	if i.rule != j.rule {
		if c := compare(i.rule.LHS, j.rule.LHS); c != 0 {
			return c
		}
		if c := compareSymbols(i.rule.rhs, j.rule.rhs); c != 0 {
			return c
		}
	}
	return compare(i.dot, j.dot)
}

func (i Item[T, NT]) String() string {
	var b bytes.Buffer
	b.WriteString(NonTerm[T](i.rule.LHS).String())
	b.WriteString(" ➞")
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.String())
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	return b.String()
}

// --- Item sets -------------------------------------------------------------

// ItemSet is an ordered set of items.
type ItemSet[T, NT constraints.Ordered] struct {
	items *treeset.Set
}

// NewItemSet creates an item set, optionally with initial items.
func NewItemSet[T, NT constraints.Ordered](items ...Item[T, NT]) *ItemSet[T, NT] {
	S := &ItemSet[T, NT]{
		items: treeset.NewWith(func(a, b interface{}) int {
			return a.(Item[T, NT]).Compare(b.(Item[T, NT]))
		}),
	}
	for _, i := range items {
		S.items.Add(i)
	}
	return S
}

// Add adds an item. It returns false if the item was already contained in S.
func (S *ItemSet[T, NT]) Add(i Item[T, NT]) bool {
	if S.items.Contains(i) {
		return false
	}
	S.items.Add(i)
	return true
}

// Contains checks if i is a member of S.
func (S *ItemSet[T, NT]) Contains(i Item[T, NT]) bool {
	return S.items.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet[T, NT]) Size() int {
	if S == nil {
		return 0
	}
	return S.items.Size()
}

// Empty is true for sets without any items.
func (S *ItemSet[T, NT]) Empty() bool {
	return S.Size() == 0
}

// Items returns the items of S in item order.
func (S *ItemSet[T, NT]) Items() []Item[T, NT] {
	if S == nil {
		return nil
	}
	items := make([]Item[T, NT], 0, S.items.Size())
	it := S.items.Iterator()
	for it.Next() {
		items = append(items, it.Value().(Item[T, NT]))
	}
	return items
}

// Copy returns a shallow copy of S.
func (S *ItemSet[T, NT]) Copy() *ItemSet[T, NT] {
	return NewItemSet(S.Items()...)
}

// Equals is true if S and other contain the same items.
func (S *ItemSet[T, NT]) Equals(other *ItemSet[T, NT]) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, i := range S.Items() {
		if !other.Contains(i) {
			return false
		}
	}
	return true
}

// Key is a canonical key for S. Two item sets of the same grammar have identical
// keys if and only if they contain the same items.
func (S *ItemSet[T, NT]) Key() string {
	type itemKey struct {
		Rule int
		Dot  int
	}
	key := struct {
		Items []itemKey
	}{}
	for _, i := range S.Items() {
		key.Items = append(key.Items, itemKey{Rule: i.rule.Serial, Dot: i.dot})
	}
	return string(structhash.Dump(key, 1))
}

func (S *ItemSet[T, NT]) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, i := range S.Items() {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper, tracing all items of S at debug level.
func (S *ItemSet[T, NT]) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %v", i)
	}
}

// --- Closure ---------------------------------------------------------------

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the LR(0) closure of an item set. For every item
//
//	A ➞ α • B β
//
// with a non-terminal B after the dot, every item B ➞ • γ from all is added,
// repeatedly, until no new items appear. Every non-terminal is expanded at most
// once. all is usually the result of AllItems(g). seed is not modified.
func Closure[T, NT constraints.Ordered](all []Item[T, NT], seed *ItemSet[T, NT]) *ItemSet[T, NT] {
	C := seed.Copy()
	worklist := seed.Items()
	expanded := make(map[NT]bool)
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]
		B, ok := item.PeekSymbol()
		if !ok || B.IsTerminal() || expanded[B.NonTerminal()] {
			continue
		}
		expanded[B.NonTerminal()] = true
		for _, i := range all {
			if i.dot == 0 && i.rule.LHS == B.NonTerminal() {
				if C.Add(i) {
					worklist = append(worklist, i)
				}
			}
		}
	}
	return C
}

func itemSetDebugString[T, NT constraints.Ordered](S *ItemSet[T, NT]) string {
	return fmt.Sprintf("(%d items)%v", S.Size(), S)
}

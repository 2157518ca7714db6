package fsa

import (
	"fmt"

	u "github.com/araddon/gou"
)

// eliminator holds the state of one regex extraction. Row i describes the
// words leading from the initial state to state i: column 0 is the part
// already resolved, column s+1 the expression of the edges s -> i.
type eliminator struct {
	m      [][]*rex
	queued []bool
	order  []int
}

// Regex returns a regular expression for the language of a, extracted from
// its minimal DFA by state elimination. Different elimination orders give
// different but equivalent expressions. The empty language over no letters is
// "∅"; a letter that only leads to rejection shows up as a∅.
func (a *Automaton) Regex() (string, error) {
	m, err := a.reducedView()
	if err != nil {
		return "", err
	}
	return extractRegex(m)
}

func extractRegex(d *Automaton) (string, error) {
	tokens := make([]string, len(d.letters))
	for l, name := range d.letters {
		token, ok := letterToken(name)
		if !ok {
			return "", fmt.Errorf("%w: letter %q has no regex spelling", ErrInvalidRegex, name)
		}
		tokens[l] = token
	}

	n := d.NumStates()
	e := &eliminator{
		m:      make([][]*rex, n),
		queued: make([]bool, n),
	}
	for i := range e.m {
		e.m[i] = make([]*rex, n+1)
	}

	for s, ok := d.initial.NextSet(0); ok; s, ok = d.initial.NextSet(s + 1) {
		e.m[s][0] = epsilonRex
	}
	for s, row := range d.delta {
		for l, targets := range row {
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				e.m[t][s+1] = rexUnion(e.m[t][s+1], letterRex(tokens[l]))
			}
		}
	}

	e.plan(members(d.accept))
	for _, i := range e.order {
		e.eliminate(i)
	}

	var result *rex
	for s, ok := d.accept.NextSet(0); ok; s, ok = d.accept.NextSet(s + 1) {
		result = rexUnion(result, e.m[s][0])
	}
	u.Debugf("extracted regex over %d states, eliminated %d", n, len(e.order))

	// Letters that only lead to rejection are written as token∅ so that the
	// expression compiles back over the same alphabet.
	used := make(map[string]struct{})
	if result != nil {
		result.collectTokens(used)
	}
	for _, token := range tokens {
		if _, ok := used[token]; !ok {
			result = rexUnion(result, deadLetter(token))
		}
	}
	if result == nil {
		return "∅", nil
	}
	return result.text, nil
}

// plan orders the states to eliminate: starting from the accepting states,
// every state referenced by a queued row is queued as well.
func (e *eliminator) plan(seeds []int) {
	stack := make([]int, 0, len(seeds))
	for i := len(seeds) - 1; i >= 0; i-- {
		e.queued[seeds[i]] = true
		stack = append(stack, seeds[i])
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e.order = append(e.order, i)
		for j := range e.queued {
			if e.m[i][j+1] != nil && !e.queued[j] {
				e.queued[j] = true
				stack = append(stack, j)
			}
		}
	}
}

// eliminate resolves state i: its self loop is starred onto the rest of its
// row, and the row is substituted into every queued row with an edge from i.
func (e *eliminator) eliminate(i int) {
	row := e.m[i]
	if loop := row[i+1]; loop != nil {
		row[i+1] = nil
		star := rexStar(loop)
		for k, cell := range row {
			if cell != nil {
				row[k] = rexConcat(cell, star)
			}
		}
	}

	for j := range e.m {
		if j == i || !e.queued[j] {
			continue
		}
		edge := e.m[j][i+1]
		if edge == nil {
			continue
		}
		e.m[j][i+1] = nil
		for k, cell := range row {
			if cell != nil {
				e.m[j][k] = rexUnion(e.m[j][k], rexConcat(cell, edge))
			}
		}
	}
}

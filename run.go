package fsa

import (
	u "github.com/araddon/gou"
	"github.com/bits-and-blooms/bitset"
)

// possibleTransitions is the only step that differs between kinds: a DFA or
// NFA contributes its own target set, an ENFA the direct targets of every
// state in the epsilon closure of state.
func (a *Automaton) possibleTransitions(state, letter int) *bitset.BitSet {
	switch a.kind {
	case KindENFA:
		result := bitset.New(uint(a.NumStates()))
		cl := a.closure(state)
		for p, ok := cl.NextSet(0); ok; p, ok = cl.NextSet(p + 1) {
			result.InPlaceUnion(a.delta[p][letter])
		}
		return result
	default:
		return a.delta[state][letter]
	}
}

// AcceptsWordUnified simulates the automaton on word directly, without
// minimization. A letter outside the alphabet rejects the word.
func (a *Automaton) AcceptsWordUnified(word []string) bool {
	current := a.initial.Clone()
	for _, name := range word {
		l, ok := a.inputLetter(name)
		if !ok {
			return false
		}
		next := bitset.New(uint(a.NumStates()))
		for s, ok := current.NextSet(0); ok; s, ok = current.NextSet(s + 1) {
			next.InPlaceUnion(a.possibleTransitions(int(s), l))
		}
		if next.None() {
			return false
		}
		current = next
	}
	// Accepting states are reached through the closure of the last set.
	return a.closureOf(current).IntersectionCardinality(a.accept) > 0
}

// AcceptsWord runs word on the cached minimal DFA. A letter outside the
// alphabet rejects the word; use Match to tell that case apart.
func (a *Automaton) AcceptsWord(word []string) bool {
	m, err := a.reducedView()
	if err != nil {
		u.Warnf("minimization refused (%v), simulating directly", err)
		return a.AcceptsWordUnified(word)
	}
	return m.runDeterministic(word)
}

// Match is AcceptsWord returning a *SymbolError for a letter outside the
// alphabet instead of a plain rejection.
func (a *Automaton) Match(word []string) (bool, error) {
	for i, name := range word {
		if _, ok := a.inputLetter(name); !ok {
			return false, &SymbolError{Letter: name, Index: i}
		}
	}
	return a.AcceptsWord(word), nil
}

// runDeterministic assumes a total DFA.
func (a *Automaton) runDeterministic(word []string) bool {
	state, ok := a.initial.NextSet(0)
	if !ok {
		return false
	}
	for _, name := range word {
		l, ok := a.inputLetter(name)
		if !ok {
			return false
		}
		state, ok = a.delta[state][l].NextSet(0)
		if !ok {
			return false
		}
	}
	return a.accept.Test(state)
}

// Run reads every rune of s as a one-rune letter name and runs the word.
func Run(a *Automaton, s string) bool {
	return a.AcceptsWord(Letters(s))
}

// Letters splits s into one-rune letter names.
func Letters(s string) []string {
	word := make([]string, 0, len(s))
	for _, r := range s {
		word = append(word, string(r))
	}
	return word
}

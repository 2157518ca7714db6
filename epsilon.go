package fsa

import (
	"github.com/bits-and-blooms/bitset"
)

// Epsilon is the spelling used for epsilon letters the engine synthesizes.
const Epsilon = "ε"

var epsilonSpellings = map[string]struct{}{
	"ε":       {},
	"eps":     {},
	"epsilon": {},
	"λ":       {},
}

// IsEpsilon reports whether name is one of the recognized epsilon spellings.
func IsEpsilon(name string) bool {
	_, ok := epsilonSpellings[name]
	return ok
}

// closure returns the epsilon closure of state as a new set. Without an
// epsilon letter the closure is {state}.
func (a *Automaton) closure(state int) *bitset.BitSet {
	seen := bitset.New(uint(a.NumStates()))
	seen.Set(uint(state))
	if !a.hasEpsilon {
		return seen
	}

	workList := []int{state}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		next := a.delta[s][0]
		for t, ok := next.NextSet(0); ok; t, ok = next.NextSet(t + 1) {
			if !seen.Test(t) {
				seen.Set(t)
				workList = append(workList, int(t))
			}
		}
	}
	return seen
}

// closureOf returns the union of the epsilon closures of every state in set.
func (a *Automaton) closureOf(set *bitset.BitSet) *bitset.BitSet {
	if !a.hasEpsilon {
		return set.Clone()
	}
	result := bitset.New(uint(a.NumStates()))
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		result.InPlaceUnion(a.closure(int(s)))
	}
	return result
}

// EpsilonClosure returns the states reachable from state through zero or more
// epsilon transitions, in increasing order.
func (a *Automaton) EpsilonClosure(state int) []int {
	if state < 0 || state >= a.NumStates() {
		return nil
	}
	return members(a.closure(state))
}

// members lists the set bits of b in increasing order.
func members(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

func setOf(n int, values ...int) *bitset.BitSet {
	b := bitset.New(uint(n))
	for _, v := range values {
		b.Set(uint(v))
	}
	return b
}

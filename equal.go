package fsa

import (
	u "github.com/araddon/gou"
)

// Equals reports whether a and b accept the same language over the same
// alphabet. Both sides are compared through their minimal DFAs, which must be
// isomorphic under the letter bijection given by letter names.
func Equals(a, b *Automaton) bool {
	if a == b {
		return true
	}
	ma, err := a.reducedView()
	if err != nil {
		u.Warnf("equals: %v", err)
		return false
	}
	mb, err := b.reducedView()
	if err != nil {
		u.Warnf("equals: %v", err)
		return false
	}
	return isomorphic(ma, mb)
}

// Equals reports whether a and other accept the same language.
func (a *Automaton) Equals(other *Automaton) bool {
	return Equals(a, other)
}

// isomorphic compares two minimal DFAs by walking them in lockstep from their
// initial states.
func isomorphic(a, b *Automaton) bool {
	if len(a.letters) != len(b.letters) ||
		len(a.states) != len(b.states) ||
		a.accept.Count() != b.accept.Count() {
		return false
	}

	letterMap := make([]int, len(a.letters))
	for l, name := range a.letters {
		bl, ok := b.LetterIndex(name)
		if !ok {
			return false
		}
		letterMap[l] = bl
	}

	ia, _ := a.initial.NextSet(0)
	ib, _ := b.initial.NextSet(0)
	stateMap := make([]int, len(a.states))
	for s := range stateMap {
		stateMap[s] = -1
	}
	stateMap[ia] = int(ib)
	workList := []int{int(ia)}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		t := stateMap[s]
		if a.IsAccept(s) != b.IsAccept(t) {
			return false
		}
		for l := range a.letters {
			sa, _ := a.delta[s][l].NextSet(0)
			sb, _ := b.delta[t][letterMap[l]].NextSet(0)
			switch stateMap[sa] {
			case -1:
				stateMap[sa] = int(sb)
				workList = append(workList, int(sa))
			case int(sb):
			default:
				return false
			}
		}
	}
	return true
}

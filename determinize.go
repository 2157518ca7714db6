package fsa

import (
	"fmt"
	"strings"

	u "github.com/araddon/gou"
	"github.com/bits-and-blooms/bitset"
)

// deadStateName names the sink added by subset construction.
const deadStateName = "∅"

// RemoveEpsilon returns an NFA without epsilon letter accepting the same
// language. The transition of a state on a letter is the union of the direct
// transitions of its epsilon closure; a state accepts when its closure
// contains an accepting state.
func RemoveEpsilon(a *Automaton) *Automaton {
	if !a.hasEpsilon {
		c := a.clone()
		if c.kind == KindENFA {
			c.kind = KindNFA
		}
		return c
	}

	b := newBuilder(a.Letters()[1:])
	for _, name := range a.states {
		b.createState(name)
	}
	for s := range a.states {
		cl := a.closure(s)
		for p, ok := cl.NextSet(0); ok; p, ok = cl.NextSet(p + 1) {
			for l := 1; l < len(a.letters); l++ {
				b.delta[s][l-1].InPlaceUnion(a.delta[p][l])
			}
		}
		b.setAccept(s, cl.IntersectionCardinality(a.accept) > 0)
		if a.initial.Test(uint(s)) {
			b.setInitial(s)
		}
	}
	return b.finish(KindNFA)
}

// Determinize returns a total DFA accepting the same language, using subset
// construction over the epsilon-free form of a. Every reachable subset becomes
// a state; a single shared sink state receives the empty transitions.
func Determinize(a *Automaton, opts ...Option) (*Automaton, error) {
	if a.kind == KindDFA {
		return a.clone(), nil
	}
	o := newOptions(opts...)

	n := a
	if a.hasEpsilon {
		n = RemoveEpsilon(a)
	}

	b := newBuilder(n.Letters())
	subsets := NewHashMap[int](WithCapacity(n.NumStates()))

	start := freeze(n.initial)
	start.state = b.createState(n.subsetName(start))
	b.setInitial(start.state)
	subsets.Set(start, start.state)

	workList := []*FrozenIntSet{start}
	dead := -1
	for len(workList) > 0 {
		cur := workList[0]
		workList = workList[1:]

		for _, q := range cur.values {
			if n.accept.Test(uint(q)) {
				b.setAccept(cur.state, true)
				break
			}
		}

		for l := range n.letters {
			target := bitset.New(uint(n.NumStates()))
			for _, q := range cur.values {
				target.InPlaceUnion(n.delta[q][l])
			}

			if target.None() {
				if dead == -1 {
					dead = b.createState(deadStateName)
					for dl := range n.letters {
						b.addTransition(dead, dl, dead)
					}
				}
				b.addTransition(cur.state, l, dead)
				continue
			}

			key := freeze(target)
			t, ok := subsets.Get(key)
			if !ok {
				if subsets.Size() >= o.determinizeWorkLimit {
					return nil, fmt.Errorf("%w: more than %d subsets", ErrTooComplex, o.determinizeWorkLimit)
				}
				t = b.createState(n.subsetName(key))
				key.state = t
				subsets.Set(key, t)
				workList = append(workList, key)
			}
			b.addTransition(cur.state, l, t)
		}
	}

	u.Debugf("determinized %d states into %d (sink=%v)", a.NumStates(), b.numStates(), dead != -1)
	return b.finish(KindDFA), nil
}

// subsetName joins the member names; a singleton keeps its own name.
func (a *Automaton) subsetName(set *FrozenIntSet) string {
	if set.Size() == 1 {
		return a.states[set.values[0]]
	}
	names := make([]string, 0, set.Size())
	for _, s := range set.values {
		names = append(names, a.states[s])
	}
	return "{" + strings.Join(names, ",") + "}"
}

package fsa

import (
	"strconv"
	"strings"

	u "github.com/araddon/gou"
)

// Minimize returns the minimal DFA of a (determinizing first when needed).
// Unreachable states are pruned, then states are merged into equivalence
// classes by partition refinement until no class splits. The result reports
// IsMinimal.
func Minimize(a *Automaton, opts ...Option) (*Automaton, error) {
	if a.minimal {
		return a.clone(), nil
	}
	d, err := Determinize(a, opts...)
	if err != nil {
		return nil, err
	}
	m := minimizeDFA(d)
	m.minimal = true
	return m, nil
}

// minimizeDFA expects a total DFA. When d is already minimal it is returned
// as is.
func minimizeDFA(d *Automaton) *Automaton {
	n := d.NumStates()
	order := d.reachableOrder()

	// Initial partition: accepting or not.
	class := make([]int, n)
	numClasses := 0
	{
		ids := map[bool]int{}
		for _, s := range order {
			acc := d.accept.Test(uint(s))
			id, ok := ids[acc]
			if !ok {
				id = len(ids)
				ids[acc] = id
			}
			class[s] = id
		}
		numClasses = len(ids)
	}

	rounds := 0
	for {
		rounds++
		next := make([]int, n)
		signatures := make(map[string]int, numClasses)
		var sb strings.Builder
		for _, s := range order {
			sb.Reset()
			sb.WriteString(strconv.Itoa(class[s]))
			for l := range d.letters {
				t, _ := d.delta[s][l].NextSet(0)
				sb.WriteByte(',')
				sb.WriteString(strconv.Itoa(class[t]))
			}
			key := sb.String()
			id, ok := signatures[key]
			if !ok {
				id = len(signatures)
				signatures[key] = id
			}
			next[s] = id
		}
		class = next
		if len(signatures) == numClasses {
			break
		}
		numClasses = len(signatures)
	}

	u.Debugf("minimize: %d states, %d reachable, %d classes after %d rounds", n, len(order), numClasses, rounds)
	if len(order) == n && numClasses == n {
		return d
	}

	groups := make([][]int, numClasses)
	for _, s := range order {
		groups[class[s]] = append(groups[class[s]], s)
	}

	b := newBuilder(d.Letters())
	for _, group := range groups {
		names := make([]string, 0, len(group))
		for _, s := range group {
			names = append(names, d.states[s])
		}
		if len(names) == 1 {
			b.createState(names[0])
		} else {
			b.createState("{" + strings.Join(names, ",") + "}")
		}
	}
	for c, group := range groups {
		rep := group[0]
		for l := range d.letters {
			t, _ := d.delta[rep][l].NextSet(0)
			b.addTransition(c, l, class[t])
		}
		b.setAccept(c, d.accept.Test(uint(rep)))
	}
	// The initial state is first in BFS order, so it lands in class 0.
	b.setInitial(0)
	return b.finish(KindDFA)
}

// reachableOrder lists the states reachable from the initial states in BFS
// order, over every letter including epsilon.
func (a *Automaton) reachableOrder() []int {
	seen := a.initial.Clone()
	order := members(a.initial)
	for i := 0; i < len(order); i++ {
		for _, targets := range a.delta[order[i]] {
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				if !seen.Test(t) {
					seen.Set(t)
					order = append(order, int(t))
				}
			}
		}
	}
	return order
}

// reducedView returns the cached minimal DFA, computing it on first use. The
// returned value must not escape to callers.
func (a *Automaton) reducedView() (*Automaton, error) {
	if a.minimal {
		return a, nil
	}
	if a.reduced == nil {
		m, err := Minimize(a)
		if err != nil {
			return nil, err
		}
		a.reduced = m
	}
	return a.reduced, nil
}

// Reduced returns a copy of the minimal DFA of a. The minimal form is computed
// once and cached until a rename.
func (a *Automaton) Reduced() (*Automaton, error) {
	m, err := a.reducedView()
	if err != nil {
		return nil, err
	}
	return m.clone(), nil
}

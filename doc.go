// Package fsa implements finite automata over named letters: deterministic,
// non-deterministic and epsilon automata, their conversions (epsilon removal,
// subset construction, minimization), a regular expression compiler based on
// the position construction, regular expression extraction by state
// elimination, and the regular language operators (union, concatenation,
// intersection, complement, Kleene star) together with language equality.
//
// Automata are built from a Definition:
//
//	a, err := fsa.New(fsa.Definition{
//		States:  []string{"0", "1"},
//		Letters: []string{"a", "b"},
//		Transitions: map[string]map[string][]string{
//			"0": {"a": {"0", "1"}},
//			"1": {"b": {"0"}},
//		},
//		Initial:   []string{"0"},
//		Accepting: []string{"1"},
//	})
//
// or from a regular expression:
//
//	a, err := fsa.CompileRegex("(a*b)+(b*a)")
//
// An Automaton is logically immutable; only RenameState and RenameLetter
// change it, and they drop every derived cache. It is not safe for concurrent
// use.
package fsa

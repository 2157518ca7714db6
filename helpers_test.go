package fsa

import (
	"strings"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/require"
)

func init() {
	u.SetupLogging("debug")
	u.SetColorOutput()
}

// mod3 counts the letter a modulo 3 and accepts counts 0 and 2.
func mod3Definition() Definition {
	return Definition{
		Kind:    "dfa",
		States:  []string{"0", "1", "2"},
		Letters: []string{"a", "b"},
		Transitions: map[string]map[string][]string{
			"0": {"a": {"1"}, "b": {"0"}},
			"1": {"a": {"2"}, "b": {"1"}},
			"2": {"a": {"0"}, "b": {"2"}},
		},
		Initial:   []string{"0"},
		Accepting: []string{"0", "2"},
	}
}

func nfaDefinition() Definition {
	return Definition{
		Kind:    "nfa",
		States:  []string{"0", "1"},
		Letters: []string{"a", "b"},
		Transitions: map[string]map[string][]string{
			"0": {"a": {"0,1"}},
			"1": {"b": {"0"}},
		},
		Initial:   []string{"0"},
		Accepting: []string{"1"},
	}
}

// enfaDefinition accepts a*b* through an epsilon edge between two loops.
func enfaDefinition() Definition {
	return Definition{
		Kind:    "enfa",
		States:  []string{"p", "q"},
		Letters: []string{"a", "b", "eps"},
		Transitions: map[string]map[string][]string{
			"p": {"a": {"p"}, "eps": {"q"}},
			"q": {"b": {"q"}},
		},
		Initial:   []string{"p"},
		Accepting: []string{"q"},
	}
}

func mustNew(t testing.TB, def Definition) *Automaton {
	t.Helper()
	a, err := New(def)
	require.NoError(t, err)
	return a
}

func mustRegex(t testing.TB, expr string) *Automaton {
	t.Helper()
	a, err := CompileRegex(expr)
	require.NoError(t, err)
	return a
}

// words lists every word over letters of length at most maxLen.
func words(letters []string, maxLen int) [][]string {
	all := [][]string{{}}
	frontier := [][]string{{}}
	for n := 0; n < maxLen; n++ {
		var next [][]string
		for _, w := range frontier {
			for _, l := range letters {
				nw := make([]string, len(w)+1)
				copy(nw, w)
				nw[len(w)] = l
				next = append(next, nw)
			}
		}
		all = append(all, next...)
		frontier = next
	}
	return all
}

// wordLetters returns the letters of a that can appear in a word.
func wordLetters(a *Automaton) []string {
	letters := a.Letters()
	if a.HasEpsilon() {
		letters = letters[1:]
	}
	return letters
}

// language lists the accepted words up to maxLen, joined by spaces.
func language(a *Automaton, letters []string, maxLen int) map[string]bool {
	accepted := make(map[string]bool)
	for _, w := range words(letters, maxLen) {
		if a.AcceptsWordUnified(w) {
			accepted[strings.Join(w, " ")] = true
		}
	}
	return accepted
}

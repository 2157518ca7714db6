package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveEpsilon(t *testing.T) {
	a := mustNew(t, enfaDefinition())
	n := RemoveEpsilon(a)

	assert.Equal(t, KindNFA, n.Kind())
	assert.False(t, n.HasEpsilon())
	assert.Equal(t, []string{"a", "b"}, n.Letters())
	assert.Equal(t, []string{"p", "q"}, n.States())
	// p reaches q through epsilon, so it accepts and moves on b.
	assert.Equal(t, []int{0, 1}, n.Accepting())
	assert.Equal(t, []int{1}, n.Targets(0, 1))

	letters := wordLetters(a)
	assert.Equal(t, language(a, letters, 5), language(n, letters, 5))
}

func TestRemoveEpsilon_WithoutEpsilon(t *testing.T) {
	a := mustNew(t, nfaDefinition())
	n := RemoveEpsilon(a)
	assert.Equal(t, a.Transitions(), n.Transitions())

	n.RenameState("0", "x")
	assert.Equal(t, []string{"0", "1"}, a.States())
}

func TestDeterminize(t *testing.T) {
	a := mustNew(t, nfaDefinition())
	d, err := Determinize(a)
	require.NoError(t, err)

	assert.Equal(t, KindDFA, d.Kind())
	assert.Equal(t, []string{"0", "{0,1}", "∅"}, d.States())
	assert.Equal(t, []int{0}, d.Initial())
	assert.Equal(t, []int{1}, d.Accepting())
	for s := 0; s < d.NumStates(); s++ {
		for l := 0; l < d.NumLetters(); l++ {
			assert.Len(t, d.Targets(s, l), 1)
		}
	}

	letters := wordLetters(a)
	assert.Equal(t, language(a, letters, 6), language(d, letters, 6))
}

func TestDeterminize_ENFA(t *testing.T) {
	for _, expr := range []string{"(a*b)+(b*a)", "(a+b)*abb", "ε", "∅"} {
		r := mustRegex(t, expr)
		e, err := Union(r, mustNew(t, enfaDefinition()))
		require.NoError(t, err)

		d, err := Determinize(e)
		require.NoError(t, err)
		assert.Equal(t, KindDFA, d.Kind())

		letters := wordLetters(e)
		assert.Equal(t, language(e, letters, 5), language(d, letters, 5), expr)
	}
}

func TestDeterminize_DFAIsCopied(t *testing.T) {
	a := mustNew(t, mod3Definition())
	d, err := Determinize(a)
	require.NoError(t, err)
	assert.Equal(t, a.Transitions(), d.Transitions())

	d.RenameState("0", "zero")
	assert.Equal(t, "0", a.States()[0])
}

func TestDeterminize_SinkNameIsUnique(t *testing.T) {
	a := mustNew(t, Definition{
		States:  []string{"∅", "x"},
		Letters: []string{"a", "b"},
		Transitions: map[string]map[string][]string{
			"∅": {"a": {"x"}},
		},
		Initial:   []string{"∅"},
		Accepting: []string{"x"},
	})
	d, err := Determinize(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"∅", "x", "∅'"}, d.States())
	assert.True(t, Run(d, "a"))
	assert.False(t, Run(d, "b"))
}

package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize(t *testing.T) {
	// q1 and q2 are equivalent, q3 is unreachable.
	a := mustNew(t, Definition{
		Kind:    "dfa",
		States:  []string{"q0", "q1", "q2", "q3"},
		Letters: []string{"a", "b"},
		Transitions: map[string]map[string][]string{
			"q0": {"a": {"q1"}, "b": {"q2"}},
			"q1": {"a": {"q1"}, "b": {"q1"}},
			"q2": {"a": {"q2"}, "b": {"q2"}},
			"q3": {"a": {"q0"}, "b": {"q3"}},
		},
		Initial:   []string{"q0"},
		Accepting: []string{"q1", "q2"},
	})

	m, err := Minimize(a)
	require.NoError(t, err)
	assert.True(t, m.IsMinimal())
	assert.False(t, a.IsMinimal())
	assert.Equal(t, KindDFA, m.Kind())
	assert.Equal(t, []string{"q0", "{q1,q2}"}, m.States())
	assert.Equal(t, []int{0}, m.Initial())
	assert.Equal(t, []int{1}, m.Accepting())
	assert.Equal(t, [][][]int{{{1}, {1}}, {{1}, {1}}}, m.Transitions())
}

func TestMinimize_Idempotent(t *testing.T) {
	for _, expr := range []string{"(a*b)+(b*a)", "(ab+ba)*", "a*a*", "∅", ""} {
		a := mustRegex(t, expr)
		m1, err := Minimize(a)
		require.NoError(t, err)
		m2, err := Minimize(m1)
		require.NoError(t, err)

		assert.True(t, m2.IsMinimal(), expr)
		assert.Equal(t, m1.States(), m2.States(), expr)
		assert.Equal(t, m1.Transitions(), m2.Transitions(), expr)
		assert.Equal(t, m1.Accepting(), m2.Accepting(), expr)
	}
}

func TestMinimize_Language(t *testing.T) {
	automata := []*Automaton{
		mustNew(t, mod3Definition()),
		mustNew(t, nfaDefinition()),
		mustNew(t, enfaDefinition()),
		mustRegex(t, "(a+b)*abb"),
	}
	for _, a := range automata {
		m, err := Minimize(a)
		require.NoError(t, err)
		letters := wordLetters(a)
		assert.Equal(t, language(a, letters, 6), language(m, letters, 6))
	}
}

func TestMinimize_KnownSizes(t *testing.T) {
	tests := []struct {
		expr   string
		states int
	}{
		{"(a+b)*abb", 4},
		{"a*", 1},
		{"a*b", 3},
		{"(a*b)+(b*a)", 7},
	}
	for _, tt := range tests {
		m, err := Minimize(mustRegex(t, tt.expr))
		require.NoError(t, err)
		assert.Equal(t, tt.states, m.NumStates(), tt.expr)
	}
}

func TestReduced_IsCachedCopy(t *testing.T) {
	a := mustNew(t, nfaDefinition())
	m1, err := a.Reduced()
	require.NoError(t, err)
	m1.RenameState(m1.States()[0], "changed")

	m2, err := a.Reduced()
	require.NoError(t, err)
	assert.NotEqual(t, "changed", m2.States()[0])
	assert.True(t, Equals(m1, m2))
}

func TestRemoveDeadStates(t *testing.T) {
	a := mustNew(t, mod3Definition())
	assert.Equal(t, 3, RemoveDeadStates(a).NumStates())

	d, err := Determinize(mustNew(t, nfaDefinition()))
	require.NoError(t, err)
	trimmed := RemoveDeadStates(d)
	assert.Equal(t, []string{"0", "{0,1}"}, trimmed.States())
	assert.Equal(t, KindNFA, trimmed.Kind())
	assert.True(t, Run(trimmed, "aba"))
	assert.True(t, Equals(trimmed, d))

	empty := RemoveDeadStates(mustRegex(t, "a∅"))
	assert.Equal(t, 1, empty.NumStates())
	assert.True(t, IsEmpty(empty))
}

func TestIsEmptyIsTotal(t *testing.T) {
	assert.True(t, IsEmpty(mustRegex(t, "∅")))
	assert.True(t, IsEmpty(mustRegex(t, "ab∅")))
	assert.False(t, IsEmpty(mustRegex(t, "")))
	assert.False(t, IsEmpty(mustNew(t, nfaDefinition())))

	assert.True(t, IsTotal(mustRegex(t, "(a+b)*")))
	assert.True(t, IsTotal(mustRegex(t, "a*")))
	assert.False(t, IsTotal(mustRegex(t, "a*b")))
	assert.False(t, IsTotal(mustNew(t, mod3Definition())))
}

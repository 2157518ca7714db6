package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomata_Factory(t *testing.T) {
	automata := &Automata{}

	empty := automata.MakeEmpty("a", "b")
	assert.True(t, empty.IsMinimal())
	assert.True(t, IsEmpty(empty))
	assert.Equal(t, KindDFA, empty.Kind())

	eps := automata.MakeEmptyString("a", "ε", "a")
	assert.Equal(t, []string{"a"}, eps.Letters())
	assert.True(t, Run(eps, ""))
	assert.False(t, Run(eps, "a"))

	anyString := automata.MakeAnyString("a", "b")
	assert.True(t, IsTotal(anyString))

	word := automata.MakeWord([]string{"if", "then"}, "else")
	assert.Equal(t, []string{"if", "then", "else"}, word.Letters())
	assert.True(t, word.AcceptsWord([]string{"if", "then"}))
	assert.False(t, word.AcceptsWord([]string{"if"}))
	assert.False(t, word.AcceptsWord([]string{"if", "then", "else"}))

	foo := automata.MakeString("foo")
	assert.True(t, Run(foo, "foo"))
	assert.False(t, Run(foo, "fo"))
	assert.True(t, Equals(foo, mustRegex(t, "foo")))
}

func TestAutomata_FactoryIsMinimal(t *testing.T) {
	automata := &Automata{}
	for _, a := range []*Automaton{
		automata.MakeEmpty("a"),
		automata.MakeEmpty(),
		automata.MakeEmptyString("a", "b"),
		automata.MakeEmptyString(),
		automata.MakeAnyString("x"),
		automata.MakeString("abc", "d"),
		automata.MakeString(""),
	} {
		m, err := minimizeOnce(a)
		require.NoError(t, err)
		assert.Equal(t, a.NumStates(), m.NumStates(), a.String())
	}
}

// minimizeOnce ignores the minimal flag and refines again.
func minimizeOnce(a *Automaton) (*Automaton, error) {
	c := a.clone()
	c.minimal = false
	return Minimize(c)
}

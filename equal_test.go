package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquals_Renamed(t *testing.T) {
	a := mustNew(t, mod3Definition())
	b := mustNew(t, mod3Definition())
	assert.True(t, b.RenameState("0", "zero"))
	assert.True(t, b.RenameState("1", "one"))
	assert.True(t, Equals(a, b))
	assert.True(t, b.Equals(a))
}

func TestEquals_AcceptingCount(t *testing.T) {
	a := mustNew(t, mod3Definition())
	def := mod3Definition()
	def.Accepting = []string{"0"}
	b := mustNew(t, def)
	assert.False(t, Equals(a, b))
	assert.False(t, Equals(b, a))
}

func TestEquals_Properties(t *testing.T) {
	automata := []*Automaton{
		mustNew(t, mod3Definition()),
		mustNew(t, nfaDefinition()),
		mustNew(t, enfaDefinition()),
		mustRegex(t, "(a*b)+(b*a)"),
		mustRegex(t, "a*b*"),
		mustRegex(t, "(a+b)*"),
	}
	for i, a := range automata {
		assert.True(t, Equals(a, a), "reflexive %d", i)
		for j, b := range automata {
			assert.Equal(t, Equals(a, b), Equals(b, a), "symmetric %d %d", i, j)
			if Equals(a, b) {
				assert.Equal(t, language(a, wordLetters(a), 5), language(b, wordLetters(b), 5))
			}
		}
	}
}

func TestEquals_DifferentConstructions(t *testing.T) {
	assert.True(t, Equals(mustNew(t, enfaDefinition()), mustRegex(t, "a*b*")))
	assert.True(t, Equals(mustRegex(t, "(a+b)*"), mustRegex(t, "(a*b*)*")))
	assert.True(t, Equals(mustRegex(t, "a(ba)*"), mustRegex(t, "(ab)*a")))
	assert.False(t, Equals(mustRegex(t, "a*"), mustRegex(t, "a*b*")))
	assert.False(t, Equals(mustRegex(t, "a"), mustRegex(t, "b")))
}

func TestEquals_LetterNamesMatter(t *testing.T) {
	a := mustRegex(t, "ab*")
	b := mustRegex(t, "ab*")
	assert.True(t, Equals(a, b))

	assert.True(t, b.RenameLetter("b", "c"))
	assert.False(t, Equals(a, b))
	assert.True(t, Equals(b, mustRegex(t, "ac*")))

	// Same letters listed in another order.
	assert.True(t, Equals(mustRegex(t, "a+b"), mustRegex(t, "b+a")))
}

package fsa

import (
	"slices"
	"strconv"
)

// Automata builds the elementary automata over a caller-supplied alphabet.
// Epsilon spellings and duplicates are dropped from the letters.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty(letters ...string) *Automaton {
	b := newBuilder(inputLetters(letters))
	s := b.createState(deadStateName)
	b.setInitial(s)
	selfLoop(b, s)
	return minimalDFA(b)
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString(letters ...string) *Automaton {
	b := newBuilder(inputLetters(letters))
	s := b.createState("0")
	b.setInitial(s)
	b.setAccept(s, true)
	if len(b.letters) > 0 {
		sink := b.createState(deadStateName)
		for l := range b.letters {
			b.addTransition(s, l, sink)
		}
		selfLoop(b, sink)
	}
	return minimalDFA(b)
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all words.
func (*Automata) MakeAnyString(letters ...string) *Automaton {
	b := newBuilder(inputLetters(letters))
	s := b.createState("0")
	b.setInitial(s)
	b.setAccept(s, true)
	selfLoop(b, s)
	return minimalDFA(b)
}

// MakeWord
// Returns a new (deterministic) automaton that accepts only word. The
// alphabet is letters plus the letters of word.
func (*Automata) MakeWord(word []string, letters ...string) *Automaton {
	b := newBuilder(inputLetters(append(slices.Clone(word), letters...)))
	prev := b.createState("0")
	b.setInitial(prev)
	path := []int{prev}
	for i, name := range word {
		if IsEpsilon(name) {
			continue
		}
		next := b.createState(strconv.Itoa(i + 1))
		b.addTransition(prev, b.letterIndex[name], next)
		path = append(path, next)
		prev = next
	}
	b.setAccept(prev, true)

	if len(b.letters) > 0 {
		sink := b.createState(deadStateName)
		selfLoop(b, sink)
		for _, s := range path {
			for l := range b.letters {
				if b.delta[s][l].None() {
					b.addTransition(s, l, sink)
				}
			}
		}
	}
	return minimalDFA(b)
}

// MakeString
// Returns a new (deterministic) automaton that accepts only s, one letter
// per rune.
func (a *Automata) MakeString(s string, letters ...string) *Automaton {
	return a.MakeWord(Letters(s), letters...)
}

func selfLoop(b *builder, s int) {
	for l := range b.letters {
		b.addTransition(s, l, s)
	}
}

func minimalDFA(b *builder) *Automaton {
	a := b.finish(KindDFA)
	a.minimal = true
	return a
}

func inputLetters(letters []string) []string {
	out := make([]string, 0, len(letters))
	seen := make(map[string]struct{}, len(letters))
	for _, l := range letters {
		if IsEpsilon(l) {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

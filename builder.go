package fsa

import (
	"github.com/bits-and-blooms/bitset"
)

// builder assembles derived automata: reducers, operators and the regex
// compiler create states one by one and add transitions in any order.
// State names are made unique as they are created.
type builder struct {
	states      []string
	taken       map[string]struct{}
	letters     []string
	letterIndex map[string]int
	hasEpsilon  bool
	delta       [][]*bitset.BitSet
	initial     *bitset.BitSet
	accept      *bitset.BitSet
}

// newBuilder starts an automaton over letters. When letters[0] is an epsilon
// spelling it becomes the epsilon letter.
func newBuilder(letters []string) *builder {
	b := &builder{
		taken:       make(map[string]struct{}),
		letters:     letters,
		letterIndex: make(map[string]int, len(letters)),
		initial:     bitset.New(0),
		accept:      bitset.New(0),
	}
	for i, l := range letters {
		b.letterIndex[l] = i
	}
	b.hasEpsilon = len(letters) > 0 && IsEpsilon(letters[0])
	return b
}

// createState adds a state named after name, decorated if the name is taken.
func (b *builder) createState(name string) int {
	name = uniqueName(name, b.taken)
	b.taken[name] = struct{}{}
	state := len(b.states)
	b.states = append(b.states, name)

	row := make([]*bitset.BitSet, len(b.letters))
	for l := range row {
		row[l] = bitset.New(0)
	}
	b.delta = append(b.delta, row)
	return state
}

func (b *builder) numStates() int {
	return len(b.states)
}

func (b *builder) addTransition(source, letter, dest int) {
	b.delta[source][letter].Set(uint(dest))
}

// addEpsilon adds an epsilon edge; the builder must have an epsilon letter.
func (b *builder) addEpsilon(source, dest int) {
	b.delta[source][0].Set(uint(dest))
}

func (b *builder) setAccept(state int, accept bool) {
	b.accept.SetTo(uint(state), accept)
}

func (b *builder) setInitial(state int) {
	b.initial.Set(uint(state))
}

// copyStates appends every state of a, with its transitions and accepting
// flags, and returns the index of the first copied state. Letters are mapped
// by name; the epsilon letter of a maps to the builder's epsilon letter.
func (b *builder) copyStates(a *Automaton, prefix string) int {
	offset := b.numStates()
	for _, name := range a.states {
		b.createState(prefix + name)
	}

	letterMap := make([]int, len(a.letters))
	for l, name := range a.letters {
		if a.hasEpsilon && l == 0 {
			letterMap[l] = 0
			continue
		}
		letterMap[l] = b.letterIndex[name]
	}

	for s, row := range a.delta {
		for l, targets := range row {
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				b.addTransition(offset+s, letterMap[l], offset+int(t))
			}
		}
		if a.accept.Test(uint(s)) {
			b.setAccept(offset+s, true)
		}
	}
	return offset
}

func (b *builder) finish(kind Kind) *Automaton {
	n := len(b.states)
	a := &Automaton{
		kind:       kind,
		states:     b.states,
		letters:    b.letters,
		hasEpsilon: b.hasEpsilon,
		delta:      b.delta,
		initial:    bitset.New(uint(n)),
		accept:     bitset.New(uint(n)),
	}
	for s := 0; s < n; s++ {
		a.initial.SetTo(uint(s), b.initial.Test(uint(s)))
		a.accept.SetTo(uint(s), b.accept.Test(uint(s)))
	}
	return a
}

// uniqueName returns name, or name followed by enough primes to be absent
// from taken.
func uniqueName(name string, taken map[string]struct{}) string {
	for {
		if _, ok := taken[name]; !ok {
			return name
		}
		name += "'"
	}
}

// unifyLetters merges alphabets by name, keeping first-seen order. Epsilon
// letters are dropped; withEpsilon puts Epsilon at index 0.
func unifyLetters(withEpsilon bool, automata ...*Automaton) []string {
	letters := make([]string, 0)
	if withEpsilon {
		letters = append(letters, Epsilon)
	}
	seen := make(map[string]struct{})
	for _, a := range automata {
		for l, name := range a.letters {
			if a.hasEpsilon && l == 0 {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			letters = append(letters, name)
		}
	}
	return letters
}

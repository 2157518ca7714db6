package fsa

import (
	"errors"
	"fmt"

	u "github.com/araddon/gou"
	"github.com/bits-and-blooms/bitset"
)

var errNoOperands = errors.New("operator needs at least one automaton")

func operandPrefix(i int) string {
	return fmt.Sprintf("%d.", i+1)
}

// Union returns an ENFA accepting every word accepted by one of the automata.
// A fresh start state has epsilon edges to every operand's initial states;
// alphabets are merged by letter name.
func Union(automata ...*Automaton) (*Automaton, error) {
	if len(automata) == 0 {
		return nil, errNoOperands
	}
	b := newBuilder(unifyLetters(true, automata...))
	start := b.createState("start")
	b.setInitial(start)

	for i, a := range automata {
		offset := b.copyStates(a, operandPrefix(i))
		for s, ok := a.initial.NextSet(0); ok; s, ok = a.initial.NextSet(s + 1) {
			b.addEpsilon(start, offset+int(s))
		}
	}
	return b.finish(KindENFA), nil
}

// Concatenate returns an ENFA accepting the words made of one word of each
// automaton, in order. Every accepting state of an operand gets epsilon edges
// to the initial states of the next one.
func Concatenate(automata ...*Automaton) (*Automaton, error) {
	if len(automata) == 0 {
		return nil, errNoOperands
	}
	b := newBuilder(unifyLetters(true, automata...))

	offsets := make([]int, len(automata))
	for i, a := range automata {
		offsets[i] = b.copyStates(a, operandPrefix(i))
	}
	for i, a := range automata[:len(automata)-1] {
		next := automata[i+1]
		for f, ok := a.accept.NextSet(0); ok; f, ok = a.accept.NextSet(f + 1) {
			b.setAccept(offsets[i]+int(f), false)
			for s, ok := next.initial.NextSet(0); ok; s, ok = next.initial.NextSet(s + 1) {
				b.addEpsilon(offsets[i]+int(f), offsets[i+1]+int(s))
			}
		}
	}
	first := automata[0]
	for s, ok := first.initial.NextSet(0); ok; s, ok = first.initial.NextSet(s + 1) {
		b.setInitial(offsets[0] + int(s))
	}
	return b.finish(KindENFA), nil
}

// Intersection returns the product DFA of the determinized operands over their
// merged alphabet. A pair of states accepts when both components accept.
func Intersection(a1, a2 *Automaton, opts ...Option) (*Automaton, error) {
	o := newOptions(opts...)
	letters := unifyLetters(false, a1, a2)

	d1, err := Determinize(a1, opts...)
	if err != nil {
		return nil, err
	}
	d2, err := Determinize(a2, opts...)
	if err != nil {
		return nil, err
	}
	d1, d2 = expandAlphabet(d1, letters), expandAlphabet(d2, letters)

	type pair struct{ p, q int }
	b := newBuilder(letters)
	index := make(map[pair]int)
	var workList []pair
	visit := func(pr pair) (int, error) {
		if s, ok := index[pr]; ok {
			return s, nil
		}
		if len(index) >= o.determinizeWorkLimit {
			return 0, fmt.Errorf("%w: more than %d product states", ErrTooComplex, o.determinizeWorkLimit)
		}
		s := b.createState(fmt.Sprintf("(%s,%s)", d1.states[pr.p], d2.states[pr.q]))
		b.setAccept(s, d1.IsAccept(pr.p) && d2.IsAccept(pr.q))
		index[pr] = s
		workList = append(workList, pr)
		return s, nil
	}

	i1, _ := d1.initial.NextSet(0)
	i2, _ := d2.initial.NextSet(0)
	start, err := visit(pair{int(i1), int(i2)})
	if err != nil {
		return nil, err
	}
	b.setInitial(start)

	for len(workList) > 0 {
		pr := workList[0]
		workList = workList[1:]
		s := index[pr]
		for l := range letters {
			t1, _ := d1.delta[pr.p][l].NextSet(0)
			t2, _ := d2.delta[pr.q][l].NextSet(0)
			t, err := visit(pair{int(t1), int(t2)})
			if err != nil {
				return nil, err
			}
			b.addTransition(s, l, t)
		}
	}
	u.Debugf("intersection: %d x %d -> %d states", d1.NumStates(), d2.NumStates(), b.numStates())
	return b.finish(KindDFA), nil
}

// expandAlphabet returns a total DFA over letters (a superset of the letters
// of d, in that order). Letters d does not know lead to a sink.
func expandAlphabet(d *Automaton, letters []string) *Automaton {
	if len(letters) == len(d.letters) {
		same := true
		for l := range letters {
			if letters[l] != d.letters[l] {
				same = false
				break
			}
		}
		if same {
			return d
		}
	}

	b := newBuilder(letters)
	offset := b.copyStates(d, "")
	b.initial = d.initial.Clone()
	sink := -1
	for l, name := range letters {
		if _, ok := d.LetterIndex(name); ok {
			continue
		}
		if sink == -1 {
			sink = b.createState(deadStateName)
			for sl := range letters {
				b.addTransition(sink, sl, sink)
			}
		}
		for s := range d.states {
			b.addTransition(offset+s, l, sink)
		}
	}
	return b.finish(KindDFA)
}

// Complement returns a DFA accepting exactly the words over the alphabet of a
// that a rejects.
func Complement(a *Automaton, opts ...Option) (*Automaton, error) {
	d, err := Determinize(a, opts...)
	if err != nil {
		return nil, err
	}
	for s := range d.states {
		d.accept.SetTo(uint(s), !d.accept.Test(uint(s)))
	}
	d.invalidate()
	return d, nil
}

// Repeat returns the Kleene star of a as an ENFA. A fresh accepting start
// state has epsilon edges to the initial states of a, and every accepting
// state of a has epsilon edges back to them.
func Repeat(a *Automaton) *Automaton {
	b := newBuilder(unifyLetters(true, a))
	start := b.createState("start")
	b.setInitial(start)
	b.setAccept(start, true)

	offset := b.copyStates(a, "")
	for s, ok := a.initial.NextSet(0); ok; s, ok = a.initial.NextSet(s + 1) {
		b.addEpsilon(start, offset+int(s))
		for f, ok := a.accept.NextSet(0); ok; f, ok = a.accept.NextSet(f + 1) {
			b.addEpsilon(offset+int(f), offset+int(s))
		}
	}
	return b.finish(KindENFA)
}

// Optional returns an ENFA accepting the words of a and the empty word.
func Optional(a *Automaton) *Automaton {
	b := newBuilder(unifyLetters(true, a))
	start := b.createState("start")
	b.setInitial(start)
	b.setAccept(start, true)

	offset := b.copyStates(a, "")
	for s, ok := a.initial.NextSet(0); ok; s, ok = a.initial.NextSet(s + 1) {
		b.addEpsilon(start, offset+int(s))
	}
	return b.finish(KindENFA)
}

// RepeatMin returns an automaton accepting min or more concatenated words of a.
func RepeatMin(a *Automaton, min int) (*Automaton, error) {
	if min <= 0 {
		return Repeat(a), nil
	}
	as := make([]*Automaton, 0, min+1)
	for i := 0; i < min; i++ {
		as = append(as, a)
	}
	as = append(as, Repeat(a))
	return Concatenate(as...)
}

// RepeatRange returns an automaton accepting between min and max
// concatenated words of a.
func RepeatRange(a *Automaton, min, max int) (*Automaton, error) {
	letters := unifyLetters(false, a)
	if min < 0 {
		min = 0
	}
	if min > max {
		return defaultAutomata.MakeEmpty(letters...), nil
	}
	if max == 0 {
		return defaultAutomata.MakeEmptyString(letters...), nil
	}

	as := make([]*Automaton, 0, max)
	for i := 0; i < min; i++ {
		as = append(as, a)
	}
	if max > min {
		opt := Optional(a)
		for i := min; i < max; i++ {
			as = append(as, opt)
		}
	}
	return Concatenate(as...)
}

// Reverse returns an ENFA accepting the mirror image of every word of a.
func Reverse(a *Automaton) *Automaton {
	b := newBuilder(unifyLetters(true, a))
	start := b.createState("start")
	b.setInitial(start)

	offset := b.numStates()
	for _, name := range a.states {
		b.createState(name)
	}
	for s, row := range a.delta {
		for l, targets := range row {
			bl := 0
			if !a.hasEpsilon || l != 0 {
				bl = b.letterIndex[a.letters[l]]
			}
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				b.addTransition(offset+int(t), bl, offset+s)
			}
		}
	}
	for f, ok := a.accept.NextSet(0); ok; f, ok = a.accept.NextSet(f + 1) {
		b.addEpsilon(start, offset+int(f))
	}
	for s, ok := a.initial.NextSet(0); ok; s, ok = a.initial.NextSet(s + 1) {
		b.setAccept(offset+int(s), true)
	}
	return b.finish(KindENFA)
}

// IsEmpty Returns true if the given automaton accepts no words.
func IsEmpty(a *Automaton) bool {
	for _, s := range a.reachableOrder() {
		if a.IsAccept(s) {
			return false
		}
	}
	return true
}

// IsTotal Returns true if the given automaton accepts every word over its
// alphabet.
func IsTotal(a *Automaton) bool {
	m, err := a.reducedView()
	if err != nil {
		u.Warnf("IsTotal: %v", err)
		return false
	}
	for s := range m.states {
		if !m.IsAccept(s) {
			return false
		}
	}
	return true
}

// RemoveDeadStates returns a copy of a keeping only the states that are
// reachable from an initial state and can reach an accepting state. When no
// state is live the result is a single rejecting state.
func RemoveDeadStates(a *Automaton) *Automaton {
	live := bitset.New(uint(a.NumStates()))
	for _, s := range a.reachableOrder() {
		live.Set(uint(s))
	}
	live.InPlaceIntersection(a.coReachable())

	b := newBuilder(a.Letters())
	mapping := make([]int, a.NumStates())
	for s, name := range a.states {
		mapping[s] = -1
		if live.Test(uint(s)) {
			mapping[s] = b.createState(name)
			b.setAccept(mapping[s], a.IsAccept(s))
			if a.initial.Test(uint(s)) {
				b.setInitial(mapping[s])
			}
		}
	}
	if b.numStates() == 0 {
		b.setInitial(b.createState(deadStateName))
	}
	for s, row := range a.delta {
		if mapping[s] == -1 {
			continue
		}
		for l, targets := range row {
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				if mapping[t] != -1 {
					b.addTransition(mapping[s], l, mapping[t])
				}
			}
		}
	}

	r := b.finish(a.kind)
	if r.kind != KindENFA {
		r.kind = r.inferKind()
	}
	return r
}

// coReachable returns the states from which an accepting state can be reached.
func (a *Automaton) coReachable() *bitset.BitSet {
	n := a.NumStates()
	preds := make([][]int, n)
	for s, row := range a.delta {
		for _, targets := range row {
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				preds[t] = append(preds[t], s)
			}
		}
	}

	seen := a.accept.Clone()
	workList := members(a.accept)
	for len(workList) > 0 {
		t := workList[0]
		workList = workList[1:]
		for _, s := range preds[t] {
			if !seen.Test(uint(s)) {
				seen.Set(uint(s))
				workList = append(workList, s)
			}
		}
	}
	return seen
}

// IsFinite Returns true if the given automaton accepts finitely many words,
// that is when no cycle of its minimal DFA can still reach acceptance.
func IsFinite(a *Automaton) bool {
	m, err := a.reducedView()
	if err != nil {
		u.Warnf("IsFinite: %v", err)
		return false
	}
	live := m.coReachable()
	start, _ := m.initial.NextSet(0)
	if !live.Test(start) {
		return true
	}
	path := bitset.New(uint(m.NumStates()))
	visited := bitset.New(uint(m.NumStates()))
	return isFinite(m, live, int(start), path, visited)
}

// isFinite checks whether a live loop goes through state. path holds the
// states on the current DFS path, visited the states already proven loop free.
func isFinite(m *Automaton, live *bitset.BitSet, state int, path, visited *bitset.BitSet) bool {
	path.Set(uint(state))
	_, targets := m.liveEdges(live, state)
	for _, t := range targets {
		if path.Test(uint(t)) || (!visited.Test(uint(t)) && !isFinite(m, live, t, path, visited)) {
			return false
		}
	}
	path.Clear(uint(state))
	visited.Set(uint(state))
	return true
}

// Singleton returns the only word accepted by a. ok is false when a accepts
// no word or more than one.
func Singleton(a *Automaton) (word []string, ok bool) {
	m, err := a.reducedView()
	if err != nil {
		u.Warnf("Singleton: %v", err)
		return nil, false
	}
	live := m.coReachable()
	s, _ := m.initial.NextSet(0)
	if !live.Test(s) {
		return nil, false
	}

	word = []string{}
	visited := bitset.New(uint(m.NumStates()))
	state := int(s)
	for {
		visited.Set(uint(state))
		letters, targets := m.liveEdges(live, state)
		if m.IsAccept(state) {
			if len(letters) == 0 {
				return word, true
			}
			return nil, false
		}
		if len(letters) != 1 || visited.Test(uint(targets[0])) {
			return nil, false
		}
		word = append(word, m.letters[letters[0]])
		state = targets[0]
	}
}

// CommonPrefix returns the longest word that is a prefix of every word
// accepted by a, or nil when a accepts nothing.
func CommonPrefix(a *Automaton) []string {
	m, err := a.reducedView()
	if err != nil {
		u.Warnf("CommonPrefix: %v", err)
		return nil
	}
	live := m.coReachable()
	s, _ := m.initial.NextSet(0)
	if !live.Test(s) {
		return nil
	}

	prefix := []string{}
	visited := bitset.New(uint(m.NumStates()))
	state := int(s)
	for !m.IsAccept(state) && !visited.Test(uint(state)) {
		visited.Set(uint(state))
		letters, targets := m.liveEdges(live, state)
		if len(letters) != 1 {
			break
		}
		prefix = append(prefix, m.letters[letters[0]])
		state = targets[0]
	}
	return prefix
}

// liveEdges lists the transitions of state that lead into live, as parallel
// letter and target slices.
func (a *Automaton) liveEdges(live *bitset.BitSet, state int) (letters, targets []int) {
	for l, ts := range a.delta[state] {
		for t, ok := ts.NextSet(0); ok; t, ok = ts.NextSet(t + 1) {
			if live.Test(t) {
				letters = append(letters, l)
				targets = append(targets, int(t))
			}
		}
	}
	return letters, targets
}

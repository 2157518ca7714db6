package fsa

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	u "github.com/araddon/gou"
	"github.com/bits-and-blooms/bitset"
)

// Automaton is a finite automaton over named states and named letters.
// States and letters are addressed by their index in States() and Letters().
// The transition function is total: every (state, letter) pair has a target
// set, possibly empty. When the automaton has an epsilon letter it is letter 0.
type Automaton struct {
	kind Kind

	states  []string
	letters []string

	// True if letters[0] is the epsilon letter.
	hasEpsilon bool

	// delta[state][letter] holds the target states.
	delta [][]*bitset.BitSet

	initial *bitset.BitSet
	accept  *bitset.BitSet

	// Set on automata produced by minimization; renames keep it.
	minimal bool

	// Derived values, all dropped together by invalidate.
	stateIndex  map[string]int
	letterIndex map[string]int
	display     string
	reduced     *Automaton
}

// New builds an automaton from def. When def.Kind is empty the kind is
// inferred: an epsilon letter makes an ENFA, a single initial state with
// exactly one target everywhere makes a DFA, anything else is an NFA.
func New(def Definition) (*Automaton, error) {
	if def.Kind == "" {
		return build(def, -1)
	}
	kind, err := ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}
	return build(def, kind)
}

// NewDFA builds a deterministic automaton, rejecting definitions that are not
// total and deterministic.
func NewDFA(def Definition) (*Automaton, error) {
	return build(def, KindDFA)
}

// NewNFA builds a non-deterministic automaton without epsilon transitions.
func NewNFA(def Definition) (*Automaton, error) {
	return build(def, KindNFA)
}

// NewENFA builds a non-deterministic automaton that may use an epsilon letter.
func NewENFA(def Definition) (*Automaton, error) {
	return build(def, KindENFA)
}

func build(def Definition, kind Kind) (*Automaton, error) {
	if len(def.States) == 0 {
		return nil, malformed("empty state list", "")
	}
	if len(def.Letters) == 0 {
		return nil, malformed("empty letter list", "")
	}

	a := &Automaton{}

	stateIndex := make(map[string]int, len(def.States))
	for _, name := range def.States {
		if name == "" {
			return nil, malformed("empty state name", name)
		}
		if _, ok := stateIndex[name]; ok {
			return nil, malformed("duplicate state", name)
		}
		stateIndex[name] = len(a.states)
		a.states = append(a.states, name)
	}

	// The epsilon letter, if any, goes first.
	epsilon := ""
	for _, name := range def.Letters {
		if !IsEpsilon(name) {
			continue
		}
		if epsilon != "" {
			return nil, malformed("more than one epsilon letter", name)
		}
		epsilon = name
	}
	if epsilon != "" {
		a.hasEpsilon = true
		a.letters = append(a.letters, epsilon)
	}
	letterIndex := make(map[string]int, len(def.Letters))
	if epsilon != "" {
		letterIndex[epsilon] = 0
	}
	for _, name := range def.Letters {
		if name == "" {
			return nil, malformed("empty letter name", name)
		}
		if name == epsilon {
			continue
		}
		if _, ok := letterIndex[name]; ok {
			return nil, malformed("duplicate letter", name)
		}
		letterIndex[name] = len(a.letters)
		a.letters = append(a.letters, name)
	}

	numStates := len(a.states)
	a.delta = newDelta(numStates, len(a.letters))

	for _, from := range slices.Sorted(maps.Keys(def.Transitions)) {
		s, ok := stateIndex[from]
		if !ok {
			return nil, malformed("transition from unknown state", from)
		}
		row := def.Transitions[from]
		for _, letter := range slices.Sorted(maps.Keys(row)) {
			l, ok := letterIndex[letter]
			if !ok {
				return nil, malformed("transition on unknown letter", letter)
			}
			for _, to := range Targets(row[letter]...) {
				t, ok := stateIndex[to]
				if !ok {
					return nil, malformed("transition to unknown state", to)
				}
				a.delta[s][l].Set(uint(t))
			}
		}
	}

	if len(def.Initial) == 0 {
		return nil, malformed("no initial state", "")
	}
	a.initial = bitset.New(uint(numStates))
	for _, name := range def.Initial {
		s, ok := stateIndex[name]
		if !ok {
			return nil, malformed("unknown initial state", name)
		}
		a.initial.Set(uint(s))
	}
	a.accept = bitset.New(uint(numStates))
	for _, name := range def.Accepting {
		s, ok := stateIndex[name]
		if !ok {
			return nil, malformed("unknown accepting state", name)
		}
		a.accept.Set(uint(s))
	}

	switch kind {
	case KindDFA:
		if err := a.checkDeterministic(); err != nil {
			return nil, err
		}
	case KindNFA:
		if a.hasEpsilon {
			return nil, malformed("epsilon letter in an automaton without epsilon transitions", a.letters[0])
		}
	case KindENFA:
	default:
		kind = a.inferKind()
	}
	a.kind = kind

	a.stateIndex = stateIndex
	a.letterIndex = letterIndex
	return a, nil
}

func (a *Automaton) checkDeterministic() error {
	if a.hasEpsilon {
		return malformed("epsilon letter in a deterministic automaton", a.letters[0])
	}
	if a.initial.Count() != 1 {
		return malformed("deterministic automaton needs exactly one initial state", "")
	}
	for s, row := range a.delta {
		for l, targets := range row {
			if targets.Count() != 1 {
				return malformed(fmt.Sprintf("deterministic automaton needs one target on %q from", a.letters[l]), a.states[s])
			}
		}
	}
	return nil
}

func (a *Automaton) inferKind() Kind {
	if a.hasEpsilon {
		return KindENFA
	}
	if a.checkDeterministic() == nil {
		return KindDFA
	}
	return KindNFA
}

func newDelta(numStates, numLetters int) [][]*bitset.BitSet {
	delta := make([][]*bitset.BitSet, numStates)
	for s := range delta {
		delta[s] = make([]*bitset.BitSet, numLetters)
		for l := range delta[s] {
			delta[s][l] = bitset.New(uint(numStates))
		}
	}
	return delta
}

// Kind returns the automaton variant.
func (a *Automaton) Kind() Kind {
	return a.kind
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumLetters How many letters the alphabet has, epsilon included.
func (a *Automaton) NumLetters() int {
	return len(a.letters)
}

// HasEpsilon reports whether letter 0 is the epsilon letter.
func (a *Automaton) HasEpsilon() bool {
	return a.hasEpsilon
}

// States returns a copy of the state names.
func (a *Automaton) States() []string {
	return slices.Clone(a.states)
}

// Letters returns a copy of the letter names.
func (a *Automaton) Letters() []string {
	return slices.Clone(a.letters)
}

// Initial returns the initial state indices in increasing order.
func (a *Automaton) Initial() []int {
	return members(a.initial)
}

// Accepting returns the accepting state indices in increasing order.
func (a *Automaton) Accepting() []int {
	return members(a.accept)
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.accept.Test(uint(state))
}

// IsMinimal reports whether the automaton is a minimal DFA. Results of
// minimization know it; any other DFA is compared against its cached minimal
// form, which has as many states only when nothing could be merged or pruned.
func (a *Automaton) IsMinimal() bool {
	if a.minimal {
		return true
	}
	if a.kind != KindDFA {
		return false
	}
	m, err := a.reducedView()
	if err != nil {
		return false
	}
	a.minimal = m.NumStates() == a.NumStates()
	return a.minimal
}

// Transitions returns a deep copy of the transition table, indexed by state
// then letter.
func (a *Automaton) Transitions() [][][]int {
	table := make([][][]int, len(a.delta))
	for s, row := range a.delta {
		table[s] = make([][]int, len(row))
		for l, targets := range row {
			table[s][l] = members(targets)
		}
	}
	return table
}

// Targets returns the direct targets of state on letter, without any epsilon
// closure.
func (a *Automaton) Targets(state, letter int) []int {
	if state < 0 || state >= len(a.delta) || letter < 0 || letter >= len(a.letters) {
		return nil
	}
	return members(a.delta[state][letter])
}

// StateIndex looks up a state by name.
func (a *Automaton) StateIndex(name string) (int, bool) {
	if a.stateIndex == nil {
		a.stateIndex = make(map[string]int, len(a.states))
		for i, s := range a.states {
			a.stateIndex[s] = i
		}
	}
	i, ok := a.stateIndex[name]
	return i, ok
}

// LetterIndex looks up a letter by name.
func (a *Automaton) LetterIndex(name string) (int, bool) {
	if a.letterIndex == nil {
		a.letterIndex = make(map[string]int, len(a.letters))
		for i, l := range a.letters {
			a.letterIndex[l] = i
		}
	}
	i, ok := a.letterIndex[name]
	return i, ok
}

// inputLetter resolves a letter of an input word. The epsilon letter cannot be
// consumed and is treated as unknown.
func (a *Automaton) inputLetter(name string) (int, bool) {
	l, ok := a.LetterIndex(name)
	if !ok || (a.hasEpsilon && l == 0) {
		return -1, false
	}
	return l, true
}

// RenameState renames a state. It fails, leaving the automaton unchanged, when
// old does not exist or name is already taken.
func (a *Automaton) RenameState(old, name string) bool {
	return a.TryRenameState(old, name) == nil
}

// TryRenameState is RenameState reporting the failure reason.
func (a *Automaton) TryRenameState(old, name string) error {
	s, ok := a.StateIndex(old)
	if !ok {
		return fmt.Errorf("%w: no state %q", ErrNameCollision, old)
	}
	if name == "" {
		return fmt.Errorf("%w: empty state name", ErrNameCollision)
	}
	if _, taken := a.StateIndex(name); taken {
		return fmt.Errorf("%w: state %q already exists", ErrNameCollision, name)
	}
	a.states[s] = name
	a.invalidate()
	u.Debugf("renamed state %d %q -> %q", s, old, name)
	return nil
}

// RenameLetter renames a letter. The epsilon letter cannot be renamed and no
// letter can be renamed to an epsilon spelling.
func (a *Automaton) RenameLetter(old, name string) bool {
	return a.TryRenameLetter(old, name) == nil
}

// TryRenameLetter is RenameLetter reporting the failure reason.
func (a *Automaton) TryRenameLetter(old, name string) error {
	l, ok := a.LetterIndex(old)
	if !ok {
		return fmt.Errorf("%w: no letter %q", ErrNameCollision, old)
	}
	if a.hasEpsilon && l == 0 {
		return fmt.Errorf("%w: the epsilon letter cannot be renamed", ErrNameCollision)
	}
	if name == "" || IsEpsilon(name) {
		return fmt.Errorf("%w: %q is not a valid letter name", ErrNameCollision, name)
	}
	if _, taken := a.LetterIndex(name); taken {
		return fmt.Errorf("%w: letter %q already exists", ErrNameCollision, name)
	}
	a.letters[l] = name
	a.invalidate()
	u.Debugf("renamed letter %d %q -> %q", l, old, name)
	return nil
}

// invalidate drops every value derived from names.
func (a *Automaton) invalidate() {
	a.stateIndex = nil
	a.letterIndex = nil
	a.display = ""
	a.reduced = nil
}

// clone returns a deep copy without derived caches.
func (a *Automaton) clone() *Automaton {
	c := &Automaton{
		kind:       a.kind,
		states:     slices.Clone(a.states),
		letters:    slices.Clone(a.letters),
		hasEpsilon: a.hasEpsilon,
		delta:      make([][]*bitset.BitSet, len(a.delta)),
		initial:    a.initial.Clone(),
		accept:     a.accept.Clone(),
		minimal:    a.minimal,
	}
	for s, row := range a.delta {
		c.delta[s] = make([]*bitset.BitSet, len(row))
		for l, targets := range row {
			c.delta[s][l] = targets.Clone()
		}
	}
	return c
}

// Definition returns a Definition that rebuilds an equal automaton.
func (a *Automaton) Definition() Definition {
	def := Definition{
		Kind:        a.kind.String(),
		States:      a.States(),
		Letters:     a.Letters(),
		Transitions: make(map[string]map[string][]string),
	}
	for s, row := range a.delta {
		for l, targets := range row {
			if targets.None() {
				continue
			}
			if def.Transitions[a.states[s]] == nil {
				def.Transitions[a.states[s]] = make(map[string][]string)
			}
			for _, t := range members(targets) {
				def.Transitions[a.states[s]][a.letters[l]] = append(def.Transitions[a.states[s]][a.letters[l]], a.states[t])
			}
		}
	}
	for _, s := range a.Initial() {
		def.Initial = append(def.Initial, a.states[s])
	}
	for _, s := range a.Accepting() {
		def.Accepting = append(def.Accepting, a.states[s])
	}
	return def
}

// String renders the transition table. Initial states are marked "->",
// accepting states "*".
func (a *Automaton) String() string {
	if a.display != "" {
		return a.display
	}

	var sb strings.Builder
	sb.WriteString(a.kind.String())
	sb.WriteByte('\n')
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "\t")
	for _, l := range a.letters {
		fmt.Fprintf(w, "\t%s", l)
	}
	fmt.Fprintln(w)
	for s, row := range a.delta {
		marker := ""
		if a.initial.Test(uint(s)) {
			marker += "->"
		}
		if a.accept.Test(uint(s)) {
			marker += "*"
		}
		fmt.Fprintf(w, "%s\t%s", marker, a.states[s])
		for _, targets := range row {
			fmt.Fprintf(w, "\t%s", a.nameSet(targets))
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()

	a.display = sb.String()
	return a.display
}

func (a *Automaton) nameSet(set *bitset.BitSet) string {
	names := make([]string, 0, set.Count())
	for _, s := range members(set) {
		names = append(names, a.states[s])
	}
	if a.kind == KindDFA && len(names) == 1 {
		return names[0]
	}
	return "{" + strings.Join(names, ",") + "}"
}

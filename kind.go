package fsa

import (
	"fmt"
	"strings"
)

// Kind tells which of the three automaton variants a value is. All variants
// share one representation; the kind only changes validation and the way a
// single simulation step is computed.
type Kind int

const (
	KindDFA  = Kind(iota) // one initial state, one target per state and letter, no epsilon
	KindNFA               // any number of initials and targets, no epsilon
	KindENFA              // may carry an epsilon letter at index 0
)

func (k Kind) String() string {
	switch k {
	case KindDFA:
		return "dfa"
	case KindNFA:
		return "nfa"
	case KindENFA:
		return "enfa"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by Kind.String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfa":
		return KindDFA, nil
	case "nfa":
		return KindNFA, nil
	case "enfa", "epsilon-nfa", "ε-nfa":
		return KindENFA, nil
	}
	return 0, malformed("unknown automaton kind", s)
}

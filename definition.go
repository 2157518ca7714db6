package fsa

import (
	"strings"

	"github.com/lytics/confl"
)

// Definition is the table-like description an automaton is built from.
//
// Transitions is keyed by source state name, then letter name. Each value is
// a list of target state names; a single element may also hold the compact
// comma-joined form ("q1,q2"). Missing entries are empty transition sets.
type Definition struct {
	Kind        string                         `json:"kind"` // "dfa", "nfa", "enfa" or empty to infer
	States      []string                       `json:"states"`
	Letters     []string                       `json:"letters"`
	Transitions map[string]map[string][]string `json:"-"`
	Initial     []string                       `json:"initial"`
	Accepting   []string                       `json:"accepting"`
}

// Targets flattens target lists that may use the comma-joined form, trimming
// blanks and dropping empty names.
func Targets(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// conflDefinition is the confl text layout of a Definition. Transitions are
// listed as records since state names are free-form.
type conflDefinition struct {
	Kind        string            `json:"kind"`
	States      []string          `json:"states"`
	Letters     []string          `json:"letters"`
	Transitions []conflTransition `json:"transitions"`
	Initial     []string          `json:"initial"`
	Accepting   []string          `json:"accepting"`
}

type conflTransition struct {
	From    string   `json:"from"`
	Letter  string   `json:"letter"`
	To      string   `json:"to"`      // comma-joined targets
	Targets []string `json:"targets"` // or an explicit list
}

// DecodeDefinition reads a definition written in confl:
//
//	kind    = dfa
//	states  = ["q0", "q1"]
//	letters = ["a", "b"]
//	initial = ["q0"]
//	accepting = ["q1"]
//	transitions = [
//	  { from : "q0", letter : "a", to : "q1" },
//	  { from : "q1", letter : "b", targets : ["q0", "q1"] }
//	]
func DecodeDefinition(text string) (*Definition, error) {
	var cd conflDefinition
	if _, err := confl.Decode(text, &cd); err != nil {
		return nil, &DefinitionError{Reason: "cannot decode: " + err.Error(), Err: err}
	}

	def := &Definition{
		Kind:        cd.Kind,
		States:      cd.States,
		Letters:     cd.Letters,
		Initial:     cd.Initial,
		Accepting:   cd.Accepting,
		Transitions: make(map[string]map[string][]string),
	}
	for _, t := range cd.Transitions {
		if t.From == "" || t.Letter == "" {
			return nil, malformed("transition record without from/letter", t.From)
		}
		row := def.Transitions[t.From]
		if row == nil {
			row = make(map[string][]string)
			def.Transitions[t.From] = row
		}
		row[t.Letter] = append(row[t.Letter], Targets(t.To)...)
		row[t.Letter] = append(row[t.Letter], Targets(t.Targets...)...)
	}
	return def, nil
}

// LoadDefinition decodes a confl definition and builds the automaton.
func LoadDefinition(text string) (*Automaton, error) {
	def, err := DecodeDefinition(text)
	if err != nil {
		return nil, err
	}
	return New(*def)
}

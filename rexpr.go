package fsa

import (
	"strings"
	"unicode"
)

type rexKind int

const (
	rexKindEpsilon = rexKind(iota)
	rexKindLetter
	rexKindUnion
	rexKindConcat
	rexKindStar
	rexKindEmpty
)

// rex is a symbolic regular expression used during state elimination. A nil
// *rex is the empty language (no edge). Values are never mutated after
// construction; the constructors below simplify as they build.
type rex struct {
	kind  rexKind
	token string // rendered letter for rexKindLetter
	items []*rex
	text  string
}

var epsilonRex = &rex{kind: rexKindEpsilon, text: "ε"}

// emptyRex is the written-out empty language. The constructors never produce
// it; it only pins a letter into the alphabet as token∅.
var emptyRex = &rex{kind: rexKindEmpty, text: "∅"}

func letterRex(token string) *rex {
	return &rex{kind: rexKindLetter, token: token, text: token}
}

func (r *rex) nullable() bool {
	switch r.kind {
	case rexKindEpsilon, rexKindStar:
		return true
	case rexKindUnion:
		for _, it := range r.items {
			if it.nullable() {
				return true
			}
		}
		return false
	case rexKindConcat:
		for _, it := range r.items {
			if !it.nullable() {
				return false
			}
		}
		return true
	}
	return false
}

func rexUnion(a, b *rex) *rex {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	var items []*rex
	seen := make(map[string]struct{})
	add := func(r *rex) {
		if _, ok := seen[r.text]; ok {
			return
		}
		seen[r.text] = struct{}{}
		items = append(items, r)
	}
	for _, r := range []*rex{a, b} {
		if r.kind == rexKindUnion {
			for _, it := range r.items {
				add(it)
			}
		} else {
			add(r)
		}
	}

	// ε is redundant next to a nullable alternative.
	if _, ok := seen[epsilonRex.text]; ok && len(items) > 1 {
		for _, it := range items {
			if it.kind != rexKindEpsilon && it.nullable() {
				items = dropEpsilon(items)
				break
			}
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	return newRex(rexKindUnion, items)
}

func rexConcat(a, b *rex) *rex {
	if a == nil || b == nil {
		return nil
	}
	if a.kind == rexKindEpsilon {
		return b
	}
	if b.kind == rexKindEpsilon {
		return a
	}

	var items []*rex
	for _, r := range []*rex{a, b} {
		if r.kind == rexKindConcat {
			items = append(items, r.items...)
		} else {
			items = append(items, r)
		}
	}
	return newRex(rexKindConcat, items)
}

func rexStar(a *rex) *rex {
	if a == nil {
		return epsilonRex
	}
	switch a.kind {
	case rexKindEpsilon, rexKindStar:
		return a
	case rexKindUnion:
		items := dropEpsilon(a.items)
		switch len(items) {
		case 0:
			return epsilonRex
		case 1:
			return rexStar(items[0])
		}
		if len(items) != len(a.items) {
			a = newRex(rexKindUnion, items)
		}
	}
	return newRex(rexKindStar, []*rex{a})
}

// deadLetter renders token∅: no word, but the letter stays in the alphabet.
func deadLetter(token string) *rex {
	return newRex(rexKindConcat, []*rex{letterRex(token), emptyRex})
}

// collectTokens adds the letter tokens used by r to seen.
func (r *rex) collectTokens(seen map[string]struct{}) {
	if r.kind == rexKindLetter {
		seen[r.token] = struct{}{}
	}
	for _, it := range r.items {
		it.collectTokens(seen)
	}
}

func dropEpsilon(items []*rex) []*rex {
	out := make([]*rex, 0, len(items))
	for _, it := range items {
		if it.kind != rexKindEpsilon {
			out = append(out, it)
		}
	}
	return out
}

func newRex(kind rexKind, items []*rex) *rex {
	r := &rex{kind: kind, items: items}
	r.text = r.render()
	return r
}

// precedence: union binds loosest, star tightest.
func (r *rex) precedence() int {
	switch r.kind {
	case rexKindUnion:
		return 0
	case rexKindConcat:
		return 1
	case rexKindStar:
		return 2
	}
	return 3
}

func (r *rex) render() string {
	var sb strings.Builder
	switch r.kind {
	case rexKindUnion:
		for i, it := range r.items {
			if i > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(it.text)
		}
	case rexKindConcat:
		for _, it := range r.items {
			sb.WriteString(it.wrap(1))
		}
	case rexKindStar:
		sb.WriteString(r.items[0].wrap(3))
		sb.WriteByte('*')
	default:
		return r.text
	}
	return sb.String()
}

// wrap parenthesizes r when it binds looser than min.
func (r *rex) wrap(min int) string {
	if r.precedence() < min {
		return "(" + r.text + ")"
	}
	return r.text
}

// letterToken renders a letter name as a regex token: a one-rune name that is
// not an operator stands for itself, anything else is written <name>.
func letterToken(name string) (string, bool) {
	if name == "" || IsEpsilon(name) || strings.ContainsAny(name, "<>") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", false
	}
	runes := []rune(name)
	if len(runes) == 1 && !strings.ContainsRune("()+*.ελ∅", runes[0]) {
		return name, true
	}
	return "<" + name + ">", true
}

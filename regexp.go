package fsa

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	u "github.com/araddon/gou"
)

// Regular expression syntax, loosest binding first:
//
//	e + f    union
//	e f      concatenation, also written e.f
//	e*       Kleene star
//	(e)      grouping
//	a        a letter: any single rune other than ( ) + * . < > and blanks
//	<name>   a letter with a multi-rune name
//	ε λ      the empty word (also <eps>, <epsilon>)
//	∅        the empty language
//
// Blanks are ignored. Opening parentheses that are never closed are dropped
// before parsing; an unmatched closing parenthesis is an error.

var regexLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Name", Pattern: `<[^<>\s]+>`},
	{Name: "Epsilon", Pattern: `[ελ]`},
	{Name: "Empty", Pattern: `∅`},
	{Name: "Operator", Pattern: `[()+*.]`},
	{Name: "Letter", Pattern: `[^\s()+*.<>]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type unionExp struct {
	Terms []*concatExp `parser:"@@ ( '+' @@ )*"`
}

type concatExp struct {
	Factors []*repeatExp `parser:"@@ ( '.'? @@ )*"`
}

type repeatExp struct {
	Atom  *atomExp `parser:"@@"`
	Stars []string `parser:"@'*'*"`
}

type atomExp struct {
	Epsilon bool      `parser:"  @Epsilon"`
	Empty   bool      `parser:"| @Empty"`
	Name    *string   `parser:"| @Name"`
	Letter  *string   `parser:"| @Letter"`
	Group   *unionExp `parser:"| '(' @@ ')'"`
}

var regexParser = participle.MustBuild[unionExp](
	participle.Lexer(regexLexer),
	participle.Elide("Whitespace"),
)

// RegExp is a parsed regular expression.
type RegExp struct {
	original string
	root     *node
	// letters[p-1] is the letter at position p.
	letters []string
}

// NewRegExp parses expr. An empty (or blank) expression denotes the language
// holding only the empty word.
func NewRegExp(expr string) (*RegExp, error) {
	normalized, err := normalizeRegex(expr)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(normalized) == "" {
		return &RegExp{original: expr, root: newEpsilon()}, nil
	}

	ast, err := regexParser.ParseString("", normalized)
	if err != nil {
		rerr := &RegexError{Expr: expr, Offset: -1, Msg: err.Error(), Err: err}
		var perr participle.Error
		if errors.As(err, &perr) {
			rerr.Offset = perr.Position().Offset
			rerr.Msg = perr.Message()
		}
		return nil, rerr
	}

	pos := &positions{}
	root := ast.node(pos)
	u.Debugf("regex %q: %d positions", expr, len(pos.letters))
	return &RegExp{original: expr, root: root, letters: pos.letters}, nil
}

// String returns the expression the RegExp was parsed from.
func (r *RegExp) String() string {
	return r.original
}

// CompileRegex parses expr and builds its position automaton.
func CompileRegex(expr string) (*Automaton, error) {
	r, err := NewRegExp(expr)
	if err != nil {
		return nil, err
	}
	return r.ToAutomaton(), nil
}

// normalizeRegex drops opening parentheses that are never closed. An
// unmatched closing parenthesis is reported.
func normalizeRegex(expr string) (string, error) {
	runes := []rune(expr)
	var open []int
	inName := false
	offset := 0
	for i, r := range runes {
		switch {
		case inName:
			inName = r != '>'
		case r == '<':
			inName = true
		case r == '(':
			open = append(open, i)
		case r == ')':
			if len(open) == 0 {
				return "", &RegexError{Expr: expr, Offset: offset, Msg: "unmatched ')'"}
			}
			open = open[:len(open)-1]
		}
		offset += len(string(r))
	}
	if len(open) == 0 {
		return expr, nil
	}

	u.Debugf("regex %q: dropping %d unclosed '('", expr, len(open))
	drop := make(map[int]struct{}, len(open))
	for _, i := range open {
		drop[i] = struct{}{}
	}
	var sb strings.Builder
	for i, r := range runes {
		if _, ok := drop[i]; !ok {
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

func (e *unionExp) node(pos *positions) *node {
	n := e.Terms[0].node(pos)
	for _, t := range e.Terms[1:] {
		n = newUnion(n, t.node(pos))
	}
	return n
}

func (e *concatExp) node(pos *positions) *node {
	n := e.Factors[0].node(pos)
	for _, f := range e.Factors[1:] {
		n = newConcat(n, f.node(pos))
	}
	return n
}

func (e *repeatExp) node(pos *positions) *node {
	n := e.Atom.node(pos)
	if len(e.Stars) > 0 {
		n = newStar(n)
	}
	return n
}

func (e *atomExp) node(pos *positions) *node {
	switch {
	case e.Epsilon:
		return newEpsilon()
	case e.Empty:
		return newEmpty()
	case e.Name != nil:
		name := strings.TrimSuffix(strings.TrimPrefix(*e.Name, "<"), ">")
		if IsEpsilon(name) {
			return newEpsilon()
		}
		return pos.newLetter(name)
	case e.Letter != nil:
		return pos.newLetter(*e.Letter)
	default:
		return e.Group.node(pos)
	}
}

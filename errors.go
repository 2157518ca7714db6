package fsa

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDefinition is returned when a Definition cannot describe a
	// well formed automaton of the requested kind.
	ErrMalformedDefinition = errors.New("malformed automaton definition")

	// ErrUnknownSymbol is returned when a word uses a letter outside the alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrNameCollision is returned by a rename whose source is missing or whose
	// target already exists.
	ErrNameCollision = errors.New("name collision")

	// ErrInvalidRegex is returned when a regular expression cannot be parsed.
	ErrInvalidRegex = errors.New("invalid regular expression")

	// ErrTooComplex is returned when subset construction exceeds its work limit.
	ErrTooComplex = errors.New("too complex to determinize")
)

// DefinitionError describes why a Definition was rejected.
type DefinitionError struct {
	Reason string
	Name   string
	Err    error // underlying decoder error, if any
}

func (e *DefinitionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedDefinition, e.Reason)
	}
	return fmt.Sprintf("%s: %s %q", ErrMalformedDefinition, e.Reason, e.Name)
}

func (e *DefinitionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedDefinition}
	}
	return []error{ErrMalformedDefinition, e.Err}
}

func malformed(reason, name string) error {
	return &DefinitionError{Reason: reason, Name: name}
}

// SymbolError reports the first letter of a word that is not in the alphabet.
type SymbolError struct {
	Letter string
	Index  int // position of the letter in the word
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrUnknownSymbol, e.Letter, e.Index)
}

func (e *SymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

// RegexError is returned by the regular expression compiler.
type RegexError struct {
	Expr   string
	Offset int // byte offset in Expr, -1 when unknown
	Msg    string
	Err    error
}

func (e *RegexError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s %q: %s", ErrInvalidRegex, e.Expr, e.Msg)
	}
	return fmt.Sprintf("%s %q at offset %d: %s", ErrInvalidRegex, e.Expr, e.Offset, e.Msg)
}

func (e *RegexError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidRegex}
	}
	return []error{ErrInvalidRegex, e.Err}
}

/*
Package scanner defines an interface for tokenizers to be used with the
predictive parser of package ll/parser, and provides a table-driven DFA
tokenizer.

The DFA tokenizer is driven by a DFA value: an alphabet classifier mapping
runes to category codes, and a total transition table over (state, category).
It scans with maximal munch and backtracks to the most recent accepting
position. Accepting states may be marked to stop scanning as soon as they are
reached, for tokens of a fixed shape.

An adapter for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'edulang.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("edulang.scanner")
}

// Token types every tokenizer in this package is able to produce, regardless
// of the language. Languages will usually substitute their own values by
// options.
const (
	EOF   edulang.TokType = -1 // end of input
	Error edulang.TokType = -2 // unrecognized input
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() edulang.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// LexError is reported to a tokenizer's error handler for input which is
// not recognized. Tokenizers continue after reporting it.
type LexError struct {
	Offset int    // byte offset in the input
	Line   int    // 1-based
	Column int    // 1-based, in runes
	Rune   rune   // offending character
	Msg    string // optional message replacing the default text
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: unrecognized token starting at index %d: %q",
		e.Line, e.Column, e.Offset, e.Rune)
}

// Drain reads tokens from a tokenizer until end of input and returns them,
// including the final end-of-input token of type eof. At most max tokens are
// read; if the input holds more, Drain returns the tokens read so far and a
// capacity error.
func Drain(t Tokenizer, eof edulang.TokType, max int) ([]edulang.Token, error) {
	var tokens []edulang.Token
	for {
		if len(tokens) == max {
			return tokens, &edulang.CapacityError{Limit: "MaxTokens", Max: max}
		}
		token := t.NextToken()
		tokens = append(tokens, token)
		if token.TokType() == eof {
			return tokens, nil
		}
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the DFA tokenizer
// as well as the lexmachine scanner.
type DefaultToken struct {
	kind   edulang.TokType
	lexeme string
	Val    interface{}
	span   edulang.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ edulang.TokType, lexeme string, span edulang.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() edulang.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() edulang.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("[%d: %s]", t.kind, t.lexeme)
}

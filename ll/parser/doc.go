/*
Package parser provides a table-driven predictive (LL(1)) parser. Clients
have to use package ll to prepare a grammar and a parse table. The parser
utilizes the table to create a left derivation for a given token sequence,
answering whether the sequence is a sentence of the grammar.

The parser is a recognizer only: it neither builds a tree nor performs
semantic actions. It does not try to recover from errors; the first syntax
error ends a parse.

Usage

Clients construct a grammar and a table first:

	b := ll.NewGrammarBuilder("G")
	b.Terminals("a", "b", "$")
	b.LHS("S").N("A").T("b").End()  // 1: S ➞ A b
	b.LHS("A").T("a").N("A").End()  // 2: A ➞ a A
	b.LHS("A").Epsilon()            // 3: A ➞ ε
	g, _ := b.Grammar()
	T := ll.NewParseTable(g)
	T.Set("S", "a", 1)
	…

Then parse some tokens, e.g. from a scanner.Tokenizer. By default a token's
type is the column index of its terminal in the grammar.

	p, err := parser.NewParser(T)
	accepted, err := p.Parse(tokens)
	if !accepted {
		var synerr *parser.SyntaxError
		if errors.As(err, &synerr) { … }
	}

Parse steps may be observed by installing a StepObserver with option
WithObserver. A StepRecorder collects all the steps of a parse.

A parser holds no state of a running parse. It is safe for concurrent use if
its step observer is.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'edulang.parser'.
func tracer() tracing.Trace {
	return tracing.Select("edulang.parser")
}

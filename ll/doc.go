/*
Package ll implements prerequisites for predictive (LL(1)) parsing:
grammars and parse tables.

Building a Grammar

Grammars are specified using a grammar builder object. Terminals are
declared up front, in the order of the parse table's columns; non-terminals
are declared in order of first appearance, unless clients fix their order
with NonTerminals. Productions are numbered from 1 in the order they are
completed.

Example:

    b := ll.NewGrammarBuilder("G")
    b.Terminals("a", "b", "$")
    b.EndMarker("$")
    b.LHS("S").N("A").T("b").End()  // 1: S  ->  A b
    b.LHS("A").T("a").N("A").End()  // 2: A  ->  a A
    b.LHS("A").Epsilon()            // 3: A  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   1: S ➞ A b
   2: A ➞ a A
   3: A ➞ ε

Parse Tables

Grammar analysis (FIRST/FOLLOW computation) is not part of this package.
Parse tables are supplied as static data, cell by cell:

    T := ll.NewParseTable(g)
    T.Set("S", "a", 1)
    T.Set("S", "b", 1)
    T.Set("A", "a", 2)
    T.Set("A", "b", 3)
    if T.HasConflicts() { … }  // a cell has been given two productions

Cells which cannot be decided by a single lookahead token may carry
refinements, consulting a token further ahead:

    T.Refine("A", "a", 1, "b", 3)  // if the token after 'a' is 'b', use A ➞ ε

Tables may be exported to HTML for inspection and have a fingerprint which
identifies grammar and table contents.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'edulang.ll'.
func tracer() tracing.Trace {
	return tracing.Select("edulang.ll")
}

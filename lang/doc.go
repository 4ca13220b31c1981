/*
Package lang defines edulang, a small educational programming language, in
terms of the generic machinery of packages ll and ll/scanner: token kinds,
an alphabet classifier, the DFA for its lexicon, its grammar and its LL(1)
parse table.

A program looks like this:

    #include<stdio.h>
    int addFn(int a){
        int b = a + 1..
        return b..
    }
    int main(){
        loop i : while (i < 10) {
            printf(i)..
            break ..
        }
        return 0..
    }

Statements end with '..'. Identifiers ending in "Fn" name functions, all
other identifiers (except keywords) name variables.

Recognizing source text is done in two phases, tokenizing and parsing:

    res, err := lang.Recognize(src, lang.DefaultOptions())
    if err != nil {
        // capacity exceeded or configuration error
    }
    if res.Accepted { … }

Grammar, parse table and DFA are created once and are immutable. All
functions of this package are safe for concurrent use.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'edulang.lang'.
func tracer() tracing.Trace {
	return tracing.Select("edulang.lang")
}

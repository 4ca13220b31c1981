/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parser of package ll/parser.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords, literals and regular
expressions. Package lexmach is opinionated on how to do the setup of lexmachine:
keywords and literals are registered before any pattern of the init function,
so they win over patterns matching lexemes of the same length (lexmachine
prefers the earliest pattern in this case). Longer matches always win.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   edulang.Token
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize", lexmach.WithEOF(EndKind, "$"))
	if err != nil {
		// do error handling
	}

Input no pattern matches is reported to the scanner's error handler as a
*scanner.LexError; the scanner then skips a single character and continues.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

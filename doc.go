/*
Package edulang is a recognizer for a small educational programming language.

Recognition happens in two phases. A table-driven DFA tokenizer turns source
text into a finite sequence of classified tokens, and a table-driven
predictive (LL(1)) parser with an explicit symbol stack decides whether the
token sequence is derivable from the language's start symbol. Package
structure is as follows:

■ ll: Package ll models context-free grammars and predictive parse tables.
Sub-packages provide the parser engine (ll/parser), a sparse matrix for table
storage (ll/sparse) and tokenizers (ll/scanner, ll/scanner/lexmach).

■ lang: Package lang holds the static definition of the edulang language:
token kinds, the alphabet classifier, the DFA, the grammar and its parse table.

■ cmd/edurec: A command line recognizer for edulang source files.

The base package contains data types which are used throughout all the other
packages: tokens, spans and capacity limits.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package edulang

/*
Command edurec is a command line tool to recognize edulang programs.
It reads a source file, prints the tokens found in it, a trace of the
parser's steps and finally the verdict: SYNTAX ACCEPTED or SYNTAX REJECTED.

Usage:

    edurec [flags] [file]

If no file is given, edurec prompts for a file name. Flags are:

    -trace level          trace level [Debug|Info|Error]
    -scanner dfa          tokenizer to use [dfa|lexmachine]
    -quiet                do not print the parse trace
    -require-preamble     report a missing preamble as a lexical error
    -error-tokens         pass unrecognized characters to the parser
    -max-source n         limit for the size of the source file in bytes
    -max-tokens n         limit for the number of tokens
    -max-lexeme n         limit for the length of lexemes
    -max-stack n          limit for the depth of the parser stack
    -table file.html      export the parse table as HTML

Exit codes are 0 if the program has been accepted, 1 if it has been
rejected and 2 for any other error.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'edulang.cli'
func tracer() tracing.Trace {
	return tracing.Select("edulang.cli")
}

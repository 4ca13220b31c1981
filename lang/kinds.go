package lang

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/npillmayer/edulang"
)

// Token kinds of edulang. The value of a kind is the column index of its
// terminal in the parse table.
const (
	KindPreamble edulang.TokType = iota // #include<stdio.h>
	KindInt
	KindDec
	KindVar  // variable-name
	KindFunc // function-name, i.e. an identifier ending in "Fn"
	KindMain
	KindLoop
	KindWhile
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindDotDot // statement terminator
	KindAssign
	KindLess
	KindNumber
	KindPlus
	KindReturn
	KindPrintf
	KindBreak
	KindComma
	KindColon
	KindEOF   // end of input, lexeme "$"
	KindError // unrecognized input
)

// KindCount is the number of token kinds, equal to the number of terminals.
const KindCount = int(KindError) + 1

// Preamble is the literal every program starts with.
const Preamble = "#include<stdio.h>"

var kindNames = [KindCount]string{
	"preamble", "int", "dec", "variable-name", "function-name", "main", "loop",
	"while", "(", ")", "{", "}", "..", "=", "<", "number", "+", "return",
	"printf", "break", ",", ":", "$", "error",
}

var keywords = []string{"int", "dec", "main", "loop", "while", "return", "printf", "break"}

var punctuation = []string{"(", ")", "{", "}", "..", "=", "<", "+", ",", ":"}

// KindString returns the terminal name of a token kind.
// It is of type edulang.TokTypeStringer.
func KindString(k edulang.TokType) string {
	if k < 0 || int(k) >= KindCount {
		return fmt.Sprintf("<kind %d>", int(k))
	}
	return kindNames[k]
}

var _ edulang.TokTypeStringer = KindString

// KindOf returns the token kind for a terminal name.
func KindOf(name string) (edulang.TokType, bool) {
	if k := slices.Index(kindNames[:], name); k >= 0 {
		return edulang.TokType(k), true
	}
	return KindError, false
}

// TokenString formats a token as "[kind: lexeme]".
func TokenString(tok edulang.Token) string {
	return fmt.Sprintf("[%s: %s]", KindString(tok.TokType()), tok.Lexeme())
}

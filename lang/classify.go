package lang

import (
	"github.com/npillmayer/edulang/ll/scanner"
)

// Input classes of the edulang DFA. Every letter occurring in a keyword has a
// class of its own, as has 'F' (start of the function-name suffix "Fn").
const (
	catOther scanner.CatCode = iota // anything not allowed in a token
	catLetter
	catF
	catUnderscore
	catDigit
	catLParen
	catRParen
	catLBrace
	catRBrace
	catAssign
	catLess
	catPlus
	catDot
	catComma
	catColon
	catKeywordLetter // first of the keyword letter classes
)

// keywordLetters are all letters occurring in keywords, in class order.
const keywordLetters = "abcdefhiklmnoprtuw"

// CatCount is the number of input classes.
const CatCount = int(catKeywordLetter) + len(keywordLetters)

var asciiClasses [128]scanner.CatCode

func init() {
	for c := 'a'; c <= 'z'; c++ {
		asciiClasses[c] = catLetter
		asciiClasses[c-'a'+'A'] = catLetter
	}
	for i, c := range keywordLetters {
		asciiClasses[c] = catKeywordLetter + scanner.CatCode(i)
	}
	asciiClasses['F'] = catF
	asciiClasses['_'] = catUnderscore
	for c := '0'; c <= '9'; c++ {
		asciiClasses[c] = catDigit
	}
	for c, cat := range map[byte]scanner.CatCode{
		'(': catLParen, ')': catRParen, '{': catLBrace, '}': catRBrace, '=': catAssign,
		'<': catLess, '+': catPlus, '.': catDot, ',': catComma, ':': catColon,
	} {
		asciiClasses[c] = cat
	}
}

// Classify maps a rune to its input class. Runes outside of ASCII and
// characters not used by edulang map to the catch-all class.
func Classify(r rune) scanner.CatCode {
	if r < 0 || r >= 128 {
		return catOther
	}
	return asciiClasses[r]
}

// Classifier is Classify as a scanner.RuneCategorizer.
var Classifier scanner.RuneCategorizer = scanner.CategorizerFunc(Classify)

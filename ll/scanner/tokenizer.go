package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/edulang"
)

// DFATokenizer is a tokenizer driven by a DFA. Create one with NewDFATokenizer.
//
// Tokens are recognized by maximal munch: the automaton runs until it dies,
// and the token ends at the most recent accepting position. Accepting states
// marked as Stop end the token immediately. If no accepting state is reached,
// a LexError is reported to the error handler, one rune is skipped and
// scanning continues.
type DFATokenizer struct {
	dfa             *DFA
	input           string
	pos             int
	limits          edulang.Limits
	Error           func(error) // error handler
	isSpace         func(rune) bool
	preamble        string
	preambleKind    edulang.TokType
	requirePreamble bool
	eofKind         edulang.TokType
	eofLexeme       string
	errKind         edulang.TokType
	emitErrors      bool
	started         bool
	errcnt          int
}

var _ Tokenizer = (*DFATokenizer)(nil)

// NewDFATokenizer creates a tokenizer for input. The DFA must have been frozen.
// If input exceeds the configured MaxSourceLen, a capacity error is returned
// and nothing is tokenized.
func NewDFATokenizer(dfa *DFA, input string, opts ...Option) (*DFATokenizer, error) {
	if dfa == nil || !dfa.isFrozen {
		return nil, fmt.Errorf("tokenizer needs a frozen DFA")
	}
	t := &DFATokenizer{
		dfa:       dfa,
		input:     input,
		limits:    edulang.DefaultLimits(),
		Error:     logError,
		isSpace:   isASCIISpace,
		eofKind:   EOF,
		eofLexeme: "$",
		errKind:   Error,
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(input) > t.limits.MaxSourceLen {
		return nil, &edulang.CapacityError{Limit: "MaxSourceLen", Max: t.limits.MaxSourceLen, Have: len(input)}
	}
	return t, nil
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DFATokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// ErrorCount returns the number of lexical errors reported so far.
func (t *DFATokenizer) ErrorCount() int {
	return t.errcnt
}

// Tokens reads all remaining tokens, including the end-of-input token.
// It fails with a capacity error if the input holds more than MaxTokens tokens.
func (t *DFATokenizer) Tokens() ([]edulang.Token, error) {
	return Drain(t, t.eofKind, t.limits.MaxTokens)
}

// NextToken is part of the Tokenizer interface. After the end of input has
// been reached, every call returns an end-of-input token.
func (t *DFATokenizer) NextToken() edulang.Token {
	if !t.started {
		t.started = true
		if token, ok := t.scanPreamble(); ok {
			return token
		}
	}
	for {
		t.skipSpace()
		if t.pos >= len(t.input) {
			end := uint64(len(t.input))
			tracer().Debugf("DFATokenizer reached end of input")
			return MakeDefaultToken(t.eofKind, t.eofLexeme, edulang.Span{end, end})
		}
		if token, ok := t.scanToken(); ok {
			return token
		}
	}
}

func (t *DFATokenizer) skipSpace() {
	for t.pos < len(t.input) {
		r, w := utf8.DecodeRuneInString(t.input[t.pos:])
		if !t.isSpace(r) {
			return
		}
		t.pos += w
	}
}

// scanPreamble checks for the preamble literal at the start of the input,
// after leading whitespace.
func (t *DFATokenizer) scanPreamble() (edulang.Token, bool) {
	if t.preamble == "" {
		return nil, false
	}
	t.skipSpace()
	if strings.HasPrefix(t.input[t.pos:], t.preamble) {
		start := t.pos
		t.pos += len(t.preamble)
		tracer().Debugf("preamble %q", t.preamble)
		return MakeDefaultToken(t.preambleKind, t.preamble,
			edulang.Span{uint64(start), uint64(t.pos)}), true
	}
	if t.requirePreamble {
		r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
		t.report(t.pos, r, fmt.Sprintf("missing preamble %q", t.preamble))
	}
	return nil, false
}

// scanToken runs the DFA from the current position. If no token is
// recognized, it reports an error and skips one rune; in this case a token is
// returned only if error tokens are enabled.
func (t *DFATokenizer) scanToken() (edulang.Token, bool) {
	start := t.pos
	state := t.dfa.Start()
	last := -1
	var accept Accept
	for j := start; j < len(t.input); {
		r, w := utf8.DecodeRuneInString(t.input[j:])
		next := t.dfa.Next(state, r)
		if next == DeadState {
			break
		}
		state = next
		j += w
		if a, ok := t.dfa.Accepting(state); ok {
			last, accept = j, a
			if a.Stop {
				break
			}
		}
	}
	if last < 0 {
		r, w := utf8.DecodeRuneInString(t.input[start:])
		t.report(start, r, "")
		t.pos += w
		if t.emitErrors {
			return MakeDefaultToken(t.errKind, t.input[start:t.pos],
				edulang.Span{uint64(start), uint64(t.pos)}), true
		}
		return nil, false
	}
	t.pos = last
	lexeme := t.input[start:last]
	if len(lexeme) >= t.limits.MaxLexemeLen {
		n := t.limits.MaxLexemeLen - 1
		for n > 0 && !utf8.RuneStart(lexeme[n]) {
			n--
		}
		tracer().Infof("lexeme at %d truncated to %d bytes", start, n)
		lexeme = lexeme[:n]
	}
	tracer().Debugf("token %d %q in state %s", accept.Kind, lexeme, t.dfa.StateName(state))
	return MakeDefaultToken(accept.Kind, lexeme, edulang.Span{uint64(start), uint64(last)}), true
}

func (t *DFATokenizer) report(offset int, r rune, msg string) {
	t.errcnt++
	line, col := Position(t.input, offset)
	t.Error(&LexError{Offset: offset, Line: line, Column: col, Rune: r, Msg: msg})
}

// Position returns the 1-based line and column (in runes) of a byte offset.
func Position(input string, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	prefix := input[:offset]
	line = strings.Count(prefix, "\n") + 1
	if nl := strings.LastIndexByte(prefix, '\n'); nl >= 0 {
		prefix = prefix[nl+1:]
	}
	return line, utf8.RuneCountInString(prefix) + 1
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// --- Options for the DFA tokenizer -----------------------------------------

// Option configures a DFA tokenizer.
type Option func(t *DFATokenizer)

// WithLimits sets capacity limits. Unset limits are defaulted.
func WithLimits(l edulang.Limits) Option {
	return func(t *DFATokenizer) {
		t.limits = l.Normalized()
	}
}

// WithPreamble sets a literal which is recognized as a token of type kind if
// it appears at the start of the input, after leading whitespace.
func WithPreamble(literal string, kind edulang.TokType) Option {
	return func(t *DFATokenizer) {
		t.preamble = literal
		t.preambleKind = kind
	}
}

// RequirePreamble sets or clears option RequirePreamble: report a lexical
// error if the input does not start with the preamble.
func RequirePreamble(b bool) Option {
	return func(t *DFATokenizer) {
		t.requirePreamble = b
	}
}

// WithEOF sets the type and lexeme of the end-of-input token.
// Defaults are EOF and "$".
func WithEOF(kind edulang.TokType, lexeme string) Option {
	return func(t *DFATokenizer) {
		t.eofKind = kind
		t.eofLexeme = lexeme
	}
}

// WithErrorKind sets the type of tokens for unrecognized input, see
// EmitErrorTokens. Default is Error.
func WithErrorKind(kind edulang.TokType) Option {
	return func(t *DFATokenizer) {
		t.errKind = kind
	}
}

// EmitErrorTokens sets or clears option EmitErrorTokens: unrecognized runes
// are passed on as error tokens instead of being dropped. They are reported to
// the error handler in either case.
func EmitErrorTokens(b bool) Option {
	return func(t *DFATokenizer) {
		t.emitErrors = b
	}
}

// Whitespace sets the predicate for runes to skip between tokens.
// The default is ASCII white space.
func Whitespace(f func(rune) bool) Option {
	return func(t *DFATokenizer) {
		if f != nil {
			t.isSpace = f
		}
	}
}

// ErrorHandler sets the error handler, see SetErrorHandler.
func ErrorHandler(h func(error)) Option {
	return func(t *DFATokenizer) {
		t.SetErrorHandler(h)
	}
}

package lexmach

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'edulang.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("edulang.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('(', '..', …), a list of keywords ("int", "loop", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(Quote(name)), MakeToken(name, tokenIds[name]))
	}
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(Quote(lit)), MakeToken(lit, tokenIds[lit]))
	}
	if init != nil {
		init(adapter.Lexer)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Quote returns a lexmachine pattern matching s literally.
func Quote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string, opts ...Option) (*LMScanner, error) {
	lms := &LMScanner{
		Error:     logError,
		input:     input,
		limits:    edulang.DefaultLimits(),
		eofKind:   scanner.EOF,
		eofLexeme: "$",
		errKind:   scanner.Error,
	}
	for _, opt := range opts {
		opt(lms)
	}
	if len(input) > lms.limits.MaxSourceLen {
		return nil, &edulang.CapacityError{Limit: "MaxSourceLen", Max: lms.limits.MaxSourceLen, Have: len(input)}
	}
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	lms.scanner = s
	return lms, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner    *lexmachine.Scanner
	Error      func(error)
	input      string
	limits     edulang.Limits
	eofKind    edulang.TokType
	eofLexeme  string
	errKind    edulang.TokType
	emitErrors bool
	done       bool
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// Tokens reads all remaining tokens, including the end-of-input token.
func (lms *LMScanner) Tokens() ([]edulang.Token, error) {
	return scanner.Drain(lms, lms.eofKind, lms.limits.MaxTokens)
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() edulang.Token {
	for !lms.done {
		tok, err, eof := lms.scanner.Next()
		if err != nil {
			ui, is := err.(*machines.UnconsumedInput)
			if !is {
				lms.Error(err)
				lms.done = true
				break
			}
			start := ui.StartTC
			_, w := utf8.DecodeRuneInString(lms.input[start:])
			lms.scanner.TC = start + w
			if t, ok := lms.unrecognized(start, start+w); ok {
				return t
			}
			continue
		}
		if eof {
			lms.done = true
			break
		}
		tracer().Debugf("tok is %T | %v", tok, tok)
		token := tok.(*lexmachine.Token)
		lexeme := string(token.Lexeme)
		span := edulang.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))}
		if len(lexeme) >= lms.limits.MaxLexemeLen {
			lexeme = lexeme[:lms.limits.MaxLexemeLen-1]
		}
		return scanner.MakeDefaultToken(edulang.TokType(token.Type), lexeme, span)
	}
	end := uint64(len(lms.input))
	return scanner.MakeDefaultToken(lms.eofKind, lms.eofLexeme, edulang.Span{end, end})
}

func (lms *LMScanner) unrecognized(from, to int) (edulang.Token, bool) {
	r, _ := utf8.DecodeRuneInString(lms.input[from:])
	line, col := scanner.Position(lms.input, from)
	lms.Error(&scanner.LexError{Offset: from, Line: line, Column: col, Rune: r})
	if !lms.emitErrors {
		return nil, false
	}
	return scanner.MakeDefaultToken(lms.errKind, lms.input[from:to],
		edulang.Span{uint64(from), uint64(to)}), true
}

// --- Options ---------------------------------------------------------------

// Option configures a lexmachine scanner.
type Option func(lms *LMScanner)

// WithEOF sets the type and lexeme of the end-of-input token.
// Defaults are scanner.EOF and "$".
func WithEOF(kind edulang.TokType, lexeme string) Option {
	return func(lms *LMScanner) {
		lms.eofKind = kind
		lms.eofLexeme = lexeme
	}
}

// EmitErrorTokens makes the scanner pass on unrecognized characters as tokens
// of type kind.
func EmitErrorTokens(kind edulang.TokType) Option {
	return func(lms *LMScanner) {
		lms.emitErrors = true
		lms.errKind = kind
	}
}

// WithLimits sets capacity limits. Unset limits are defaulted.
func WithLimits(l edulang.Limits) Option {
	return func(lms *LMScanner) {
		lms.limits = l.Normalized()
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

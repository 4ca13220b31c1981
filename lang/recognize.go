package lang

import (
	"errors"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/ll/parser"
	"github.com/npillmayer/edulang/ll/scanner"
	"github.com/npillmayer/edulang/ll/scanner/lexmach"
	"github.com/npillmayer/schuko/gconf"
)

// Configuration keys read by OptionsFromConfig, in addition to the limits
// of package edulang.
const (
	ConfRequirePreamble = "edulang.require-preamble" // bool
	ConfErrorTokens     = "edulang.error-tokens"     // bool
	ConfTokenizer       = "edulang.tokenizer"        // "dfa" or "lexmachine"
)

// Options control a recognition run.
type Options struct {
	Limits          edulang.Limits
	RequirePreamble bool   // report a lexical error if the preamble is missing
	EmitErrorTokens bool   // pass unrecognized characters to the parser
	UseLexmachine   bool   // use the lexmachine tokenizer instead of the DFA
	Start           string // start symbol, default is Program
	Trace           bool   // record parse steps
	ErrorHandler    func(error)
	Observer        parser.StepObserver
}

// DefaultOptions returns options with default limits and everything else
// switched off.
func DefaultOptions() Options {
	return Options{Limits: edulang.DefaultLimits()}
}

// OptionsFromConfig reads options from the global configuration, see gconf.
func OptionsFromConfig() Options {
	opts := DefaultOptions()
	opts.Limits = edulang.LimitsFromConfig()
	opts.RequirePreamble = gconf.GetBool(ConfRequirePreamble)
	opts.EmitErrorTokens = gconf.GetBool(ConfErrorTokens)
	opts.UseLexmachine = gconf.GetString(ConfTokenizer) == "lexmachine"
	return opts
}

// Tokenizer is a scanner.Tokenizer able to drain its input.
type Tokenizer interface {
	scanner.Tokenizer
	Tokens() ([]edulang.Token, error)
}

// NewTokenizer creates a tokenizer for src. The end-of-input token has kind
// KindEOF, unrecognized characters are passed on as KindError if
// opts.EmitErrorTokens is set.
func NewTokenizer(src string, opts Options) (Tokenizer, error) {
	limits := opts.Limits.Normalized()
	if opts.UseLexmachine {
		lm, err := referenceLexer()
		if err != nil {
			return nil, err
		}
		lmopts := []lexmach.Option{lexmach.WithEOF(KindEOF, "$"), lexmach.WithLimits(limits)}
		if opts.EmitErrorTokens {
			lmopts = append(lmopts, lexmach.EmitErrorTokens(KindError))
		}
		sc, err := lm.Scanner(src, lmopts...)
		if err != nil {
			return nil, err
		}
		sc.SetErrorHandler(opts.ErrorHandler)
		return sc, nil
	}
	t, err := scanner.NewDFATokenizer(DFA(), src,
		scanner.WithLimits(limits),
		scanner.WithPreamble(Preamble, KindPreamble),
		scanner.RequirePreamble(opts.RequirePreamble),
		scanner.WithEOF(KindEOF, "$"),
		scanner.WithErrorKind(KindError),
		scanner.EmitErrorTokens(opts.EmitErrorTokens),
		scanner.ErrorHandler(opts.ErrorHandler),
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Tokenize returns the tokens of src, ending with a KindEOF token, together
// with all lexical errors. The error return is non-nil if a capacity limit
// has been exceeded.
func Tokenize(src string, opts Options) ([]edulang.Token, []error, error) {
	var lexerrs []error
	handler := opts.ErrorHandler
	opts.ErrorHandler = func(e error) {
		lexerrs = append(lexerrs, e)
		if handler != nil {
			handler(e)
		} else {
			tracer().Errorf("%v", e)
		}
	}
	t, err := NewTokenizer(src, opts)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := t.Tokens()
	if err != nil {
		return tokens, lexerrs, err
	}
	if opts.UseLexmachine && opts.RequirePreamble {
		if len(tokens) == 0 || tokens[0].TokType() != KindPreamble {
			lexerrs = append(lexerrs, missingPreamble(src, tokens))
		}
	}
	tracer().Infof("%d tokens, %d lexical errors", len(tokens), len(lexerrs))
	return tokens, lexerrs, nil
}

func missingPreamble(src string, tokens []edulang.Token) error {
	offset := len(src)
	if len(tokens) > 0 {
		offset = int(tokens[0].Span().From())
	}
	var r rune
	if offset < len(src) {
		r = rune(src[offset])
	}
	line, col := scanner.Position(src, offset)
	return &scanner.LexError{Offset: offset, Line: line, Column: col, Rune: r,
		Msg: "missing preamble " + Preamble}
}

// NewParser creates a parser for edulang.
func NewParser(opts ...parser.Option) (*parser.Parser, error) {
	return parser.NewParser(Table(), opts...)
}

// Result is the outcome of recognizing source text.
type Result struct {
	Tokens      []edulang.Token
	LexErrors   []error             // lexical errors, in order of occurrence
	Accepted    bool                // verdict
	SyntaxError *parser.SyntaxError // first syntax error, if rejected
	Steps       []parser.Step       // parse steps, if Options.Trace is set
}

// Recognize tokenizes and parses src. A non-nil error is returned if a limit
// has been exceeded or the options are invalid; rejecting the input is not an
// error.
func Recognize(src string, opts Options) (*Result, error) {
	res := &Result{}
	tokens, lexerrs, err := Tokenize(src, opts)
	res.Tokens, res.LexErrors = tokens, lexerrs
	if err != nil {
		return res, err
	}
	popts := []parser.Option{parser.WithLimits(opts.Limits), parser.StartSymbol(opts.Start)}
	var rec *parser.StepRecorder
	if opts.Trace {
		rec = &parser.StepRecorder{}
	}
	if obs := observers(rec, opts.Observer); obs != nil {
		popts = append(popts, parser.WithObserver(obs))
	}
	p, err := NewParser(popts...)
	if err != nil {
		return res, err
	}
	res.Accepted, err = p.Parse(tokens)
	if rec != nil {
		res.Steps = rec.Steps
	}
	if err != nil && !errors.As(err, &res.SyntaxError) {
		return res, err
	}
	return res, nil
}

// observers combines a step recorder and a client's observer.
func observers(rec *parser.StepRecorder, obs parser.StepObserver) parser.StepObserver {
	switch {
	case rec == nil && obs == nil:
		return nil
	case rec == nil:
		return obs
	case obs == nil:
		return rec
	}
	return parser.StepFunc(func(s parser.Step) {
		rec.Step(s)
		obs.Step(s)
	})
}

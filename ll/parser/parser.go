package parser

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/ll"
)

// Parser is an LL(1)-parser type. Create and initialize one with parser.NewParser(...)
type Parser struct {
	G        *ll.Grammar
	table    *ll.ParseTable
	start    *ll.Symbol
	limits   edulang.Limits
	observer StepObserver
	terminal func(edulang.Token) *ll.Symbol
	startSym string // set by option, resolved in NewParser
}

// NewParser creates a predictive parser driven by a parse table.
// It is an error to use a table with conflicts.
func NewParser(table *ll.ParseTable, opts ...Option) (*Parser, error) {
	if table == nil {
		return nil, fmt.Errorf("LL(1)-parser needs a parse table")
	}
	if table.HasConflicts() {
		return nil, fmt.Errorf("parse table for %s has conflicts, cannot use it", table.Grammar().Name)
	}
	p := &Parser{
		G:      table.Grammar(),
		table:  table,
		limits: edulang.DefaultLimits(),
	}
	p.start = p.G.Start()
	p.terminal = func(tok edulang.Token) *ll.Symbol {
		return p.G.TerminalAt(int(tok.TokType()))
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.startSym != "" {
		A, ok := p.G.NonTerminal(p.startSym)
		if !ok {
			return nil, fmt.Errorf("%q is not a non-terminal of %s", p.startSym, p.G.Name)
		}
		p.start = A
	}
	return p, nil
}

// Start returns the symbol a parse starts with.
func (p *Parser) Start() *ll.Symbol {
	return p.start
}

// Parse runs the parser over a token sequence, which should end with a token
// for the end marker of the grammar.
//
// The parser returns true if the sequence has been accepted. Otherwise the
// error tells why: it is either a *SyntaxError for the first offending token
// or an *edulang.CapacityError.
func (p *Parser) Parse(tokens []edulang.Token) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	r := &run{
		p:      p,
		tokens: tokens,
		stack:  arraystack.New(),
	}
	r.stack.Push(p.G.EndMarker())
	r.stack.Push(p.start)
	accepted, err := r.loop()
	if accepted {
		tracer().Infof("input accepted after %d steps", r.n)
	} else {
		tracer().Infof("input rejected after %d steps: %v", r.n, err)
	}
	return accepted, err
}

// run holds the state of a single parse: stack, input cursor and step counter.
type run struct {
	p      *Parser
	tokens []edulang.Token
	stack  *arraystack.Stack // of *ll.Symbol
	pos    int
	n      int
}

func (r *run) loop() (bool, error) {
	for r.stack.Size() > 1 && r.pos < len(r.tokens) {
		X := r.top()
		token := r.tokens[r.pos]
		a := r.p.terminal(token)
		tracer().Debugf("top = %v, lookahead = %v %q", X, a, token.Lexeme())
		if X.IsTerminal() {
			if X != a {
				r.observe(X, a, token, Reject, nil, false)
				return false, r.syntaxError(X, a, token, "")
			}
			r.observe(X, a, token, Match, nil, false)
			r.stack.Pop()
			r.pos++
			continue
		}
		prod, refined := r.p.table.Predict(X, a, r.peek)
		if prod == nil {
			r.observe(X, a, token, Reject, nil, false)
			return false, r.syntaxError(X, a, token, "")
		}
		if prod.IsEps() {
			r.observe(X, a, token, Epsilon, prod, refined)
		} else {
			r.observe(X, a, token, Predict, prod, refined)
		}
		r.stack.Pop()
		rhs := prod.RHS()
		for i := len(rhs) - 1; i >= 0; i-- {
			r.stack.Push(rhs[i])
		}
		if r.stack.Size() > r.p.limits.MaxStackDepth {
			return false, &edulang.CapacityError{
				Limit: "MaxStackDepth",
				Max:   r.p.limits.MaxStackDepth,
				Have:  r.stack.Size(),
			}
		}
	}
	end := r.p.G.EndMarker()
	if r.stack.Size() == 1 && r.pos == len(r.tokens)-1 {
		token := r.tokens[r.pos]
		if a := r.p.terminal(token); a == end {
			r.observe(end, a, token, Accept, nil, false)
			return true, nil
		}
	}
	if r.stack.Size() > 1 { // input exhausted
		X := r.top()
		r.observe(X, nil, nil, Reject, nil, false)
		return false, &SyntaxError{Expected: X, Index: r.pos, Msg: "unexpected end of input"}
	}
	if r.pos >= len(r.tokens) { // no end-of-input token
		r.observe(end, nil, nil, Reject, nil, false)
		return false, &SyntaxError{Expected: end, Index: r.pos, Msg: "missing end marker"}
	}
	token := r.tokens[r.pos]
	a := r.p.terminal(token)
	r.observe(end, a, token, Reject, nil, false)
	return false, r.syntaxError(end, a, token, "trailing input")
}

func (r *run) top() *ll.Symbol {
	X, _ := r.stack.Peek()
	return X.(*ll.Symbol)
}

// peek returns the terminal k tokens behind the lookahead.
func (r *run) peek(k int) *ll.Symbol {
	if r.pos+k >= len(r.tokens) {
		return nil
	}
	return r.p.terminal(r.tokens[r.pos+k])
}

func (r *run) syntaxError(X, a *ll.Symbol, token edulang.Token, msg string) *SyntaxError {
	return &SyntaxError{
		Expected: X,
		Found:    a,
		Lexeme:   token.Lexeme(),
		Index:    r.pos,
		Span:     token.Span(),
		Msg:      msg,
	}
}

func (r *run) observe(X, a *ll.Symbol, token edulang.Token, action Action, prod *ll.Production, refined bool) {
	r.n++
	if r.p.observer == nil {
		return
	}
	values := r.stack.Values()
	stack := make([]*ll.Symbol, len(values))
	for i, v := range values {
		stack[i] = v.(*ll.Symbol)
	}
	r.p.observer.Step(Step{
		N:          r.n,
		Stack:      stack,
		Top:        X,
		Lookahead:  a,
		Token:      token,
		Action:     action,
		Production: prod,
		Refined:    refined,
	})
}

// --- Errors ----------------------------------------------------------------

// SyntaxError is returned by Parse for the first token the parser cannot
// handle.
type SyntaxError struct {
	Expected *ll.Symbol   // terminal or non-terminal on top of the stack
	Found    *ll.Symbol   // lookahead terminal, nil at end of input or for unknown token types
	Lexeme   string       // lexeme of the offending token
	Index    int          // position of the offending token in the input sequence
	Span     edulang.Span // input span of the offending token
	Msg      string       // optional remark
}

func (e *SyntaxError) Error() string {
	var expected string
	if e.Expected != nil && !e.Expected.IsTerminal() {
		expected = "a phrase for " + e.Expected.Name
	} else {
		expected = e.Expected.String()
	}
	if e.Found == nil && e.Lexeme == "" {
		if e.Msg != "" {
			return fmt.Sprintf("syntax error at token #%d: expected %s, %s", e.Index, expected, e.Msg)
		}
		return fmt.Sprintf("syntax error at token #%d: expected %s", e.Index, expected)
	}
	found := "unknown terminal"
	if e.Found != nil {
		found = e.Found.Name
	}
	s := fmt.Sprintf("syntax error at token #%d %s: expected %s, found %s %q", e.Index, e.Span,
		expected, found, e.Lexeme)
	if e.Msg != "" {
		s += " (" + e.Msg + ")"
	}
	return s
}

// --- Options ---------------------------------------------------------------

// Option configures a parser.
type Option func(p *Parser)

// StartSymbol makes the parser start with a non-terminal other than the
// grammar's start symbol, i.e. recognize phrases for this non-terminal.
func StartSymbol(name string) Option {
	return func(p *Parser) {
		p.startSym = name
	}
}

// WithLimits sets capacity limits. The parser uses MaxStackDepth only.
func WithLimits(l edulang.Limits) Option {
	return func(p *Parser) {
		p.limits = l.Normalized()
	}
}

// WithObserver installs an observer for parse steps.
func WithObserver(obs StepObserver) Option {
	return func(p *Parser) {
		p.observer = obs
	}
}

// TerminalMapper replaces the mapping of tokens to terminals. The default
// mapping uses the token type as a terminal's column index. Unknown tokens
// should be mapped to nil.
func TerminalMapper(f func(edulang.Token) *ll.Symbol) Option {
	return func(p *Parser) {
		if f != nil {
			p.terminal = f
		}
	}
}

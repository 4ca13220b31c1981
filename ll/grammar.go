package ll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// --- Symbols ---------------------------------------------------------------

type symKind int8

const (
	terminalKind symKind = iota
	nonTerminalKind
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// For terminals, Value is the column index within parse tables and at the same
// time the token type a tokenizer reports for it. For non-terminals, Value is
// the row index.
type Symbol struct {
	Name  string
	Value int
	kind  symKind
}

// IsTerminal is true for terminal symbols.
func (A *Symbol) IsTerminal() bool {
	return A.kind == terminalKind
}

func (A *Symbol) String() string {
	if A == nil {
		return "<nil>"
	}
	return A.Name
}

// --- Productions -----------------------------------------------------------

// Production is a rule  LHS ➞ RHS. IDs start with 1.
type Production struct {
	ID  int
	LHS *Symbol
	rhs []*Symbol
}

// RHS returns the right hand side of a production. Clients must not modify it.
func (p *Production) RHS() []*Symbol {
	return p.rhs
}

// IsEps is true for epsilon-productions.
func (p *Production) IsEps() bool {
	return len(p.rhs) == 0
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	b.WriteString(" ➞")
	if p.IsEps() {
		b.WriteString(" ε")
	}
	for _, A := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar. Grammars are immutable after having been
// created by a GrammarBuilder and are safe for concurrent use.
type Grammar struct {
	Name         string
	terminals    []*Symbol
	nonterminals []*Symbol
	productions  []*Production
	byName       *treemap.Map // name -> *Symbol
	start        *Symbol
	endMarker    *Symbol
}

// Start returns the start symbol of g.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// EndMarker returns the terminal marking end of input.
func (g *Grammar) EndMarker() *Symbol {
	return g.endMarker
}

// Terminal returns the terminal with a given name.
func (g *Grammar) Terminal(name string) (*Symbol, bool) {
	return g.lookup(name, terminalKind)
}

// NonTerminal returns the non-terminal with a given name.
func (g *Grammar) NonTerminal(name string) (*Symbol, bool) {
	return g.lookup(name, nonTerminalKind)
}

func (g *Grammar) lookup(name string, kind symKind) (*Symbol, bool) {
	v, found := g.byName.Get(name)
	if !found {
		return nil, false
	}
	A := v.(*Symbol)
	return A, A.kind == kind
}

// TerminalCount returns the number of terminals (= table columns).
func (g *Grammar) TerminalCount() int {
	return len(g.terminals)
}

// NonTerminalCount returns the number of non-terminals (= table rows).
func (g *Grammar) NonTerminalCount() int {
	return len(g.nonterminals)
}

// TerminalAt returns the terminal with column index i, or nil.
func (g *Grammar) TerminalAt(i int) *Symbol {
	if i < 0 || i >= len(g.terminals) {
		return nil
	}
	return g.terminals[i]
}

// NonTerminalAt returns the non-terminal with row index i, or nil.
func (g *Grammar) NonTerminalAt(i int) *Symbol {
	if i < 0 || i >= len(g.nonterminals) {
		return nil
	}
	return g.nonterminals[i]
}

// Production returns the production with ID id, or nil.
func (g *Grammar) Production(id int) *Production {
	if id < 1 || id > len(g.productions) {
		return nil
	}
	return g.productions[id-1]
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.productions)
}

// EachTerminal iterates over all terminals in column order.
func (g *Grammar) EachTerminal(f func(A *Symbol)) {
	for _, A := range g.terminals {
		f(A)
	}
}

// EachNonTerminal iterates over all non-terminals in row order.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.nonterminals {
		f(A)
	}
}

// ProductionsFor returns all productions with left hand side A.
func (g *Grammar) ProductionsFor(A *Symbol) []*Production {
	var prods []*Production
	for _, p := range g.productions {
		if p.LHS == A {
			prods = append(prods, p)
		}
	}
	return prods
}

// Dump is a debugging helper, listing all productions to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.ID, p)
	}
	tracer().Debugf("-------------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is used to construct a Grammar. Create one with
// NewGrammarBuilder. Errors are collected and reported by Grammar().
//
//    b := ll.NewGrammarBuilder("G")
//    b.Terminals("x", "$")
//    b.LHS("S").T("x").End()
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	g       *Grammar
	lhs     *Symbol
	rhs     []*Symbol
	errs    []error
	startNm string
	endNm   string
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		g: &Grammar{
			Name:   gname,
			byName: treemap.NewWithStringComparator(),
		},
	}
}

func (gb *GrammarBuilder) error(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	tracer().Errorf("grammar %s: %v", gb.g.Name, err)
	gb.errs = append(gb.errs, err)
}

// Terminals declares terminals. Column indices are assigned in order of
// declaration.
func (gb *GrammarBuilder) Terminals(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.declare(name, terminalKind)
	}
	return gb
}

// NonTerminals declares non-terminals. Row indices are assigned in order of
// declaration. Non-terminals need not be declared; they are declared implicitly
// on first use.
func (gb *GrammarBuilder) NonTerminals(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.declare(name, nonTerminalKind)
	}
	return gb
}

// StartSymbol sets the start symbol. Default is the first non-terminal.
func (gb *GrammarBuilder) StartSymbol(name string) *GrammarBuilder {
	gb.startNm = name
	return gb
}

// EndMarker names the terminal marking end of input. Default is the last
// terminal declared.
func (gb *GrammarBuilder) EndMarker(name string) *GrammarBuilder {
	gb.endNm = name
	return gb
}

func (gb *GrammarBuilder) declare(name string, kind symKind) *Symbol {
	if v, found := gb.g.byName.Get(name); found {
		A := v.(*Symbol)
		if A.kind != kind {
			gb.error("symbol %q declared as terminal and as non-terminal", name)
		}
		return A
	}
	A := &Symbol{Name: name, kind: kind}
	if kind == terminalKind {
		A.Value = len(gb.g.terminals)
		gb.g.terminals = append(gb.g.terminals, A)
	} else {
		A.Value = len(gb.g.nonterminals)
		gb.g.nonterminals = append(gb.g.nonterminals, A)
	}
	gb.g.byName.Put(name, A)
	return A
}

// LHS starts a production given the left hand side symbol.
func (gb *GrammarBuilder) LHS(name string) *GrammarBuilder {
	if gb.lhs != nil {
		gb.error("production for %s not completed before starting %s", gb.lhs, name)
	}
	gb.lhs = gb.declare(name, nonTerminalKind)
	gb.rhs = nil
	return gb
}

// N appends a non-terminal to the right hand side of the current production.
func (gb *GrammarBuilder) N(name string) *GrammarBuilder {
	if gb.lhs == nil {
		gb.error("non-terminal %s outside of a production", name)
		return gb
	}
	gb.rhs = append(gb.rhs, gb.declare(name, nonTerminalKind))
	return gb
}

// T appends a terminal to the right hand side of the current production.
// Terminals have to be declared with Terminals beforehand.
func (gb *GrammarBuilder) T(name string) *GrammarBuilder {
	if gb.lhs == nil {
		gb.error("terminal %s outside of a production", name)
		return gb
	}
	v, found := gb.g.byName.Get(name)
	if !found || !v.(*Symbol).IsTerminal() {
		gb.error("undeclared terminal %q in production for %s", name, gb.lhs)
		return gb
	}
	gb.rhs = append(gb.rhs, v.(*Symbol))
	return gb
}

// End completes the current production.
func (gb *GrammarBuilder) End() *Production {
	if gb.lhs == nil {
		gb.error("End() without LHS")
		return nil
	}
	p := &Production{
		ID:  len(gb.g.productions) + 1,
		LHS: gb.lhs,
		rhs: gb.rhs,
	}
	gb.g.productions = append(gb.g.productions, p)
	tracer().Debugf("production %d: %s", p.ID, p)
	gb.lhs, gb.rhs = nil, nil
	return p
}

// Epsilon completes the current production with an empty right hand side.
func (gb *GrammarBuilder) Epsilon() *Production {
	if len(gb.rhs) > 0 {
		gb.error("epsilon production for %s with non-empty RHS", gb.lhs)
	}
	gb.rhs = nil
	return gb.End()
}

// Grammar returns the grammar built so far, or an error describing
// everything which went wrong while building it.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.lhs != nil {
		gb.error("production for %s not completed", gb.lhs)
	}
	g := gb.g
	if len(g.terminals) == 0 || len(g.nonterminals) == 0 {
		gb.error("grammar needs terminals and non-terminals")
	} else {
		g.start = g.nonterminals[0]
		if gb.startNm != "" {
			if A, ok := g.NonTerminal(gb.startNm); ok {
				g.start = A
			} else {
				gb.error("start symbol %q is not a non-terminal", gb.startNm)
			}
		}
		g.endMarker = g.terminals[len(g.terminals)-1]
		if gb.endNm != "" {
			if A, ok := g.Terminal(gb.endNm); ok {
				g.endMarker = A
			} else {
				gb.error("end marker %q is not a terminal", gb.endNm)
			}
		}
	}
	if len(gb.errs) > 0 {
		return nil, fmt.Errorf("grammar %s: %w", g.Name, errors.Join(gb.errs...))
	}
	return g, nil
}

package ll

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/edulang/ll/sparse"
)

// noRule is the null value of table matrices; production IDs start at 1.
const noRule = 0

// ParseTable is a predictive parse table, mapping (non-terminal, terminal)
// to a production. Rows are non-terminals, columns are terminals, both in
// grammar order.
//
// Tables are filled once, before parsing starts. After that they are
// read-only and may be shared between parsers.
type ParseTable struct {
	g           *Grammar
	matrix      *sparse.IntMatrix
	refinements map[cell][]Refinement
}

type cell struct {
	row, col int
}

// Refinement selects an alternative production for a table cell if a token
// further ahead is a given terminal. Offset counts from the lookahead token,
// i.e. Offset 1 is the token immediately following the lookahead.
type Refinement struct {
	Offset     int
	Next       *Symbol
	Production *Production
}

func (r Refinement) String() string {
	return fmt.Sprintf("+%d=%s ⇒ %d", r.Offset, r.Next, r.Production.ID)
}

// Conflict describes a table cell holding more than one production.
type Conflict struct {
	NonTerm, Term *Symbol
	Productions   [2]*Production
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict at (%s, %s): %d / %d", c.NonTerm, c.Term,
		c.Productions[0].ID, c.Productions[1].ID)
}

// NewParseTable creates an empty parse table for g.
func NewParseTable(g *Grammar) *ParseTable {
	return &ParseTable{
		g:           g,
		matrix:      sparse.NewIntMatrix(g.NonTerminalCount(), g.TerminalCount(), noRule),
		refinements: make(map[cell][]Refinement),
	}
}

// Grammar returns the grammar this table is made for.
func (t *ParseTable) Grammar() *Grammar {
	return t.g
}

func (t *ParseTable) resolve(nt, term string, prod int) (*Symbol, *Symbol, *Production, error) {
	A, ok := t.g.NonTerminal(nt)
	if !ok {
		return nil, nil, nil, fmt.Errorf("parse table: %q is not a non-terminal", nt)
	}
	a, ok := t.g.Terminal(term)
	if !ok {
		return nil, nil, nil, fmt.Errorf("parse table: %q is not a terminal", term)
	}
	p := t.g.Production(prod)
	if p == nil {
		return nil, nil, nil, fmt.Errorf("parse table: no production %d", prod)
	}
	if p.LHS != A {
		return nil, nil, nil, fmt.Errorf("parse table: production %d (%s) cannot expand %s", prod, p, A)
	}
	return A, a, p, nil
}

// Set puts production prod into cell (nt, term). Setting a second, different
// production for a cell does not overwrite the first one, but records a conflict.
func (t *ParseTable) Set(nt, term string, prod int) error {
	A, a, p, err := t.resolve(nt, term, prod)
	if err != nil {
		return err
	}
	v1, _ := t.matrix.Values(A.Value, a.Value)
	if v1 == int32(p.ID) {
		return nil
	}
	if v1 != noRule {
		tracer().Infof("parse table: cell (%s, %s) already holds %d, adding %d", A, a, v1, p.ID)
	}
	t.matrix.Add(A.Value, a.Value, int32(p.ID))
	return nil
}

// Refine adds a refinement to cell (nt, term): if the token offset positions
// behind the lookahead is terminal next, production prod is used instead of
// the cell's primary production. Refinements are tried in order of insertion.
func (t *ParseTable) Refine(nt, term string, offset int, next string, prod int) error {
	A, a, p, err := t.resolve(nt, term, prod)
	if err != nil {
		return err
	}
	if offset < 1 {
		return fmt.Errorf("parse table: refinement offset for (%s, %s) must be positive", A, a)
	}
	n, ok := t.g.Terminal(next)
	if !ok {
		return fmt.Errorf("parse table: %q is not a terminal", next)
	}
	c := cell{A.Value, a.Value}
	t.refinements[c] = append(t.refinements[c], Refinement{Offset: offset, Next: n, Production: p})
	return nil
}

// Lookup returns the primary production for cell (A, a), or nil if the cell
// is empty.
func (t *ParseTable) Lookup(A, a *Symbol) *Production {
	if A == nil || a == nil || A.IsTerminal() || !a.IsTerminal() {
		return nil
	}
	id := t.matrix.Value(A.Value, a.Value)
	if id == noRule {
		return nil
	}
	return t.g.Production(int(id))
}

// Refinements returns the refinements of cell (A, a). Clients must not
// modify the result.
func (t *ParseTable) Refinements(A, a *Symbol) []Refinement {
	if A == nil || a == nil {
		return nil
	}
	return t.refinements[cell{A.Value, a.Value}]
}

// Predict selects a production for non-terminal A with lookahead a.
// peek(k) has to return the terminal k tokens behind the lookahead, or nil if
// there is no such token. It is called for refined cells only.
// The second return value tells whether a refinement made the choice.
func (t *ParseTable) Predict(A, a *Symbol, peek func(int) *Symbol) (*Production, bool) {
	for _, r := range t.Refinements(A, a) {
		if peek != nil && peek(r.Offset) == r.Next {
			return r.Production, true
		}
	}
	return t.Lookup(A, a), false
}

// Each calls f for every non-empty cell, row by row.
func (t *ParseTable) Each(f func(A, a *Symbol, p *Production)) {
	t.matrix.Each(func(i, j int, v1, v2 int32) {
		if v1 != noRule {
			f(t.g.NonTerminalAt(i), t.g.TerminalAt(j), t.g.Production(int(v1)))
		}
	})
}

// Conflicts returns all cells holding two productions.
func (t *ParseTable) Conflicts() []Conflict {
	var conflicts []Conflict
	t.matrix.Each(func(i, j int, v1, v2 int32) {
		if v1 != noRule && v2 != noRule {
			conflicts = append(conflicts, Conflict{
				NonTerm:     t.g.NonTerminalAt(i),
				Term:        t.g.TerminalAt(j),
				Productions: [2]*Production{t.g.Production(int(v1)), t.g.Production(int(v2))},
			})
		}
	})
	return conflicts
}

// HasConflicts is true if any cell holds more than one production.
func (t *ParseTable) HasConflicts() bool {
	return len(t.Conflicts()) > 0
}

// Size returns the number of non-empty cells.
func (t *ParseTable) Size() int {
	return t.matrix.ValueCount()
}

// Dump is a debugging helper, listing all non-empty cells to the tracer.
func (t *ParseTable) Dump() {
	tracer().Debugf("--- parse table for %s (%d cells) ----------", t.g.Name, t.Size())
	t.Each(func(A, a *Symbol, p *Production) {
		if refs := t.Refinements(A, a); len(refs) > 0 {
			tracer().Debugf("(%s, %s) = %d %v", A, a, p.ID, refs)
		} else {
			tracer().Debugf("(%s, %s) = %d", A, a, p.ID)
		}
	})
	for _, c := range t.Conflicts() {
		tracer().Errorf("%s", c)
	}
}

// --- Fingerprint -----------------------------------------------------------

// tableImage is a flat image of grammar and table contents, suitable for
// hashing. structhash considers exported fields only.
type tableImage struct {
	Grammar      string
	Terminals    []string
	NonTerminals []string
	Productions  []string
	Cells        []string
	Refinements  []string
}

func (t *ParseTable) image() tableImage {
	img := tableImage{Grammar: t.g.Name}
	t.g.EachTerminal(func(A *Symbol) { img.Terminals = append(img.Terminals, A.Name) })
	t.g.EachNonTerminal(func(A *Symbol) { img.NonTerminals = append(img.NonTerminals, A.Name) })
	for _, p := range t.g.productions {
		img.Productions = append(img.Productions, fmt.Sprintf("%d:%s", p.ID, p))
	}
	t.matrix.Each(func(i, j int, v1, v2 int32) {
		img.Cells = append(img.Cells, fmt.Sprintf("%d,%d=%d/%d", i, j, v1, v2))
	})
	t.Each(func(A, a *Symbol, p *Production) {
		for _, r := range t.Refinements(A, a) {
			img.Refinements = append(img.Refinements, fmt.Sprintf("%s,%s:%s", A, a, r))
		}
	})
	return img
}

// Fingerprint returns a hash over the grammar and the table contents.
// Two tables have the same fingerprint iff they drive a parser to the same
// decisions.
func (t *ParseTable) Fingerprint() (string, error) {
	return structhash.Hash(t.image(), 1)
}

// --- Export ----------------------------------------------------------------

// ParseTableAsHTML exports a parse table in HTML-format. Refined cells are
// marked with '*'; conflicting cells show both productions.
func ParseTableAsHTML(t *ParseTable, w io.Writer) error {
	var b bytes.Buffer
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("<p>%s: parse table with %d entries</p>\n", html.EscapeString(t.g.Name), t.Size()))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>")
	t.g.EachTerminal(func(a *Symbol) {
		b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(a.Name)))
	})
	b.WriteString("</tr>\n")
	t.g.EachNonTerminal(func(A *Symbol) {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td>", html.EscapeString(A.Name)))
		t.g.EachTerminal(func(a *Symbol) {
			v1, v2 := t.matrix.Values(A.Value, a.Value)
			refs := t.Refinements(A, a)
			var td string
			if v1 == noRule {
				td = "&nbsp;"
			} else if v2 == noRule {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			if len(refs) > 0 {
				var alt []string
				for _, r := range refs {
					alt = append(alt, r.String())
				}
				b.WriteString(fmt.Sprintf("<td title=\"%s\">%s*</td>",
					html.EscapeString(strings.Join(alt, "; ")), td))
			} else {
				b.WriteString("<td>" + td + "</td>")
			}
		})
		b.WriteString("</tr>\n")
	})
	b.WriteString("</table></body></html>\n")
	_, err := w.Write(b.Bytes())
	return err
}

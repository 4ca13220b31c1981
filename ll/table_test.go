package ll

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeTable(t *testing.T, g *Grammar) *ParseTable {
	T := NewParseTable(g)
	for _, c := range []struct {
		A, a string
		p    int
	}{
		{"S", "a", 1}, {"S", "b", 1}, {"A", "a", 2}, {"A", "b", 3},
	} {
		if err := T.Set(c.A, c.a, c.p); err != nil {
			t.Fatal(err)
		}
	}
	return T
}

func TestTableLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.ll")
	defer teardown()
	//
	g := makeGrammar(t)
	T := makeTable(t, g)
	T.Dump()
	S, _ := g.NonTerminal("S")
	A, _ := g.NonTerminal("A")
	a, _ := g.Terminal("a")
	b, _ := g.Terminal("b")
	eof, _ := g.Terminal("$")
	if p := T.Lookup(A, b); p == nil || p.ID != 3 {
		t.Errorf("expected (A, b) to hold production 3, holds %v", p)
	}
	if p := T.Lookup(S, eof); p != nil {
		t.Errorf("expected (S, $) to be empty, holds %v", p)
	}
	if p := T.Lookup(a, A); p != nil {
		t.Errorf("expected lookup with swapped symbols to fail")
	}
	if T.Size() != 4 || T.HasConflicts() {
		t.Errorf("expected 4 cells without conflicts, have %d cells, conflicts = %v", T.Size(), T.Conflicts())
	}
}

func TestTableRejectsForeignProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.ll")
	defer teardown()
	//
	T := NewParseTable(makeGrammar(t))
	if err := T.Set("S", "a", 2); err == nil {
		t.Errorf("expected production of A to be rejected in row S")
	}
	if err := T.Set("S", "zz", 1); err == nil {
		t.Errorf("expected unknown terminal to be rejected")
	}
	if err := T.Set("A", "a", 17); err == nil {
		t.Errorf("expected unknown production to be rejected")
	}
}

func TestTableConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.ll")
	defer teardown()
	//
	g := makeGrammar(t)
	T := makeTable(t, g)
	if err := T.Set("A", "b", 3); err != nil { // same value again is no conflict
		t.Fatal(err)
	}
	if T.HasConflicts() {
		t.Fatalf("expected repeated identical entry not to be a conflict")
	}
	if err := T.Set("A", "a", 3); err != nil {
		t.Fatal(err)
	}
	conflicts := T.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, have %d", len(conflicts))
	}
	c := conflicts[0]
	if c.NonTerm.Name != "A" || c.Term.Name != "a" || c.Productions[0].ID != 2 || c.Productions[1].ID != 3 {
		t.Errorf("unexpected conflict %v", c)
	}
}

func TestTableRefinement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.ll")
	defer teardown()
	//
	g := makeGrammar(t)
	T := makeTable(t, g)
	if err := T.Refine("A", "a", 1, "$", 3); err != nil {
		t.Fatal(err)
	}
	if err := T.Refine("A", "a", 0, "$", 3); err == nil {
		t.Errorf("expected refinement with offset 0 to be rejected")
	}
	A, _ := g.NonTerminal("A")
	a, _ := g.Terminal("a")
	b, _ := g.Terminal("b")
	eof, _ := g.Terminal("$")
	p, refined := T.Predict(A, a, func(k int) *Symbol { return eof })
	if p.ID != 3 || !refined {
		t.Errorf("expected refinement to select production 3, have %v (refined=%v)", p, refined)
	}
	p, refined = T.Predict(A, a, func(k int) *Symbol { return b })
	if p.ID != 2 || refined {
		t.Errorf("expected primary production 2, have %v (refined=%v)", p, refined)
	}
	p, _ = T.Predict(A, a, func(k int) *Symbol { return nil })
	if p.ID != 2 {
		t.Errorf("expected primary production 2 at end of input, have %v", p)
	}
}

func TestTableFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.ll")
	defer teardown()
	//
	g := makeGrammar(t)
	fp1, err := makeTable(t, g).Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fp2, _ := makeTable(t, g).Fingerprint()
	if fp1 != fp2 {
		t.Errorf("expected equal tables to have equal fingerprints: %s vs %s", fp1, fp2)
	}
	T := makeTable(t, g)
	T.Refine("A", "a", 1, "$", 3)
	fp3, _ := T.Fingerprint()
	if fp3 == fp1 {
		t.Errorf("expected refinement to change fingerprint")
	}
	t.Logf("fingerprint = %s", fp1)
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.ll")
	defer teardown()
	//
	T := makeTable(t, makeGrammar(t))
	T.Refine("A", "a", 1, "$", 3)
	var buf bytes.Buffer
	if err := ParseTableAsHTML(T, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<td>A</td>") || !strings.Contains(out, "2*</td>") {
		t.Errorf("expected HTML to contain row A with refined cell, is\n%s", out)
	}
}

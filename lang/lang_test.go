package lang

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/txtar"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/ll"
	"github.com/npillmayer/edulang/ll/parser"
	"github.com/npillmayer/edulang/ll/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestScenarioMinimalProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	src := "#include<stdio.h>\nint main(){\nreturn 0..\n}"
	res, err := Recognize(src, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	expected := []edulang.TokType{KindPreamble, KindInt, KindMain, KindLParen, KindRParen,
		KindLBrace, KindReturn, KindNumber, KindDotDot, KindRBrace, KindEOF}
	if !sameKinds(res.Tokens, expected) {
		t.Errorf("expected tokens %v, have %v", expected, kindsOf(res.Tokens))
	}
	if res.Tokens[7].Lexeme() != "0" || res.Tokens[10].Lexeme() != "$" {
		t.Errorf("expected number 0 and end marker $, have %v", res.Tokens)
	}
	if !res.Accepted {
		t.Errorf("expected program to be accepted, error is %v", res.SyntaxError)
	}
}

func TestScenarioMissingPreamble(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	opts := DefaultOptions()
	opts.Trace = true
	res, err := Recognize("int main(){return 0..}", opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tokens[0].TokType() != KindInt {
		t.Errorf("expected first token to be int, is %s", TokenString(res.Tokens[0]))
	}
	if res.Accepted || res.SyntaxError == nil {
		t.Fatalf("expected program without preamble to be rejected")
	}
	if len(res.Steps) != 1 || res.Steps[0].Action != parser.Reject {
		t.Errorf("expected rejection at the first step, have %d steps", len(res.Steps))
	}
	if res.SyntaxError.Expected.Name != "Program" || res.SyntaxError.Found.Name != "int" {
		t.Errorf("expected error for Program/int, is %v", res.SyntaxError)
	}
	if len(res.LexErrors) != 0 {
		t.Errorf("expected no lexical errors, have %v", res.LexErrors)
	}
	opts.RequirePreamble = true
	res, _ = Recognize("  int main(){return 0..}", opts)
	var lexerr *scanner.LexError
	if len(res.LexErrors) != 1 || !errors.As(res.LexErrors[0], &lexerr) || lexerr.Offset != 2 {
		t.Errorf("expected missing preamble to be reported at offset 2, have %v", res.LexErrors)
	}
}

func TestScenarioLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	src := "int main(){return 0@..}"
	tokens, errs, err := Tokenize(src, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 lexical error, have %v", errs)
	}
	var lexerr *scanner.LexError
	if !errors.As(errs[0], &lexerr) || lexerr.Rune != '@' || lexerr.Offset != 19 {
		t.Errorf("expected error for '@' at 19, is %v", errs[0])
	}
	expected := []edulang.TokType{KindInt, KindMain, KindLParen, KindRParen,
		KindLBrace, KindReturn, KindNumber, KindDotDot, KindRBrace, KindEOF}
	if !sameKinds(tokens, expected) {
		t.Errorf("expected tokens %v, have %v", expected, kindsOf(tokens))
	}
	// with error tokens
	opts := DefaultOptions()
	opts.EmitErrorTokens = true
	res, err := Recognize("#include<stdio.h> "+src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tokens[8].TokType() != KindError || res.Tokens[8].Lexeme() != "@" {
		t.Errorf("expected error token for '@', have %s", TokenString(res.Tokens[8]))
	}
	if res.Accepted || res.SyntaxError.Found.Name != "error" {
		t.Errorf("expected parser to reject the error token, have %v", res.SyntaxError)
	}
	// without error tokens the error is invisible to the parser
	res, _ = Recognize("#include<stdio.h> "+src, DefaultOptions())
	if !res.Accepted || len(res.LexErrors) != 1 {
		t.Errorf("expected program to be accepted with 1 lexical error")
	}
}

func TestScenarioLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	src := "loop i1 : while ( i1 < 10 ) { printf ( i1 ) .. break .. }"
	opts := DefaultOptions()
	opts.Start = "Loop"
	opts.Trace = true
	res, err := Recognize(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatalf("expected loop to be accepted, error is %v", res.SyntaxError)
	}
	var refined bool
	for _, step := range res.Steps {
		if step.Refined && step.Production.ID == 10 {
			refined = true
		}
	}
	if !refined {
		t.Errorf("expected trailing break to end the statement list by refinement")
	}
	opts.Start = "Statement"
	if res, _ = Recognize(src, opts); !res.Accepted {
		t.Errorf("expected loop to be a statement, error is %v", res.SyntaxError)
	}
	opts.Start = "Expression"
	if res, _ = Recognize(src, opts); res.Accepted {
		t.Errorf("expected loop not to be an expression")
	}
	opts.Start = "NoSuchSymbol"
	if _, err = Recognize(src, opts); err == nil {
		t.Errorf("expected unknown start symbol to be an error")
	}
}

func TestScenarioIdentifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	tokens, _, _ := Tokenize("intVal", DefaultOptions())
	if len(tokens) != 2 || TokenString(tokens[0]) != "[variable-name: intVal]" {
		t.Errorf("expected intVal to be a single variable-name, have %v", tokens)
	}
}

func TestPrograms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	archive := loadPrograms(t)
	for _, file := range archive.Files {
		res, err := Recognize(string(file.Data), DefaultOptions())
		if err != nil {
			t.Errorf("%s: %v", file.Name, err)
			continue
		}
		if len(res.LexErrors) != 0 {
			t.Errorf("%s: unexpected lexical errors %v", file.Name, res.LexErrors)
		}
		shouldAccept := strings.HasPrefix(file.Name, "accept/")
		if res.Accepted != shouldAccept {
			t.Errorf("%s: expected accepted=%v, error is %v", file.Name, shouldAccept, res.SyntaxError)
		} else if !res.Accepted {
			t.Logf("%s: %v", file.Name, res.SyntaxError)
		}
	}
}

func TestMutatedProgramsAreRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	type mutation struct {
		file  string
		op    string
		index int
	}
	derivable := map[mutation]bool{
		{"accept/function.edu", "delete", 8}: true, // 'int b = a + 1..' becomes the re-assignment 'b = a + 1..'
	}
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	archive := loadPrograms(t)
	for _, file := range archive.Files {
		if !strings.HasPrefix(file.Name, "accept/") {
			continue
		}
		tokens, _, err := Tokenize(string(file.Data), DefaultOptions())
		if err != nil {
			t.Fatalf("%s: %v", file.Name, err)
		}
		for i := 0; i < len(tokens)-1; i++ { // keep the end marker
			for _, op := range []string{"delete", "duplicate"} {
				var mutated []edulang.Token
				if op == "delete" {
					mutated = slices.Delete(slices.Clone(tokens), i, i+1)
				} else {
					mutated = slices.Insert(slices.Clone(tokens), i, tokens[i])
				}
				accepted, _ := p.Parse(mutated)
				if m := (mutation{file.Name, op, i}); accepted != derivable[m] {
					t.Errorf("%s: %s token #%d %s: expected accepted=%v, is %v",
						file.Name, op, i, TokenString(tokens[i]), derivable[m], accepted)
				}
			}
		}
	}
}

func TestKindNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	for k := edulang.TokType(0); int(k) < KindCount; k++ {
		if kind, ok := KindOf(KindString(k)); !ok || kind != k {
			t.Errorf("expected KindOf(%q) to be %d, is %d", KindString(k), k, kind)
		}
	}
	if _, ok := KindOf("Fn"); ok {
		t.Errorf("expected 'Fn' not to name a token kind")
	}
	if KindString(edulang.TokType(KindCount)) != "<kind 24>" {
		t.Errorf("expected out of range kind to print as <kind 24>, is %q", KindString(edulang.TokType(KindCount)))
	}
}

func TestReferenceScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	inputs := []string{"x #y", "a.b..c", "intVal mainFn Fn F 007"}
	for _, file := range loadPrograms(t).Files {
		inputs = append(inputs, string(file.Data))
	}
	lmopts := DefaultOptions()
	lmopts.UseLexmachine = true
	for i, input := range inputs {
		dfaTokens, dfaErrs, err := Tokenize(input, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		lmTokens, lmErrs, err := Tokenize(input, lmopts)
		if err != nil {
			t.Fatal(err)
		}
		if len(dfaErrs) != len(lmErrs) {
			t.Errorf("%d: DFA reports %d errors, lexmachine %d", i, len(dfaErrs), len(lmErrs))
		}
		if len(dfaTokens) != len(lmTokens) {
			t.Errorf("%d: DFA produces %d tokens, lexmachine %d", i, len(dfaTokens), len(lmTokens))
			continue
		}
		for j := range dfaTokens {
			d, l := dfaTokens[j], lmTokens[j]
			if d.TokType() != l.TokType() || d.Lexeme() != l.Lexeme() || d.Span() != l.Span() {
				t.Errorf("%d: token #%d differs: DFA %s%v, lexmachine %s%v", i, j,
					TokenString(d), d.Span(), TokenString(l), l.Span())
			}
		}
	}
}

func TestLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	var caperr *edulang.CapacityError
	opts := DefaultOptions()
	_, err := Recognize(strings.Repeat(" ", edulang.DefaultMaxSourceLen+1), opts)
	if !errors.As(err, &caperr) || caperr.Limit != "MaxSourceLen" {
		t.Errorf("expected source to be too long, error is %v", err)
	}
	_, err = Recognize(strings.Repeat("x ", edulang.DefaultMaxTokens), opts)
	if !errors.As(err, &caperr) || caperr.Limit != "MaxTokens" {
		t.Errorf("expected too many tokens, error is %v", err)
	}
	tokens, _, _ := Tokenize(strings.Repeat("a", 150), opts)
	if len(tokens[0].Lexeme()) != edulang.DefaultMaxLexemeLen-1 {
		t.Errorf("expected lexeme to be truncated to %d bytes, has %d",
			edulang.DefaultMaxLexemeLen-1, len(tokens[0].Lexeme()))
	}
	opts.Limits.MaxStackDepth = 5
	_, err = Recognize("#include<stdio.h> int main(){return 0..}", opts)
	if !errors.As(err, &caperr) || caperr.Limit != "MaxStackDepth" {
		t.Errorf("expected parser stack to overflow, error is %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{
		ConfRequirePreamble: true,
		ConfErrorTokens:     "true",
		ConfTokenizer:       "lexmachine",
		edulang.ConfMaxStack: 77,
	})
	defer gconf.Initialize(testconfig.Conf{})
	opts := OptionsFromConfig()
	if !opts.RequirePreamble || !opts.EmitErrorTokens || !opts.UseLexmachine {
		t.Errorf("expected options to be switched on by configuration, have %+v", opts)
	}
	if opts.Limits.MaxStackDepth != 77 || opts.Limits.MaxTokens != edulang.DefaultMaxTokens {
		t.Errorf("expected limits from configuration, have %+v", opts.Limits)
	}
}

func TestTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	T := Table()
	g := Grammar()
	if g.TerminalCount() != KindCount || g.NonTerminalCount() != 16 || g.Size() != 26 {
		t.Errorf("expected 24 terminals, 16 non-terminals, 26 productions; have %d, %d, %d",
			g.TerminalCount(), g.NonTerminalCount(), g.Size())
	}
	for k := 0; k < KindCount; k++ {
		if g.TerminalAt(k).Name != KindString(edulang.TokType(k)) {
			t.Errorf("expected terminal #%d to be %s, is %v", k, KindString(edulang.TokType(k)), g.TerminalAt(k))
		}
	}
	if g.EndMarker().Value != int(KindEOF) {
		t.Errorf("expected end marker to be $, is %v", g.EndMarker())
	}
	if T.HasConflicts() {
		t.Errorf("expected edulang table to be free of conflicts")
	}
	stmt, _ := g.NonTerminal("Statement")
	v, _ := g.Terminal("variable-name")
	if p := T.Lookup(stmt, v); p == nil || p.ID != 11 {
		t.Errorf("expected (Statement, variable-name) to be 11, is %v", p)
	}
	fc, _ := g.NonTerminal("FuncCall")
	g.EachTerminal(func(a *ll.Symbol) {
		if T.Lookup(fc, a) != nil {
			t.Errorf("expected FuncCall row to be empty")
		}
	})
	fp1, err := T.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp2, _ := Table().Fingerprint(); fp1 != fp2 {
		t.Errorf("expected fingerprint to be stable")
	}
}

func loadPrograms(t *testing.T) *txtar.Archive {
	archive, err := txtar.ParseFile("testdata/programs.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(archive.Files) == 0 {
		t.Fatal("no programs in archive")
	}
	return archive
}

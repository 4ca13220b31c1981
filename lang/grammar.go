package lang

import (
	"fmt"
	"sync"

	"github.com/npillmayer/edulang/ll"
)

var theTable struct {
	once  sync.Once
	table *ll.ParseTable
}

// Grammar returns the grammar of edulang.
func Grammar() *ll.Grammar {
	return Table().Grammar()
}

// Table returns the LL(1) parse table for edulang. Grammar and table are
// created on first use.
func Table() *ll.ParseTable {
	theTable.once.Do(func() {
		g, err := buildGrammar()
		if err != nil {
			panic(fmt.Sprintf("edulang grammar: %v", err))
		}
		t, err := buildTable(g)
		if err != nil {
			panic(fmt.Sprintf("edulang parse table: %v", err))
		}
		theTable.table = t
	})
	return theTable.table
}

// Non-terminals of edulang in row order
var nonTerminals = []string{
	"Program", "OptFuncs", "FuncDef", "FuncParams", "DataType", "StatementList",
	"Statement", "Assignment", "Loop", "MainFunc", "FuncCall", "PrintfCall",
	"ReturnStmt", "Expression", "Term", "Expr_Tail",
}

func buildGrammar() (*ll.Grammar, error) {
	b := ll.NewGrammarBuilder("edulang")
	b.Terminals(kindNames[:]...)
	b.NonTerminals(nonTerminals...)
	b.StartSymbol("Program")
	b.EndMarker("$")
	b.LHS("Program").T("preamble").N("OptFuncs").N("MainFunc").End() // 1
	b.LHS("OptFuncs").N("FuncDef").N("OptFuncs").End()               // 2
	b.LHS("OptFuncs").Epsilon()                                      // 3
	// 4
	b.LHS("FuncDef").N("DataType").T("function-name").T("(").N("FuncParams").T(")").
		T("{").N("StatementList").N("ReturnStmt").T("}").End()
	b.LHS("FuncParams").N("DataType").T("variable-name").End()                        // 5
	b.LHS("FuncParams").Epsilon()                                                     // 6
	b.LHS("DataType").T("int").End()                                                  // 7
	b.LHS("DataType").T("dec").End()                                                  // 8
	b.LHS("StatementList").N("Statement").N("StatementList").End()                    // 9
	b.LHS("StatementList").Epsilon()                                                  // 10
	b.LHS("Statement").N("Assignment").T("..").End()                                  // 11
	b.LHS("Statement").N("Loop").End()                                                // 12
	b.LHS("Statement").N("PrintfCall").T("..").End()                                  // 13
	b.LHS("Statement").T("break").T("..").End()                                       // 14
	b.LHS("Assignment").N("DataType").T("variable-name").T("=").N("Expression").End() // 15
	b.LHS("Assignment").N("DataType").T("variable-name").End()                        // 16
	b.LHS("Assignment").T("variable-name").T("=").N("Expression").End()               // 17
	// 18
	b.LHS("Loop").T("loop").T("variable-name").T(":").T("while").T("(").
		T("variable-name").T("<").T("number").T(")").
		T("{").N("StatementList").T("break").T("..").T("}").End()
	b.LHS("PrintfCall").T("printf").T("(").T("variable-name").T(")").End() // 19
	b.LHS("ReturnStmt").T("return").N("Expression").T("..").End()          // 20
	b.LHS("Expression").N("Term").N("Expr_Tail").End()                     // 21
	b.LHS("Term").T("number").End()                                        // 22
	b.LHS("Term").T("variable-name").End()                                 // 23
	// 24
	b.LHS("MainFunc").N("DataType").T("main").T("(").T(")").
		T("{").N("StatementList").N("ReturnStmt").T("}").End()
	b.LHS("Expr_Tail").T("+").N("Term").N("Expr_Tail").End() // 25
	b.LHS("Expr_Tail").Epsilon()                             // 26
	return b.Grammar()
}

// cells are the entries of the parse table, row by row.
var cells = []struct {
	nt    string
	terms []string
	prod  int
}{
	{"Program", []string{"preamble"}, 1},
	{"OptFuncs", []string{"int", "dec"}, 2},
	{"OptFuncs", []string{"main"}, 3},
	{"FuncDef", []string{"int", "dec"}, 4},
	{"FuncParams", []string{"int", "dec"}, 5},
	{"FuncParams", []string{")"}, 6},
	{"DataType", []string{"int"}, 7},
	{"DataType", []string{"dec"}, 8},
	{"StatementList", []string{"int", "dec", "variable-name", "loop", "printf", "break"}, 9},
	{"StatementList", []string{"}", "return"}, 10},
	{"Statement", []string{"int", "dec", "variable-name"}, 11},
	{"Statement", []string{"loop"}, 12},
	{"Statement", []string{"printf"}, 13},
	{"Statement", []string{"break"}, 14},
	{"Assignment", []string{"int", "dec"}, 15},
	{"Assignment", []string{"variable-name"}, 17},
	{"Loop", []string{"loop"}, 18},
	{"MainFunc", []string{"int", "dec"}, 24},
	{"PrintfCall", []string{"printf"}, 19},
	{"ReturnStmt", []string{"return"}, 20},
	{"Expression", []string{"variable-name", "number"}, 21},
	{"Term", []string{"number"}, 22},
	{"Term", []string{"variable-name"}, 23},
	{"Expr_Tail", []string{")", "}", "..", "return", ","}, 26},
	{"Expr_Tail", []string{"+"}, 25},
}

// refinements resolve the cells a single token of lookahead cannot decide.
var refinements = []struct {
	nt, term string
	offset   int
	next     string
	prod     int
}{
	{"OptFuncs", "int", 1, "main", 3},      // no more function definitions
	{"OptFuncs", "dec", 1, "main", 3},      // no more function definitions
	{"Assignment", "int", 2, "..", 16},     // declaration without initializer
	{"Assignment", "dec", 2, "..", 16},     // declaration without initializer
	{"StatementList", "break", 2, "}", 10}, // trailing break of a loop
}

func buildTable(g *ll.Grammar) (*ll.ParseTable, error) {
	t := ll.NewParseTable(g)
	for _, c := range cells {
		for _, term := range c.terms {
			if err := t.Set(c.nt, term, c.prod); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range refinements {
		if err := t.Refine(r.nt, r.term, r.offset, r.next, r.prod); err != nil {
			return nil, err
		}
	}
	if t.HasConflicts() {
		return nil, fmt.Errorf("table has conflicts: %v", t.Conflicts())
	}
	return t, nil
}

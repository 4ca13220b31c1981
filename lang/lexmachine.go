package lang

import (
	"fmt"
	"sync"

	"github.com/npillmayer/edulang/ll/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

var theLM struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

// referenceLexer returns a lexmachine adapter for the lexicon of edulang.
// It compiles the same lexicon from regular expressions and serves as a cross
// check for the hand-built DFA. Different from the DFA tokenizer, it
// recognizes the preamble anywhere in the input.
func referenceLexer() (*lexmach.LMAdapter, error) {
	theLM.once.Do(func() {
		tokenIds := make(map[string]int, KindCount)
		for k, name := range kindNames {
			tokenIds[name] = k
		}
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(lexmach.Quote(Preamble)), lexmach.MakeToken("preamble", int(KindPreamble)))
			lexer.Add([]byte(`Fn`), lexmach.MakeToken("function-name", int(KindFunc)))
			lexer.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*Fn`), lexmach.MakeToken("function-name", int(KindFunc)))
			lexer.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*`), lexmach.MakeToken("variable-name", int(KindVar)))
			lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("number", int(KindNumber)))
			lexer.Add([]byte("[ \t\n\r\v\f]+"), lexmach.Skip)
		}
		theLM.adapter, theLM.err = lexmach.NewLMAdapter(init, punctuation, keywords, tokenIds)
		if theLM.err != nil {
			theLM.err = fmt.Errorf("edulang lexmachine lexicon: %w", theLM.err)
		}
	})
	return theLM.adapter, theLM.err
}

package lang

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/edulang/ll/scanner"
)

var theDFA struct {
	once sync.Once
	dfa  *scanner.DFA
}

// DFA returns the automaton for the lexicon of edulang. It is built on first
// use.
func DFA() *scanner.DFA {
	theDFA.once.Do(func() {
		dfa, err := buildDFA()
		if err != nil {
			panic(fmt.Sprintf("edulang DFA: %v", err))
		}
		theDFA.dfa = dfa
	})
	return theDFA.dfa
}

// buildDFA creates the DFA. Identifiers are tracked by three states: plain,
// ending in 'F', and ending in "Fn"; keywords are recognized by a trie of
// states, each of which accepts a variable-name if it is not a complete
// keyword. Keywords and identifiers are scanned with maximal munch, while
// punctuation is accepted on sight.
func buildDFA() (*scanner.DFA, error) {
	dfa := scanner.NewDFA("edulang", Classifier, CatCount)
	start := dfa.Start()
	ident := dfa.AddState("ident")
	identF := dfa.AddState("ident-F")
	identFn := dfa.AddState("ident-Fn")
	dfa.SetAccepting(ident, KindVar, false)
	dfa.SetAccepting(identF, KindVar, false)
	dfa.SetAccepting(identFn, KindFunc, false)
	n := Classify('n')
	plain := func(c scanner.CatCode) scanner.State {
		if c == catF {
			return identF
		}
		return ident
	}
	for _, c := range identClasses(true) {
		dfa.SetTransition(ident, c, plain(c))
		dfa.SetTransition(identFn, c, plain(c))
		if c == n {
			dfa.SetTransition(identF, c, identFn)
		} else {
			dfa.SetTransition(identF, c, plain(c))
		}
	}
	for _, c := range identClasses(false) {
		dfa.SetTransition(start, c, plain(c))
	}
	// keyword trie
	trie := map[string]scanner.State{"": start}
	for _, kw := range keywords {
		kind, _ := KindOf(kw)
		for i := 1; i <= len(kw); i++ {
			prefix := kw[:i]
			s, ok := trie[prefix]
			if !ok {
				s = dfa.AddState(prefix)
				trie[prefix] = s
				for _, c := range identClasses(true) {
					dfa.SetTransition(s, c, plain(c))
				}
				dfa.SetAccepting(s, KindVar, false)
			}
			dfa.SetTransition(trie[kw[:i-1]], Classify(rune(kw[i-1])), s)
		}
		dfa.SetAccepting(trie[kw], kind, false)
	}
	// numbers
	num := dfa.AddState("number")
	dfa.SetAccepting(num, KindNumber, false)
	dfa.SetTransition(start, catDigit, num)
	dfa.SetTransition(num, catDigit, num)
	// punctuation
	for _, p := range punctuation {
		kind, _ := KindOf(p)
		from := start
		for i := 0; i < len(p)-1; i++ {
			s := dfa.AddState(strings.Repeat(p[:1], i+1))
			dfa.SetTransition(from, Classify(rune(p[i])), s)
			from = s
		}
		s := dfa.AddState(p)
		dfa.SetTransition(from, Classify(rune(p[len(p)-1])), s)
		dfa.SetAccepting(s, kind, true)
	}
	if err := dfa.Freeze(); err != nil {
		return nil, err
	}
	tracer().Debugf("edulang DFA has %d states", dfa.StateCount())
	return dfa, nil
}

// identClasses returns the classes of characters allowed in identifiers;
// digits only if inner is set.
func identClasses(inner bool) []scanner.CatCode {
	cats := []scanner.CatCode{catLetter, catF, catUnderscore}
	if inner {
		cats = append(cats, catDigit)
	}
	for i := range keywordLetters {
		cats = append(cats, catKeywordLetter+scanner.CatCode(i))
	}
	return cats
}

package scanner

import (
	"fmt"

	"github.com/npillmayer/edulang"
)

// --- Category codes --------------------------------------------------------

// CatCode is an input class. Runes are grouped into classes by a
// RuneCategorizer, keeping transition tables small.
type CatCode int16

// IllegalCatCode is the class of runes no token may contain.
const IllegalCatCode CatCode = 0

// RuneCategorizer maps runes to input classes.
type RuneCategorizer interface {
	Cat(r rune) CatCode
}

// CategorizerFunc is an adapter to use plain functions as RuneCategorizer.
type CategorizerFunc func(r rune) CatCode

// Cat calls f(r).
func (f CategorizerFunc) Cat(r rune) CatCode {
	return f(r)
}

// --- DFA -------------------------------------------------------------------

// State is a DFA state.
type State int16

// DeadState absorbs every invalid continuation. It is never accepting and
// all of its transitions lead to itself.
const DeadState State = 0

// Accept describes what an accepting state recognizes.
// Stop tells the tokenizer to end the token as soon as this state is reached,
// which is correct for tokens of a fixed shape only.
type Accept struct {
	Kind edulang.TokType
	Stop bool
}

// DFA is a deterministic finite automaton with a total transition function
// over (state, input class). Create one with NewDFA and add states and
// transitions; call Freeze before handing it to a tokenizer. A frozen DFA is
// immutable and safe for concurrent use.
type DFA struct {
	Name     string
	cats     RuneCategorizer
	catcnt   int
	start    State
	names    []string
	delta    [][]State
	accept   []Accept
	accepts  []bool
	isFrozen bool
}

// NewDFA creates an automaton with categories 0…catcnt-1, holding the dead
// state and a start state.
func NewDFA(name string, cats RuneCategorizer, catcnt int) *DFA {
	dfa := &DFA{
		Name:   name,
		cats:   cats,
		catcnt: catcnt,
	}
	dfa.AddState("dead")
	dfa.start = dfa.AddState("start")
	return dfa
}

// AddState adds a new non-accepting state without transitions, i.e. all its
// transitions lead to the dead state.
func (dfa *DFA) AddState(name string) State {
	dfa.mustBeMutable()
	s := State(len(dfa.delta))
	dfa.names = append(dfa.names, name)
	dfa.delta = append(dfa.delta, make([]State, dfa.catcnt)) // all DeadState
	dfa.accept = append(dfa.accept, Accept{})
	dfa.accepts = append(dfa.accepts, false)
	return s
}

// SetTransition sets δ(from, cat) = to.
func (dfa *DFA) SetTransition(from State, cat CatCode, to State) {
	dfa.mustBeMutable()
	if from == DeadState {
		panic("scanner: transitions of the dead state are fixed")
	}
	dfa.delta[from][cat] = to
}

// SetAccepting marks a state as accepting a token kind.
func (dfa *DFA) SetAccepting(s State, kind edulang.TokType, stop bool) {
	dfa.mustBeMutable()
	if s == DeadState {
		panic("scanner: dead state cannot accept")
	}
	dfa.accept[s] = Accept{Kind: kind, Stop: stop}
	dfa.accepts[s] = true
}

// Freeze checks the automaton for consistency and makes it immutable.
func (dfa *DFA) Freeze() error {
	if dfa.cats == nil {
		return fmt.Errorf("DFA %s has no rune categorizer", dfa.Name)
	}
	for s, row := range dfa.delta {
		if len(row) != dfa.catcnt {
			return fmt.Errorf("DFA %s: state %s has %d transitions, need %d",
				dfa.Name, dfa.names[s], len(row), dfa.catcnt)
		}
		if dfa.catcnt > 0 && row[IllegalCatCode] != DeadState {
			return fmt.Errorf("DFA %s: state %s has a transition on the illegal class", dfa.Name, dfa.names[s])
		}
		for c, to := range row {
			if int(to) < 0 || int(to) >= len(dfa.delta) {
				return fmt.Errorf("DFA %s: δ(%s, %d) leads to unknown state %d", dfa.Name, dfa.names[s], c, to)
			}
		}
	}
	dfa.isFrozen = true
	tracer().Debugf("DFA %s frozen with %d states and %d input classes", dfa.Name, len(dfa.delta), dfa.catcnt)
	return nil
}

func (dfa *DFA) mustBeMutable() {
	if dfa.isFrozen {
		panic(fmt.Sprintf("scanner: DFA %s is frozen", dfa.Name))
	}
}

// Start returns the initial state.
func (dfa *DFA) Start() State {
	return dfa.start
}

// StateCount returns the number of states, including the dead state.
func (dfa *DFA) StateCount() int {
	return len(dfa.delta)
}

// CatCount returns the number of input classes.
func (dfa *DFA) CatCount() int {
	return dfa.catcnt
}

// StateName returns the name a state has been created with.
func (dfa *DFA) StateName(s State) string {
	if int(s) < 0 || int(s) >= len(dfa.names) {
		return fmt.Sprintf("<state %d>", s)
	}
	return dfa.names[s]
}

// Cat classifies a rune. Classes outside of the DFA's range count as illegal.
func (dfa *DFA) Cat(r rune) CatCode {
	c := dfa.cats.Cat(r)
	if c < 0 || int(c) >= dfa.catcnt {
		return IllegalCatCode
	}
	return c
}

// Step returns δ(s, cat).
func (dfa *DFA) Step(s State, cat CatCode) State {
	if int(s) < 0 || int(s) >= len(dfa.delta) || cat < 0 || int(cat) >= dfa.catcnt {
		return DeadState
	}
	return dfa.delta[s][cat]
}

// Next returns the state reached from s by reading rune r.
func (dfa *DFA) Next(s State, r rune) State {
	return dfa.Step(s, dfa.Cat(r))
}

// Accepting returns the acceptance information for a state.
func (dfa *DFA) Accepting(s State) (Accept, bool) {
	if int(s) < 0 || int(s) >= len(dfa.accepts) {
		return Accept{}, false
	}
	return dfa.accept[s], dfa.accepts[s]
}

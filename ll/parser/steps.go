package parser

import (
	"fmt"
	"strings"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/ll"
)

// Action is the kind of a parse step.
type Action int

// Parse step actions
const (
	Match   Action = iota // terminal on top of stack matched the lookahead
	Predict               // non-terminal on top of stack replaced by a production's RHS
	Epsilon               // non-terminal on top of stack removed by an ε-production
	Reject                // parse failed
	Accept                // parse succeeded
)

func (a Action) String() string {
	switch a {
	case Match:
		return "match"
	case Predict:
		return "predict"
	case Epsilon:
		return "epsilon"
	case Reject:
		return "reject"
	case Accept:
		return "accept"
	}
	return fmt.Sprintf("<action %d>", int(a))
}

// Step describes a single step of a parse, as seen before the step is
// performed. Token and Lookahead are nil if the input is exhausted.
type Step struct {
	N          int          // steps are numbered from 1
	Stack      []*ll.Symbol // stack contents, top first
	Top        *ll.Symbol
	Lookahead  *ll.Symbol
	Token      edulang.Token
	Action     Action
	Production *ll.Production // for Predict and Epsilon
	Refined    bool           // production has been chosen by a refinement
}

// StackString returns the stack contents as a string, top first.
func (s Step) StackString() string {
	names := make([]string, len(s.Stack))
	for i, A := range s.Stack {
		names[i] = A.Name
	}
	return strings.Join(names, " ")
}

// ActionString returns the action in a form suitable for parse traces, e.g.
// "Loop ➞ loop variable-name : …" for predictions.
func (s Step) ActionString() string {
	switch s.Action {
	case Predict, Epsilon:
		if s.Refined {
			return s.Production.String() + " (refined)"
		}
		return s.Production.String()
	}
	return s.Action.String()
}

func (s Step) String() string {
	lexeme := ""
	if s.Token != nil {
		lexeme = s.Token.Lexeme()
	}
	return fmt.Sprintf("%3d: [%s] %s %q: %s", s.N, s.StackString(), s.Lookahead, lexeme, s.ActionString())
}

// StepObserver receives the steps of a parse. Observers never influence the
// outcome of a parse.
type StepObserver interface {
	Step(Step)
}

// StepFunc is an adapter to use plain functions as StepObservers.
type StepFunc func(Step)

// Step calls f(s).
func (f StepFunc) Step(s Step) {
	f(s)
}

// StepRecorder is a StepObserver collecting all steps.
type StepRecorder struct {
	Steps []Step
}

// Step is part of interface StepObserver.
func (rec *StepRecorder) Step(s Step) {
	rec.Steps = append(rec.Steps, s)
}

// Reset clears the recorded steps.
func (rec *StepRecorder) Reset() {
	rec.Steps = rec.Steps[:0]
}

// Last returns the most recent step, if any.
func (rec *StepRecorder) Last() (Step, bool) {
	if len(rec.Steps) == 0 {
		return Step{}, false
	}
	return rec.Steps[len(rec.Steps)-1], true
}

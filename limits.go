package edulang

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
)

// Default capacity limits.
const (
	DefaultMaxSourceLen  = 5000 // bytes of source text
	DefaultMaxTokens     = 500  // tokens per run, including end-of-stream
	DefaultMaxLexemeLen  = 100  // lexeme storage; lexemes are cut to MaxLexemeLen-1 bytes
	DefaultMaxStackDepth = 500  // parser stack entries
)

// MinMaxLexemeLen is the smallest usable MaxLexemeLen: it leaves room for a
// lexeme of one byte.
const MinMaxLexemeLen = 2

// Configuration keys for limits. They are read with gconf, i.e. from whatever
// configuration the application has installed with gconf.Initialize.
const (
	ConfMaxSource = "edulang.max-source"
	ConfMaxTokens = "edulang.max-tokens"
	ConfMaxLexeme = "edulang.max-lexeme"
	ConfMaxStack  = "edulang.max-stack"
)

// Limits bounds the resources a single recognition run may use.
// Values ≤ 0 select the default.
type Limits struct {
	MaxSourceLen  int
	MaxTokens     int
	MaxLexemeLen  int
	MaxStackDepth int
}

// DefaultLimits returns limits with every field set to its default.
func DefaultLimits() Limits {
	return Limits{
		MaxSourceLen:  DefaultMaxSourceLen,
		MaxTokens:     DefaultMaxTokens,
		MaxLexemeLen:  DefaultMaxLexemeLen,
		MaxStackDepth: DefaultMaxStackDepth,
	}
}

// Normalized replaces unset fields by their defaults. MaxLexemeLen is raised
// to MinMaxLexemeLen if it is set below it.
func (l Limits) Normalized() Limits {
	d := DefaultLimits()
	if l.MaxSourceLen <= 0 {
		l.MaxSourceLen = d.MaxSourceLen
	}
	if l.MaxTokens <= 0 {
		l.MaxTokens = d.MaxTokens
	}
	if l.MaxLexemeLen <= 0 {
		l.MaxLexemeLen = d.MaxLexemeLen
	} else if l.MaxLexemeLen < MinMaxLexemeLen {
		l.MaxLexemeLen = MinMaxLexemeLen
	}
	if l.MaxStackDepth <= 0 {
		l.MaxStackDepth = d.MaxStackDepth
	}
	return l
}

// LimitsFromConfig reads limits from the global configuration. Keys which are
// not set yield defaults.
func LimitsFromConfig() Limits {
	l := Limits{
		MaxSourceLen:  gconf.GetInt(ConfMaxSource),
		MaxTokens:     gconf.GetInt(ConfMaxTokens),
		MaxLexemeLen:  gconf.GetInt(ConfMaxLexeme),
		MaxStackDepth: gconf.GetInt(ConfMaxStack),
	}
	return l.Normalized()
}

// CapacityError is returned whenever a run exceeds one of its Limits.
type CapacityError struct {
	Limit string // name of the exceeded limit, e.g. "MaxTokens"
	Max   int    // configured bound
	Have  int    // size which would have been needed, if known
}

func (e *CapacityError) Error() string {
	if e.Have > 0 {
		return fmt.Sprintf("capacity exceeded: %s is %d, need %d", e.Limit, e.Max, e.Have)
	}
	return fmt.Sprintf("capacity exceeded: %s is %d", e.Limit, e.Max)
}

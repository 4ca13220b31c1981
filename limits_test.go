package edulang

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLimitsNormalized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	l := Limits{MaxTokens: 12, MaxStackDepth: -3}.Normalized()
	if l.MaxTokens != 12 {
		t.Errorf("expected MaxTokens to be kept at 12, is %d", l.MaxTokens)
	}
	if l.MaxStackDepth != DefaultMaxStackDepth {
		t.Errorf("expected negative MaxStackDepth to fall back to %d, is %d",
			DefaultMaxStackDepth, l.MaxStackDepth)
	}
	if l.MaxSourceLen != DefaultMaxSourceLen || l.MaxLexemeLen != DefaultMaxLexemeLen {
		t.Errorf("expected unset limits to be defaults, have %+v", l)
	}
	for _, n := range []int{1, MinMaxLexemeLen} {
		if l = (Limits{MaxLexemeLen: n}).Normalized(); l.MaxLexemeLen != MinMaxLexemeLen {
			t.Errorf("expected MaxLexemeLen %d to become %d, is %d", n, MinMaxLexemeLen, l.MaxLexemeLen)
		}
	}
}

func TestLimitsFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.lang")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{
		ConfMaxTokens: 42,
		ConfMaxSource: "1000",
	})
	defer gconf.Initialize(testconfig.Conf{})
	l := LimitsFromConfig()
	if l.MaxTokens != 42 {
		t.Errorf("expected MaxTokens from config to be 42, is %d", l.MaxTokens)
	}
	if l.MaxSourceLen != 1000 {
		t.Errorf("expected MaxSourceLen from config to be 1000, is %d", l.MaxSourceLen)
	}
	if l.MaxStackDepth != DefaultMaxStackDepth {
		t.Errorf("expected MaxStackDepth to be default, is %d", l.MaxStackDepth)
	}
}

func TestCapacityError(t *testing.T) {
	var err error = &CapacityError{Limit: "MaxTokens", Max: 5, Have: 6}
	wrapped := fmt.Errorf("tokenizing: %w", err)
	var cerr *CapacityError
	if !errors.As(wrapped, &cerr) {
		t.Fatalf("expected wrapped error to unwrap to CapacityError")
	}
	if cerr.Limit != "MaxTokens" {
		t.Errorf("expected limit name MaxTokens, is %q", cerr.Limit)
	}
	t.Logf("error = %v", wrapped)
}

func TestSpan(t *testing.T) {
	s := Span{3, 7}
	if s.Len() != 4 {
		t.Errorf("expected length of %v to be 4, is %d", s, s.Len())
	}
	e := s.Extend(Span{1, 5})
	if e.From() != 1 || e.To() != 7 {
		t.Errorf("expected extended span to be (1…7), is %v", e)
	}
	if !(Span{}).IsNull() {
		t.Errorf("expected zero span to be null")
	}
}

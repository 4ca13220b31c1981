package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/lang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.cli")
	defer teardown()
	//
	fs := flag.NewFlagSet("edurec", flag.ContinueOnError)
	f, err := parseFlags(fs, []string{"-scanner", "lexmachine", "-max-tokens", "20", "-quiet", "prog.edu"})
	if err != nil {
		t.Fatal(err)
	}
	if f.tokenizer != "lexmachine" || f.limits.MaxTokens != 20 || !f.quiet {
		t.Errorf("expected flags to be set, have %+v", f)
	}
	if f.limits.MaxStackDepth != edulang.DefaultMaxStackDepth {
		t.Errorf("expected default stack depth, have %d", f.limits.MaxStackDepth)
	}
	if fs.Arg(0) != "prog.edu" {
		t.Errorf("expected file argument prog.edu, have %q", fs.Arg(0))
	}
	fs = flag.NewFlagSet("edurec", flag.ContinueOnError)
	if _, err = parseFlags(fs, []string{"-scanner", "yacc"}); err == nil {
		t.Errorf("expected unknown scanner to be refused")
	}
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.cli")
	defer teardown()
	//
	dir := t.TempDir()
	write := func(name, src string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	good := write("good.edu", "#include<stdio.h>\nint main(){\nreturn 0..\n}")
	bad := write("bad.edu", "int main(){return 0..}")
	big := write("big.edu", strings.Repeat("x ", 100))
	opts := lang.DefaultOptions()
	opts.Trace = true
	if code := run(good, opts); code != exitAccepted {
		t.Errorf("expected exit code %d for a valid program, have %d", exitAccepted, code)
	}
	if code := run(bad, opts); code != exitRejected {
		t.Errorf("expected exit code %d for an invalid program, have %d", exitRejected, code)
	}
	if code := run(filepath.Join(dir, "missing.edu"), opts); code != exitFailure {
		t.Errorf("expected exit code %d for a missing file, have %d", exitFailure, code)
	}
	opts.Limits.MaxTokens = 50
	if code := run(big, opts); code != exitFailure {
		t.Errorf("expected exit code %d for too many tokens, have %d", exitFailure, code)
	}
}

func TestDisplayTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.cli")
	defer teardown()
	//
	opts := lang.DefaultOptions()
	opts.Trace = true
	res, err := lang.Recognize("#include<stdio.h> int main(){return x..}", opts)
	if err != nil {
		t.Fatal(err)
	}
	tokens := tokenTable(res.Tokens)
	if len(tokens) != len(res.Tokens)+1 || tokens[1][1] != "[preamble: #include<stdio.h>]" {
		t.Errorf("unexpected token table %v", tokens)
	}
	steps := stepTable(res.Steps)
	if len(steps) != len(res.Steps)+1 {
		t.Errorf("expected one row per step, have %d rows for %d steps", len(steps), len(res.Steps))
	}
	if last := steps[len(steps)-1]; last[3] != "accept" || last[1] != "$" {
		t.Errorf("expected last step to accept with empty stack, is %v", last)
	}
}

func TestExportTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "edulang.cli")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "table.html")
	if err := exportTable(path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "StatementList") || !strings.Contains(string(b), "*</td>") {
		t.Errorf("expected HTML table with refined cells")
	}
}

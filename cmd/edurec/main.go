package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"github.com/npillmayer/edulang"
	"github.com/npillmayer/edulang/lang"
	"github.com/npillmayer/edulang/ll"
	"github.com/npillmayer/edulang/ll/parser"
)

// Exit codes
const (
	exitAccepted = 0
	exitRejected = 1
	exitFailure  = 2
)

// tracers are the keys of all tracers of this module.
var tracers = []string{"edulang.scanner", "edulang.ll", "edulang.parser", "edulang.lang", "edulang.cli"}

// flags holds the command line settings.
type flags struct {
	traceLevel      string
	tokenizer       string
	quiet           bool
	requirePreamble bool
	errorTokens     bool
	limits          edulang.Limits
	tableFile       string
}

func parseFlags(fs *flag.FlagSet, args []string) (*flags, error) {
	f := &flags{}
	fs.StringVar(&f.traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	fs.StringVar(&f.tokenizer, "scanner", "dfa", "Tokenizer [dfa|lexmachine]")
	fs.BoolVar(&f.quiet, "quiet", false, "Do not print the parse trace")
	fs.BoolVar(&f.requirePreamble, "require-preamble", false, "Report a missing preamble as a lexical error")
	fs.BoolVar(&f.errorTokens, "error-tokens", false, "Pass unrecognized characters to the parser")
	fs.IntVar(&f.limits.MaxSourceLen, "max-source", edulang.DefaultMaxSourceLen, "Maximum source size in bytes")
	fs.IntVar(&f.limits.MaxTokens, "max-tokens", edulang.DefaultMaxTokens, "Maximum number of tokens")
	fs.IntVar(&f.limits.MaxLexemeLen, "max-lexeme", edulang.DefaultMaxLexemeLen, "Maximum lexeme length")
	fs.IntVar(&f.limits.MaxStackDepth, "max-stack", edulang.DefaultMaxStackDepth, "Maximum parser stack depth")
	fs.StringVar(&f.tableFile, "table", "", "Export the parse table as HTML to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch f.tokenizer {
	case "dfa", "lexmachine":
	default:
		return nil, fmt.Errorf("unknown scanner %q, use dfa or lexmachine", f.tokenizer)
	}
	return f, nil
}

// configure puts the command line settings into a koanf configuration and
// makes it the global configuration. Tracing is routed to the Go logger.
func configure(f *flags) *koanfadapter.KConf {
	conf := koanfadapter.New(nil, "", nil)
	conf.Set("trace.root", f.traceLevel)
	for _, key := range tracers {
		conf.Set("trace."+key, f.traceLevel)
	}
	conf.Set(edulang.ConfMaxSource, f.limits.MaxSourceLen)
	conf.Set(edulang.ConfMaxTokens, f.limits.MaxTokens)
	conf.Set(edulang.ConfMaxLexeme, f.limits.MaxLexemeLen)
	conf.Set(edulang.ConfMaxStack, f.limits.MaxStackDepth)
	conf.Set(lang.ConfRequirePreamble, f.requirePreamble)
	conf.Set(lang.ConfErrorTokens, f.errorTokens)
	conf.Set(lang.ConfTokenizer, f.tokenizer)
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	gconf.Initialize(conf)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "unable to configure tracing: %v\n", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return conf
}

// main reads an edulang program and tells whether it is syntactically
// correct.
func main() {
	initDisplay()
	f, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitFailure)
	}
	configure(f)
	tracer().Infof("Trace level is %s", f.traceLevel)
	if f.tableFile != "" {
		if err := exportTable(f.tableFile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(exitFailure)
		}
		pterm.Info.Printf("parse table written to %s\n", f.tableFile)
	}
	filename := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if filename == "" {
		if filename, err = promptFilename(); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(exitFailure)
		}
	}
	opts := lang.OptionsFromConfig()
	opts.Trace = !f.quiet
	os.Exit(run(filename, opts))
}

// run recognizes a source file and displays the result. It returns the
// exit code.
func run(filename string, opts lang.Options) int {
	src, err := readSource(filename, opts.Limits.Normalized().MaxSourceLen)
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitFailure
	}
	pterm.DefaultSection.Println("Input")
	pterm.Println(src)
	res, err := lang.Recognize(src, opts)
	if res != nil && len(res.Tokens) > 0 {
		pterm.DefaultSection.Println("Tokens")
		showTokens(res.Tokens)
	}
	if res != nil {
		for _, e := range res.LexErrors {
			pterm.Warning.Println(e.Error())
		}
	}
	if err != nil {
		var caperr *edulang.CapacityError
		if errors.As(err, &caperr) {
			pterm.Error.Printf("capacity exceeded: %v\n", caperr)
		} else {
			pterm.Error.Println(err.Error())
		}
		return exitFailure
	}
	if len(res.Steps) > 0 {
		pterm.DefaultSection.Println("Parse")
		showSteps(res.Steps)
	}
	return verdict(res)
}

func verdict(res *lang.Result) int {
	if res.Accepted {
		pterm.Success.Println("SYNTAX ACCEPTED")
		return exitAccepted
	}
	pterm.Error.Println("SYNTAX REJECTED")
	if res.SyntaxError != nil {
		pterm.Error.Println(res.SyntaxError.Error())
	}
	return exitRejected
}

// readSource reads at most max+1 bytes, enough for the recognizer to detect
// an oversized source.
func readSource(filename string, max int) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()
	b, err := io.ReadAll(io.LimitReader(file, int64(max)+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(b), nil
}

func promptFilename() (string, error) {
	repl, err := readline.New("input file> ")
	if err != nil {
		return "", err
	}
	defer repl.Close()
	line, err := repl.Readline()
	if err != nil { // io.EOF or interrupt
		return "", fmt.Errorf("no input file: %w", err)
	}
	if line = strings.TrimSpace(line); line == "" {
		return "", errors.New("no input file")
	}
	return line, nil
}

func exportTable(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = ll.ParseTableAsHTML(lang.Table(), file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// --- Display ---------------------------------------------------------------

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func tokenTable(tokens []edulang.Token) pterm.TableData {
	data := pterm.TableData{{"#", "token", "span"}}
	for i, tok := range tokens {
		data = append(data, []string{fmt.Sprintf("%d", i), lang.TokenString(tok), tok.Span().String()})
	}
	return data
}

func showTokens(tokens []edulang.Token) {
	if err := pterm.DefaultTable.WithHasHeader().WithData(tokenTable(tokens)).Render(); err != nil {
		tracer().Errorf("cannot display tokens: %v", err)
	}
}

func stepTable(steps []parser.Step) pterm.TableData {
	data := pterm.TableData{{"step", "stack", "lookahead", "action"}}
	for _, s := range steps {
		lookahead := "-"
		if s.Token != nil {
			lookahead = lang.TokenString(s.Token)
		}
		data = append(data, []string{fmt.Sprintf("%d", s.N), s.StackString(), lookahead, s.ActionString()})
	}
	return data
}

func showSteps(steps []parser.Step) {
	if err := pterm.DefaultTable.WithHasHeader().WithData(stepTable(steps)).Render(); err != nil {
		tracer().Errorf("cannot display parse trace: %v", err)
	}
}

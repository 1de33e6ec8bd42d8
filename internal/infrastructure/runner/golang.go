package runner

import (
	"bytes"
	"context"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"path"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// ErrGoroutines is the rejection text for source that starts goroutines.
// A goroutine spawned by interpreted code outlives the call and a panic in
// it cannot be recovered by the caller.
const ErrGoroutines = "goroutines are not allowed"

// callbackSymbols run user functions on goroutines of their own.
var callbackSymbols = map[string][]string{
	"time/time": {"AfterFunc"},
}

// GoStrategy interprets Go source with yaegi. Each call gets its own
// interpreter, and only allowlisted stdlib packages are loaded into it.
type GoStrategy struct {
	allowed map[string]bool
	symbols interp.Exports
}

// DefaultGoPackages is the stdlib subset exposed to interpreted code.
func DefaultGoPackages() []string {
	return []string{
		"bytes",
		"encoding/base64",
		"encoding/json",
		"errors",
		"fmt",
		"math",
		"regexp",
		"sort",
		"strconv",
		"strings",
		"time",
		"unicode",
	}
}

// NewGoStrategy restricts the interpreter to packages, or to
// DefaultGoPackages when none are given.
func NewGoStrategy(packages ...string) *GoStrategy {
	if len(packages) == 0 {
		packages = DefaultGoPackages()
	}
	allowed := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		allowed[pkg] = true
	}
	symbols := interp.Exports{}
	for key, syms := range stdlib.Symbols {
		// keys look like "encoding/json/json"
		if allowed[path.Dir(key)] {
			symbols[key] = withoutCallbacks(key, syms)
		}
	}
	return &GoStrategy{allowed: allowed, symbols: symbols}
}

// Language implements ports.ExecutionStrategy.
func (s *GoStrategy) Language() domain.Language {
	return domain.LanguageGo
}

// Run implements ports.ExecutionStrategy.
func (s *GoStrategy) Run(ctx context.Context, source string) (domain.ExecutionResult, error) {
	if forbidden := s.forbiddenImports(source); len(forbidden) > 0 {
		msg := fmt.Sprintf("forbidden imports: %v", forbidden)
		res := domain.FailedResult(domain.FailureScriptError, "Go error: "+msg, msg)
		res.Mode = domain.ModeInterpreted
		return res, nil
	}

	if startsGoroutines(source) {
		res := domain.FailedResult(domain.FailureScriptError, "Go error: "+ErrGoroutines, ErrGoroutines)
		res.Mode = domain.ModeInterpreted
		return res, nil
	}

	var stdout, stderr bytes.Buffer
	i := interp.New(interp.Options{
		Stdout: &stdout,
		Stderr: &stderr,
		Env:    []string{},
	})
	if err := i.Use(s.symbols); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("load symbols: %w", err)
	}

	value, err := i.EvalWithContext(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ExecutionResult{}, fmt.Errorf("interpreter stopped: %w", ctx.Err())
		}
		msg := strings.TrimSpace(err.Error())
		if extra := strings.TrimSpace(stderr.String()); extra != "" {
			msg += "\n" + extra
		}
		res := domain.FailedResult(domain.FailureScriptError, "Go error: "+msg, msg)
		res.Mode = domain.ModeInterpreted
		return res, nil
	}

	output := stdout.String()
	if result, ok := goResult(value); ok {
		output = withResult(output, result)
	}
	res := domain.NewResult(true, output)
	res.Mode = domain.ModeInterpreted
	return res, nil
}

// goResult formats the value a snippet evaluates to. Declarations and main
// packages yield nothing worth printing.
func goResult(v reflect.Value) (string, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return "", false
	}
	switch v.Kind() {
	case reflect.Func:
		return "", false
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		if v.IsNil() {
			return "", false
		}
	}
	return fmt.Sprintf("%v", v.Interface()), true
}

func withoutCallbacks(key string, syms map[string]reflect.Value) map[string]reflect.Value {
	drop := callbackSymbols[key]
	if len(drop) == 0 {
		return syms
	}
	out := make(map[string]reflect.Value, len(syms))
	for name, v := range syms {
		out[name] = v
	}
	for _, name := range drop {
		delete(out, name)
	}
	return out
}

// startsGoroutines reports whether source contains a go statement. The
// keyword has no other use, so a token scan covers snippets that do not
// parse as a file. Strings and comments are separate tokens.
func startsGoroutines(source string) bool {
	fset := token.NewFileSet()
	src := []byte(source)
	var sc scanner.Scanner
	sc.Init(fset.AddFile("", fset.Base(), len(src)), src, nil, 0)
	for {
		_, tok, _ := sc.Scan()
		switch tok {
		case token.EOF:
			return false
		case token.GO:
			return true
		}
	}
}

func (s *GoStrategy) forbiddenImports(source string) []string {
	var forbidden []string
	for _, pkg := range importPaths(source) {
		if !s.allowed[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}
	sort.Strings(forbidden)
	return forbidden
}

// importPaths prefers the Go parser and falls back to a line scan for
// snippets without a package clause.
func importPaths(source string) []string {
	if strings.HasPrefix(strings.TrimSpace(source), "package ") {
		file, err := parser.ParseFile(token.NewFileSet(), "", source, parser.ImportsOnly)
		if err == nil {
			var paths []string
			for _, spec := range file.Imports {
				if p, err := strconv.Unquote(spec.Path.Value); err == nil {
					paths = append(paths, p)
				}
			}
			return paths
		}
	}
	return scanImports(source)
}

func scanImports(source string) []string {
	var paths []string
	inBlock := false
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock, strings.HasPrefix(trimmed, "import "):
			if p, ok := quotedPath(trimmed); ok {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func quotedPath(line string) (string, bool) {
	start := strings.IndexAny(line, "\"`")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexAny(line, "\"`")
	if end <= start {
		return "", false
	}
	p, err := strconv.Unquote(line[start : end+1])
	if err != nil {
		return "", false
	}
	return p, true
}

var _ ports.ExecutionStrategy = (*GoStrategy)(nil)

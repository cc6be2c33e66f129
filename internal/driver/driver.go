// Package driver orchestrates the lexer, parser, lowerer, and validator
// into the two entry points a host (editor, build tool, language
// server) actually calls: a batch compile over a whole file set, and a
// fast incremental validation of a single in-flight edit. Both are
// stateless per call — the driver holds no session state between
// invocations, leaving debouncing and cancellation policy to the host.
package driver

import (
	"time"

	"github.com/hyperdrive-technology/core-sub001/internal/ast"
	"github.com/hyperdrive-technology/core-sub001/internal/diagnostics"
	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
	"github.com/hyperdrive-technology/core-sub001/internal/lowerer"
	"github.com/hyperdrive-technology/core-sub001/internal/parser"
	"github.com/hyperdrive-technology/core-sub001/internal/validator"
)

// SourceFile is one named input to a batch compile.
type SourceFile struct {
	Name    string
	Content string
}

// BatchResult is the aggregated outcome of compiling a set of files.
type BatchResult struct {
	Success           bool
	Diagnostics       []diagnostics.External
	FileCount         int
	AST               *ast.Program `json:"-"`
	SourceCode        string       `json:"-"`
	ProcessingTimeMs   int64
}

// CompileBatch lexes, parses, lowers, and validates every file in
// files, merging their diagnostics (each tagged with its file name) and
// returning the AST of the first file with zero errors, so a caller
// interested in a single compiled unit does not have to pick through a
// multi-file result by hand. Success requires every file to be
// error-free.
func CompileBatch(files []SourceFile) BatchResult {
	start := nowFunc()
	bag := diagnostics.NewBag()
	var firstAST *ast.Program
	var firstSource string

	for _, f := range files {
		prog, fileDiags := compileOne(f.Content)
		bag.Merge(fileDiags, f.Name)
		if firstAST == nil && !fileDiags.HasErrors() {
			firstAST = prog
			firstSource = f.Content
		}
	}

	return BatchResult{
		Success:          !bag.HasErrors(),
		Diagnostics:      externalize(bag),
		FileCount:        len(files),
		AST:              firstAST,
		SourceCode:       firstSource,
		ProcessingTimeMs: int64(nowFunc().Sub(start) / time.Millisecond),
	}
}

func compileOne(content string) (*ast.Program, *diagnostics.Bag) {
	lex := lexer.New(content)
	p := parser.New(lex)
	file := p.ParseFile()

	bag := diagnostics.NewBag()
	bag.Merge(p.Diagnostics(), "")

	prog, lowerDiags := lowerer.Lower(file)
	bag.Merge(lowerDiags, "")

	if !bag.HasErrors() {
		bag.Merge(validator.Validate(prog), "")
	}
	return prog, bag
}

// ValidationResult is the outcome of an incremental (single-document)
// validation pass. Its diagnostics carry 0-based line and column
// positions.
type ValidationResult struct {
	URI         string
	Diagnostics []diagnostics.External
}

// ValidateIncremental runs the lex/parse/lower/validate pipeline against
// a single document's content and discards the resulting AST: this is
// the path an editor calls on every keystroke, so nothing is retained
// between calls. Positions are reported 0-based, the language-server
// convention.
func ValidateIncremental(uri string, content string) ValidationResult {
	prog, bag := compileOne(content)
	_ = prog
	out := make([]diagnostics.External, 0, bag.Len())
	for _, d := range bag.All() {
		d.Source = uri
		ext := d.ToExternal()
		ext.Line, ext.Column = d.Range.Start.Line, d.Range.Start.Column
		ext.EndLine, ext.EndCol = d.Range.End.Line, d.Range.End.Column
		out = append(out, ext)
	}
	return ValidationResult{URI: uri, Diagnostics: out}
}

func externalize(bag *diagnostics.Bag) []diagnostics.External {
	all := bag.All()
	out := make([]diagnostics.External, 0, len(all))
	for _, d := range all {
		out = append(out, d.ToExternal())
	}
	return out
}

// nowFunc is overridden by tests that need deterministic timing.
var nowFunc = time.Now

// Package diagnostics defines the structured error/warning type shared by
// every pipeline stage and the accumulator used to collect them.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/hyperdrive-technology/core-sub001/internal/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Phase tags which pipeline stage raised a Diagnostic. Stage order
// (Lex < Parse < Lower < Validate) is also emission order: within one
// compilation, diagnostics are sorted by (stage, range) so earlier
// stages' diagnostics are never shadowed by later ones at the same range.
type Phase int

const (
	Lex Phase = iota
	Parse
	Lower
	Validate
)

func (p Phase) String() string {
	switch p {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Lower:
		return "lower"
	case Validate:
		return "validate"
	default:
		return "unknown"
	}
}

// Diagnostic is a single structured error or warning with a precise
// source range. Range positions are 0-based internally; callers that
// emit diagnostics to an external consumer expecting 1-based positions
// use ToExternal.
type Diagnostic struct {
	Severity Severity
	Phase    Phase
	Message  string
	Range    token.Range
	Source   string // optional file name / uri tag
}

func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%d:%d", d.Range.Start.Line, d.Range.Start.Column)
	if d.Source != "" {
		loc = d.Source + ":" + loc
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
}

// External is the wire rendering of a Diagnostic for consumers outside
// the core. ToExternal fills it with 1-based positions (the batch compile
// response); the incremental validation path reports 0-based ones.
type External struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	EndLine  int    `json:"endLine"`
	EndCol   int    `json:"endColumn"`
	Source   string `json:"source,omitempty"`
}

// ToExternal converts a 0-based internal Diagnostic to its 1-based
// external wire form.
func (d Diagnostic) ToExternal() External {
	return External{
		Severity: d.Severity.String(),
		Message:  d.Message,
		Line:     d.Range.Start.Line + 1,
		Column:   d.Range.Start.Column + 1,
		EndLine:  d.Range.End.Line + 1,
		EndCol:   d.Range.End.Column + 1,
		Source:   d.Source,
	}
}

// Bag accumulates diagnostics across pipeline stages. It implements
// error so a Bag holding at least one Error-severity diagnostic can be
// returned through ordinary error-handling paths.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a Diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Errorf appends an Error-severity diagnostic built from a format string.
func (b *Bag) Errorf(phase Phase, r token.Range, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Error, Phase: phase, Message: fmt.Sprintf(format, args...), Range: r})
}

// Warnf appends a Warning-severity diagnostic built from a format string.
func (b *Bag) Warnf(phase Phase, r token.Range, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Warning, Phase: phase, Message: fmt.Sprintf(format, args...), Range: r})
}

// Merge appends every diagnostic from other into b, tagging each with
// source if it does not already carry one.
func (b *Bag) Merge(other *Bag, source string) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		if d.Source == "" {
			d.Source = source
		}
		b.items = append(b.items, d)
	}
}

// All returns every accumulated diagnostic, stable-sorted by (phase, range).
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return out[i].Phase < out[j].Phase
		}
		if out[i].Range.Start.Offset != out[j].Range.Start.Offset {
			return out[i].Range.Start.Offset < out[j].Range.Start.Offset
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// HasErrors reports whether any accumulated diagnostic has Error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Len reports the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Error implements the error interface so a Bag can be returned directly
// from functions that otherwise report failure via error.
func (b *Bag) Error() string {
	if len(b.items) == 0 {
		return "no diagnostics"
	}
	if len(b.items) == 1 {
		return b.items[0].String()
	}
	return fmt.Sprintf("%s (and %d more diagnostic(s))", b.items[0].String(), len(b.items)-1)
}

package validator

import (
	"testing"

	"github.com/hyperdrive-technology/core-sub001/internal/diagnostics"
	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
	"github.com/hyperdrive-technology/core-sub001/internal/lowerer"
	"github.com/hyperdrive-technology/core-sub001/internal/parser"
)

func validate(t *testing.T, src string) *diagnostics.Bag {
	t.Helper()
	p := parser.New(lexer.New(src))
	file := p.ParseFile()
	prog, lowerDiags := lowerer.Lower(file)
	if lowerDiags.HasErrors() {
		t.Fatalf("unexpected lower diagnostics: %v", lowerDiags.All())
	}
	return Validate(prog)
}

func TestValidateAcceptsAWellFormedProgram(t *testing.T) {
	diags := validate(t, `PROGRAM P VAR x : INT := 0; END_VAR BEGIN x := x + 1; END END_PROGRAM`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestValidateRejectsEmptyFile(t *testing.T) {
	diags := validate(t, ``)
	if !diags.HasErrors() {
		t.Fatalf("expected an error for a file with no POUs")
	}
}

func TestValidateRejectsDuplicatePOUNames(t *testing.T) {
	src := `PROGRAM P BEGIN END END_PROGRAM
FUNCTION_BLOCK P VAR END_VAR BEGIN END END_FUNCTION_BLOCK`
	diags := validate(t, src)
	if !diags.HasErrors() {
		t.Fatalf("expected a duplicate-name error")
	}
}

func TestValidateRejectsDuplicateTypeNames(t *testing.T) {
	src := `TYPE Point : STRUCT x : INT; END_STRUCT END_TYPE
TYPE Point : (A, B) END_TYPE
PROGRAM P BEGIN END END_PROGRAM`
	diags := validate(t, src)
	if !diags.HasErrors() {
		t.Fatalf("expected a duplicate type-name error")
	}
}

func TestValidateRejectsFunctionWithoutReturnType(t *testing.T) {
	diags := validate(t, `FUNCTION Add VAR_INPUT a : INT; b : INT; END_VAR END_FUNCTION`)
	if !diags.HasErrors() {
		t.Fatalf("expected an error for a function with no declared return type")
	}
}

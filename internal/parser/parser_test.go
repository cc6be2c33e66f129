package parser

import (
	"testing"

	"github.com/hyperdrive-technology/core-sub001/internal/cst"
	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
)

func parse(src string) (*cst.Node, *Parser) {
	p := New(lexer.New(src))
	return p.ParseFile(), p
}

func TestMinimalProgram(t *testing.T) {
	file, p := parse(`PROGRAM P VAR x : INT := 0; END_VAR BEGIN x := x + 1; END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
	pous := file.NodesOf(cst.KindProgramDecl)
	if len(pous) != 1 {
		t.Fatalf("expected 1 ProgramDecl, got %d", len(pous))
	}
}

func TestFunctionWithReturnType(t *testing.T) {
	_, p := parse(`FUNCTION Add : INT VAR_INPUT a : INT; b : INT; END_VAR Add := a + b; END_FUNCTION`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestFunctionBlockWithBeginEnd(t *testing.T) {
	file, p := parse(`FUNCTION_BLOCK FB VAR t : TON; done : BOOL; END_VAR BEGIN done := t.Q; END END_FUNCTION_BLOCK`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
	fbs := file.NodesOf(cst.KindFunctionBlock)
	if len(fbs) != 1 {
		t.Fatalf("expected 1 FunctionBlock, got %d", len(fbs))
	}
}

func TestFunctionBlockWithoutBeginEnd(t *testing.T) {
	// FunctionBlock's Body production admits a direct statement list with
	// no BEGIN/END wrapper.
	_, p := parse(`FUNCTION_BLOCK FB VAR x : INT; END_VAR x := 1; END_FUNCTION_BLOCK`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestIfElsifElse(t *testing.T) {
	src := `PROGRAM P VAR x : INT; END_VAR
BEGIN
  IF x = 1 THEN
    x := 10;
  ELSIF x = 2 THEN
    x := 20;
  ELSE
    x := 30;
  END_IF
END
END_PROGRAM`
	file, p := parse(src)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
	prog := file.NodesOf(cst.KindProgramDecl)[0]
	body := prog.FirstOf(cst.KindBody)
	ifStmt := body.FirstOf(cst.KindIfStmt)
	if ifStmt == nil {
		t.Fatalf("expected an IfStmt")
	}
	if len(ifStmt.NodesOf(cst.KindElsifClause)) != 1 {
		t.Fatalf("expected 1 ElsifClause")
	}
	if !hasTok(ifStmt, "ELSE") {
		t.Fatalf("expected an ELSE token")
	}
}

func hasTok(n *cst.Node, literal string) bool {
	for _, t := range n.Tokens() {
		if string(t.Kind) == literal {
			return true
		}
	}
	return false
}

func TestWhileLoop(t *testing.T) {
	_, p := parse(`PROGRAM P VAR x : INT; END_VAR BEGIN WHILE x < 10 DO x := x + 1; END_WHILE END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestRepeatUntil(t *testing.T) {
	_, p := parse(`PROGRAM P VAR x : INT; END_VAR BEGIN REPEAT x := x + 1; UNTIL x >= 10 END_REPEAT END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestForLoopWithStep(t *testing.T) {
	_, p := parse(`PROGRAM P VAR x : INT; END_VAR BEGIN FOR x := 0 TO 10 BY 2 DO END_FOR END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestCaseWithElse(t *testing.T) {
	src := `PROGRAM P VAR x : INT; END_VAR
BEGIN
  CASE x OF
    1: x := 1;
    2, 3: x := 2;
    ELSE
      x := 0;
  END_CASE
END
END_PROGRAM`
	_, p := parse(src)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestArrayType(t *testing.T) {
	_, p := parse(`PROGRAM P VAR a : ARRAY[0..9] OF INT; END_VAR BEGIN END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestStructType(t *testing.T) {
	_, p := parse(`TYPE Point : STRUCT x : INT; y : INT := 0; END_STRUCT END_TYPE`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestEnumType(t *testing.T) {
	_, p := parse(`TYPE Weekday : (Monday, Tuesday, Wednesday) END_TYPE`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestNamedArgumentsWithTimeLiteral(t *testing.T) {
	_, p := parse(`FUNCTION_BLOCK FB VAR t : TON; END_VAR t(IN := TRUE, PT := T#500ms); END_FUNCTION_BLOCK`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestMemberAccessChain(t *testing.T) {
	_, p := parse(`PROGRAM P VAR a : INT; END_VAR BEGIN a.b[c].d := 1; END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestDirectAddressAssignment(t *testing.T) {
	_, p := parse(`PROGRAM P BEGIN %QX0.0 := TRUE; END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestOptionalTrailingSemicolonAndNewline(t *testing.T) {
	// No trailing newline and no trailing ';' after the last top-level decl.
	_, p := parse(`PROGRAM P BEGIN END END_PROGRAM`)
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics().All())
	}
}

func TestMissingEndIfRecovers(t *testing.T) {
	src := `PROGRAM P BEGIN IF TRUE THEN x := 1; END END_PROGRAM`
	file, p := parse(src)
	errs := 0
	for _, d := range p.Diagnostics().All() {
		if d.Severity.String() == "error" {
			errs++
		}
	}
	if errs != 1 {
		t.Fatalf("expected exactly 1 error (the missing END_IF), got %d: %v", errs, p.Diagnostics().All())
	}
	// Recovery must stop at the enclosing POU's own END/END_PROGRAM
	// rather than consuming them as bogus statements inside the IF.
	pous := file.NodesOf(cst.KindProgramDecl)
	if len(pous) != 1 {
		t.Fatalf("expected the PROGRAM's own END/END_PROGRAM to survive recovery, got %d ProgramDecl nodes", len(pous))
	}
	body := pous[0].FirstOf(cst.KindBody)
	if !hasTok(body, "END") {
		t.Fatalf("expected the body's closing END token to be preserved")
	}
	if !hasTok(pous[0], "END_PROGRAM") {
		t.Fatalf("expected the ProgramDecl's closing END_PROGRAM token to be preserved")
	}
}

func TestUnexpectedTopLevelTokenRecovers(t *testing.T) {
	file, p := parse(`BOGUS PROGRAM P BEGIN END END_PROGRAM`)
	if !p.Diagnostics().HasErrors() {
		t.Fatalf("expected a diagnostic for the stray top-level token")
	}
	if len(file.NodesOf(cst.KindProgramDecl)) != 1 {
		t.Fatalf("expected the parser to recover and still find the PROGRAM that follows")
	}
}

package lowerer

import (
	"testing"

	"github.com/hyperdrive-technology/core-sub001/internal/ast"
	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
	"github.com/hyperdrive-technology/core-sub001/internal/parser"
)

func lower(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	file := p.ParseFile()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", p.Diagnostics().All())
	}
	prog, diags := Lower(file)
	if diags.HasErrors() {
		t.Fatalf("unexpected lower diagnostics: %v", diags.All())
	}
	return prog
}

func TestLowerMinimalProgram(t *testing.T) {
	prog := lower(t, `PROGRAM P VAR x : INT := 0; END_VAR BEGIN x := x + 1; END END_PROGRAM`)
	if len(prog.Programs) != 1 {
		t.Fatalf("expected 1 program, got %d", len(prog.Programs))
	}
	pd := prog.Programs[0]
	if pd.Name != "P" {
		t.Fatalf("expected name P, got %q", pd.Name)
	}
	if len(pd.VarDecls) != 1 || len(pd.VarDecls[0].Vars) != 1 {
		t.Fatalf("expected 1 var decl with 1 var")
	}
	vs := pd.VarDecls[0].Vars[0]
	if vs.Name != "x" {
		t.Fatalf("expected var name x, got %q", vs.Name)
	}
	st, ok := vs.Type.(*ast.SimpleType)
	if !ok || st.Name != "INT" {
		t.Fatalf("expected SimpleType INT, got %#v", vs.Type)
	}
	if len(pd.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(pd.Body))
	}
	assign, ok := pd.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", pd.Body[0])
	}
	if len(assign.Target.Elements) != 1 || assign.Target.Elements[0].Member != "x" {
		t.Fatalf("unexpected assignment target %#v", assign.Target)
	}
	bin, ok := assign.Value.(*ast.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected a '+' BinaryExpression, got %#v", assign.Value)
	}
}

func TestLowerTimerMemberRead(t *testing.T) {
	src := `FUNCTION_BLOCK FB
VAR
  t : TON;
  done : BOOL;
END_VAR
BEGIN
  t(IN := TRUE, PT := T#500ms);
  done := t.Q;
END
END_FUNCTION_BLOCK`
	prog := lower(t, src)
	if len(prog.FunctionBlocks) != 1 {
		t.Fatalf("expected 1 function block")
	}
	fb := prog.FunctionBlocks[0]
	if len(fb.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fb.Body))
	}

	callStmt, ok := fb.Body[0].(*ast.FunctionCallStmt)
	if !ok {
		t.Fatalf("expected FunctionCallStmt, got %T", fb.Body[0])
	}
	if callStmt.Call.FunctionName != "t" {
		t.Fatalf("expected call to t, got %q", callStmt.Call.FunctionName)
	}
	if len(callStmt.Call.Args) != 2 {
		t.Fatalf("expected 2 named arguments, got %d", len(callStmt.Call.Args))
	}
	if callStmt.Call.Args[0].Name != "IN" || callStmt.Call.Args[1].Name != "PT" {
		t.Fatalf("expected named args IN, PT, got %#v", callStmt.Call.Args)
	}
	ptLit, ok := callStmt.Call.Args[1].Value.(*ast.Literal)
	if !ok || ptLit.Kind != ast.LiteralTime || ptLit.Value != "T#500ms" {
		t.Fatalf("expected a T#500ms time literal, got %#v", callStmt.Call.Args[1].Value)
	}

	assign, ok := fb.Body[1].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", fb.Body[1])
	}
	memberCall, ok := assign.Value.(*ast.FunctionCallExpression)
	if !ok {
		t.Fatalf("expected a member-read FunctionCallExpression, got %T", assign.Value)
	}
	if memberCall.Call.Object != "t" || memberCall.Call.Member != "Q" {
		t.Fatalf("expected t.Q member read, got %#v", memberCall.Call)
	}
	if len(memberCall.Call.Args) != 0 {
		t.Fatalf("expected a parenthesis-less member read to carry no args")
	}
}

func TestLowerIfElsifElseBranches(t *testing.T) {
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
	prog := lower(t, src)
	pd := prog.Programs[0]
	ifStmt, ok := pd.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", pd.Body[0])
	}
	if len(ifStmt.Then) != 1 {
		t.Fatalf("expected 1 then-statement, got %d", len(ifStmt.Then))
	}
	if len(ifStmt.Elsifs) != 1 {
		t.Fatalf("expected 1 elsif clause, got %d", len(ifStmt.Elsifs))
	}
	if len(ifStmt.Elsifs[0].Then) != 1 {
		t.Fatalf("expected 1 statement in the elsif clause, got %d", len(ifStmt.Elsifs[0].Then))
	}
	if len(ifStmt.Else) != 1 {
		t.Fatalf("expected 1 else-statement, got %d", len(ifStmt.Else))
	}
}

func TestLowerDirectAddressAssignment(t *testing.T) {
	prog := lower(t, `PROGRAM P BEGIN %QX0.0 := TRUE; END END_PROGRAM`)
	pd := prog.Programs[0]
	assign, ok := pd.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", pd.Body[0])
	}
	if len(assign.Target.Elements) != 1 || assign.Target.Elements[0].Member != "%QX0.0" {
		t.Fatalf("unexpected direct-address target %#v", assign.Target)
	}
}

func TestLowerMemberAccessChain(t *testing.T) {
	prog := lower(t, `PROGRAM P VAR a : INT; END_VAR BEGIN a.b[c].d := 1; END END_PROGRAM`)
	pd := prog.Programs[0]
	assign := pd.Body[0].(*ast.Assignment)
	elems := assign.Target.Elements
	if len(elems) != 4 {
		t.Fatalf("expected 4 chain elements (a, b, [c], d), got %d: %#v", len(elems), elems)
	}
	if elems[0].Member != "a" || elems[1].Member != "b" || elems[3].Member != "d" {
		t.Fatalf("unexpected chain members %#v", elems)
	}
	if elems[2].Member != "" || elems[2].Index == nil {
		t.Fatalf("expected element 2 to be a pure index, got %#v", elems[2])
	}
}

func TestLowerArrayType(t *testing.T) {
	prog := lower(t, `PROGRAM P VAR a : ARRAY[0..9] OF INT; END_VAR BEGIN END END_PROGRAM`)
	vs := prog.Programs[0].VarDecls[0].Vars[0]
	arr, ok := vs.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected ArrayType, got %#v", vs.Type)
	}
	if len(arr.Dimensions) != 1 {
		t.Fatalf("expected 1 dimension, got %d", len(arr.Dimensions))
	}
	elem, ok := arr.Element.(*ast.SimpleType)
	if !ok || elem.Name != "INT" {
		t.Fatalf("expected element type INT, got %#v", arr.Element)
	}
}

func TestLowerCaseWithMultiLabelAlternativeAndElse(t *testing.T) {
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
	prog := lower(t, src)
	pd := prog.Programs[0]
	caseStmt, ok := pd.Body[0].(*ast.Case)
	if !ok {
		t.Fatalf("expected Case, got %T", pd.Body[0])
	}
	if len(caseStmt.Alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(caseStmt.Alternatives))
	}
	first := caseStmt.Alternatives[0]
	if len(first.Labels) != 1 || len(first.Body) != 1 {
		t.Fatalf("expected the first alternative to have 1 label and 1 statement, got %#v", first)
	}
	second := caseStmt.Alternatives[1]
	if len(second.Labels) != 2 {
		t.Fatalf("expected the second alternative to have 2 labels, got %d: %#v", len(second.Labels), second.Labels)
	}
	for i, want := range []string{"2", "3"} {
		lit, ok := second.Labels[i].(*ast.Literal)
		if !ok || lit.Value != want {
			t.Fatalf("expected label %d to be %q, got %#v", i, want, second.Labels[i])
		}
	}
	if len(second.Body) != 1 {
		t.Fatalf("expected the second alternative to have 1 statement, got %d", len(second.Body))
	}
	if len(caseStmt.Else) != 1 {
		t.Fatalf("expected 1 else-statement, got %d", len(caseStmt.Else))
	}
}

func TestLowerEnumReference(t *testing.T) {
	src := `TYPE Weekday : (Monday, Tuesday, Wednesday) END_TYPE
PROGRAM P VAR d : Weekday; END_VAR BEGIN d := Weekday#Monday; END END_PROGRAM`
	prog := lower(t, src)
	if len(prog.Enums) != 1 || prog.Enums[0].Name != "Weekday" {
		t.Fatalf("expected 1 enum named Weekday, got %#v", prog.Enums)
	}
	if len(prog.Enums[0].Members) != 3 {
		t.Fatalf("expected 3 members, got %#v", prog.Enums[0].Members)
	}
	pd := prog.Programs[0]
	assign := pd.Body[0].(*ast.Assignment)
	ref, ok := assign.Value.(*ast.EnumReference)
	if !ok || ref.Qualified != "Weekday#Monday" {
		t.Fatalf("expected EnumReference Weekday#Monday, got %#v", assign.Value)
	}
}

// Package ast defines the closed, semantically normalized abstract syntax
// tree produced by the lowerer. Every node kind below is a fixed member of
// a sum type (Statement, Expression, TypeDecl); consumers are expected to
// switch exhaustively over these and treat an unhandled case as a bug.
package ast

import "github.com/hyperdrive-technology/core-sub001/internal/token"

// Program is the root of a lowered file.
type Program struct {
	Enums          []*EnumType
	Structs        []*StructType
	FunctionBlocks []*FunctionBlock
	Functions      []*FunctionDef
	Programs       []*ProgramDecl
	Range          token.Range
}

// VarKind identifies which VAR* section a VarDeclaration came from.
type VarKind int

const (
	VarKindLocal VarKind = iota
	VarKindInput
	VarKindOutput
	VarKindInOut
)

// VarDeclaration is one VAR[_INPUT|_OUTPUT|_IN_OUT] ... END_VAR section.
type VarDeclaration struct {
	Kind  VarKind
	Vars  []*VarSpec
	Range token.Range
}

// RangeConstraint is the optional `(low..high)` subrange attached to a
// variable's type.
type RangeConstraint struct {
	Low, High Expression
}

// VarSpec is a single declared variable within a VarDeclaration.
type VarSpec struct {
	Name            string
	Type            TypeDecl // nil for the bare `Ident := Expr` form
	RangeConstraint *RangeConstraint
	Init            Expression // nil if not initialized
	Range           token.Range
}

// TypeDecl is the sum of type forms a variable's declared type can take.
// The grammar this lowers from (VarLine's TypeDecl production) only ever
// yields a plain or timer type name, or an array type, so those are the
// two variants actually constructed; StructType/EnumType remain top-level
// sibling declarations of Program rather than embedded TypeDecl values
// (see the design-note decision recorded alongside the lowerer).
type TypeDecl interface {
	typeDeclNode()
	Rng() token.Range
}

// SimpleType names a type directly: a user type name, a built-in timer
// type (TON/TOF/TP), or a previously declared struct/enum name.
type SimpleType struct {
	Name            string
	RangeConstraint *RangeConstraint
	Range           token.Range
}

func (*SimpleType) typeDeclNode()         {}
func (t *SimpleType) Rng() token.Range    { return t.Range }

// ArrayDimension is one `low..high` bound of an ArrayType.
type ArrayDimension struct {
	Low, High Expression
}

// ArrayType is `ARRAY [ low..high ] OF element`.
type ArrayType struct {
	Dimensions []ArrayDimension
	Element    TypeDecl
	Range      token.Range
}

func (*ArrayType) typeDeclNode()      {}
func (t *ArrayType) Rng() token.Range { return t.Range }

// StructMember is one field of a StructType.
type StructMember struct {
	Name  string
	Type  TypeDecl
	Init  Expression // nil if not initialized
	Range token.Range
}

// StructType is a top-level `TYPE name : STRUCT ... END_STRUCT END_TYPE`
// declaration.
type StructType struct {
	Name    string
	Members []*StructMember
	Range   token.Range
}

// EnumType is a top-level `TYPE name : (A, B, C) END_TYPE` declaration.
type EnumType struct {
	Name    string
	Members []string
	Range   token.Range
}

// FunctionDef is a `FUNCTION name [: returnType] ... END_FUNCTION` POU.
type FunctionDef struct {
	Name        string
	ReturnType  TypeDecl // nil if undeclared (flagged by the validator)
	VarDecls    []*VarDeclaration
	InnerTypes  []*InnerTypeDecl
	Body        []Statement
	Range       token.Range
}

// InnerTypeDecl is a function-scoped constant alias:
// `TYPE name [: Type] [:= Expr] END_TYPE`.
type InnerTypeDecl struct {
	Name  string
	Type  TypeDecl // nil if omitted
	Init  Expression
	Range token.Range
}

// FunctionBlock is a `FUNCTION_BLOCK name ... END_FUNCTION_BLOCK` POU.
type FunctionBlock struct {
	Name     string
	VarDecls []*VarDeclaration
	Body     []Statement
	Range    token.Range
}

// ProgramDecl is a `PROGRAM name ... END_PROGRAM` POU.
type ProgramDecl struct {
	Name     string
	VarDecls []*VarDeclaration
	Body     []Statement
	Range    token.Range
}

// Statement is the sum of statement forms.
type Statement interface {
	statementNode()
	Rng() token.Range
}

// ElementAccess is one link of a flattened access chain (`a.b[c].d`):
// either a member name (the chain's head variable is also carried as a
// Member) or an index expression.
type ElementAccess struct {
	Member string     // "" if this element is a pure index
	Index  Expression // nil if this element is a pure member
}

// Assignment is `target := value`.
type Assignment struct {
	Target *VariableReference
	Value  Expression
	Range  token.Range
}

func (*Assignment) statementNode()      {}
func (s *Assignment) Rng() token.Range { return s.Range }

// ElsifClause is one `ELSIF cond THEN body` arm of an If.
type ElsifClause struct {
	Cond Expression
	Then []Statement
}

// If is `IF cond THEN then ELSIF ... ELSE else END_IF`.
type If struct {
	Cond   Expression
	Then   []Statement
	Elsifs []ElsifClause
	Else   []Statement
	Range  token.Range
}

func (*If) statementNode()      {}
func (s *If) Rng() token.Range { return s.Range }

// While is `WHILE cond DO body END_WHILE`.
type While struct {
	Cond  Expression
	Body  []Statement
	Range token.Range
}

func (*While) statementNode()      {}
func (s *While) Rng() token.Range { return s.Range }

// Repeat is `REPEAT body UNTIL cond END_REPEAT`.
type Repeat struct {
	Body  []Statement
	Until Expression
	Range token.Range
}

func (*Repeat) statementNode()      {}
func (s *Repeat) Rng() token.Range { return s.Range }

// For is `FOR var := from TO to [BY step] DO body END_FOR`.
type For struct {
	Var   string
	From  Expression
	To    Expression
	Step  Expression // nil if BY omitted
	Body  []Statement
	Range token.Range
}

func (*For) statementNode()      {}
func (s *For) Rng() token.Range { return s.Range }

// CaseAlternative is one labeled arm of a Case.
type CaseAlternative struct {
	Labels []Expression
	Body   []Statement
}

// Case is `CASE selector OF alt* ELSE else END_CASE`.
type Case struct {
	Selector     Expression
	Alternatives []CaseAlternative
	Else         []Statement
	Range        token.Range
}

func (*Case) statementNode()      {}
func (s *Case) Rng() token.Range { return s.Range }

// FunctionCallStmt is a call used as a statement (for side effect).
type FunctionCallStmt struct {
	Call  *Call
	Range token.Range
}

func (*FunctionCallStmt) statementNode()      {}
func (s *FunctionCallStmt) Rng() token.Range { return s.Range }

// Return is a bare `RETURN`.
type Return struct {
	Range token.Range
}

func (*Return) statementNode()      {}
func (s *Return) Rng() token.Range { return s.Range }

// TypeDeclarationStmt wraps an EnumType or StructType declared inline
// inside a POU body (the grammar's Body allows Statement|EnumType|StructType).
type TypeDeclarationStmt struct {
	Enum   *EnumType   // exactly one of Enum/Struct is set
	Struct *StructType
	Range  token.Range
}

func (*TypeDeclarationStmt) statementNode()      {}
func (s *TypeDeclarationStmt) Rng() token.Range { return s.Range }

// Expression is the sum of expression forms.
type Expression interface {
	expressionNode()
	Rng() token.Range
}

// LiteralKind classifies a Literal's underlying value.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralNumber
	LiteralString
	LiteralTime
	LiteralDirectAddress
)

// Literal is a literal value: a bool, number, string, time duration, or
// direct I/O address. Time literals and direct addresses are kept as
// their raw source image (e.g. "T#500ms") rather than parsed into a
// numeric duration, matching the grammar's treatment of them as opaque
// argument/operand values.
type Literal struct {
	Kind  LiteralKind
	Value string
	Range token.Range
}

func (*Literal) expressionNode()      {}
func (e *Literal) Rng() token.Range { return e.Range }

// VariableReference is a flattened access chain `a.b[c].d`.
type VariableReference struct {
	Elements []ElementAccess
	Range    token.Range
}

func (*VariableReference) expressionNode()      {}
func (e *VariableReference) Rng() token.Range { return e.Range }

// ArrayAccess is `array[index]` used as a value (as opposed to an
// assignment target, which goes through VariableReference).
type ArrayAccess struct {
	Array Expression
	Index Expression
	Range token.Range
}

func (*ArrayAccess) expressionNode()      {}
func (e *ArrayAccess) Rng() token.Range { return e.Range }

// Argument is one call argument: named (`Name := Value`) or positional
// (`Name == ""`).
type Argument struct {
	Name  string
	Value Expression
}

// Call is a function call or a dotted member access/call. Exactly one of
// FunctionName or (Object, Member) is populated, selecting the call
// form; when Member is set with no parentheses in source, Args is empty
// and the call is interpreted downstream as a member read (e.g. `t.Q`).
type Call struct {
	FunctionName string
	Object       string
	Member       string
	Args         []Argument
	Range        token.Range
}

// FunctionCallExpression is a Call used where a value is expected.
type FunctionCallExpression struct {
	Call  *Call
	Range token.Range
}

func (*FunctionCallExpression) expressionNode()      {}
func (e *FunctionCallExpression) Rng() token.Range { return e.Range }

// BinaryExpression is a strictly binary, left-associative operator
// application: the chain the parser builds for each precedence level is
// folded by the lowerer into a left-leaning tree of these.
type BinaryExpression struct {
	Left  Expression
	Op    string
	Right Expression
	Range token.Range
}

func (*BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) Rng() token.Range { return e.Range }

// UnaryExpression is a prefix `NOT` or `-` application.
type UnaryExpression struct {
	Op      string
	Operand Expression
	Range   token.Range
}

func (*UnaryExpression) expressionNode()      {}
func (e *UnaryExpression) Rng() token.Range { return e.Range }

// ParenExpression is an explicitly parenthesized expression, kept as its
// own node so AST consumers can tell it apart from its operand.
type ParenExpression struct {
	Inner Expression
	Range token.Range
}

func (*ParenExpression) expressionNode()      {}
func (e *ParenExpression) Rng() token.Range { return e.Range }

// EnumReference is a `Type#Member` qualified enum value reference.
type EnumReference struct {
	Qualified string
	Range     token.Range
}

func (*EnumReference) expressionNode()      {}
func (e *EnumReference) Rng() token.Range { return e.Range }

// ArrayInitializer is a `[v1, v2, ...]` variable initializer.
type ArrayInitializer struct {
	Elements []Expression
	Range    token.Range
}

func (*ArrayInitializer) expressionNode()      {}
func (e *ArrayInitializer) Rng() token.Range { return e.Range }

// Package cst defines the concrete syntax tree produced by the parser: a
// loose tree that preserves the grammar derivation, including redundant
// structure, and performs no semantic normalization.
package cst

import "github.com/hyperdrive-technology/core-sub001/internal/token"

// Kind labels a Node by the grammar rule that produced it. It is an open
// string enumeration (new rule kinds are added as constants below) rather
// than a closed Go type, matching the textual token-kind convention used
// throughout this module.
type Kind string

const (
	KindFile           Kind = "File"
	KindFunctionDef    Kind = "FunctionDef"
	KindFunctionBlock  Kind = "FunctionBlock"
	KindProgramDecl    Kind = "ProgramDecl"
	KindVarDecl        Kind = "VarDecl"
	KindVarLine        Kind = "VarLine"
	KindArrayType      Kind = "ArrayType"
	KindStructType     Kind = "StructType"
	KindStructMember   Kind = "StructMember"
	KindEnumType       Kind = "EnumType"
	KindInnerTypeDecl  Kind = "InnerTypeDecl"
	KindBody           Kind = "Body"
	KindIfStmt         Kind = "IfStmt"
	KindElsifClause    Kind = "ElsifClause"
	KindWhileStmt      Kind = "WhileStmt"
	KindRepeatStmt     Kind = "RepeatStmt"
	KindForStmt        Kind = "ForStmt"
	KindCaseStmt       Kind = "CaseStmt"
	KindCaseAlt        Kind = "CaseAlt"
	KindAssignStmt     Kind = "AssignStmt"
	KindCallStmt       Kind = "CallStmt"
	KindReturnStmt     Kind = "ReturnStmt"
	KindOrExpr         Kind = "OrExpr"
	KindAndExpr        Kind = "AndExpr"
	KindRelExpr        Kind = "RelExpr"
	KindAddExpr        Kind = "AddExpr"
	KindMulExpr        Kind = "MulExpr"
	KindUnaryExpr      Kind = "UnaryExpr"
	KindParenExpr      Kind = "ParenExpr"
	KindArrayAccess    Kind = "ArrayAccess"
	KindVariableAccess Kind = "VariableAccess"
	KindCallExpr       Kind = "CallExpr"
	KindMemberExpr     Kind = "MemberExpr"
	KindArgument       Kind = "Argument"
	KindArgList        Kind = "ArgList"
	KindArrayInit      Kind = "ArrayInit"
	KindLiteral        Kind = "Literal"
	KindTypeRef        Kind = "TypeRef"
	KindError          Kind = "Error"
)

// Element is one child of a Node: either a leaf Token or a nested Node,
// never both.
type Element struct {
	Tok  *token.Token
	Node *Node
}

// TokenElement wraps t as a leaf Element.
func TokenElement(t token.Token) Element { return Element{Tok: &t} }

// NodeElement wraps n as a nested Element.
func NodeElement(n *Node) Element { return Element{Node: n} }

// Range reports the source range this element spans.
func (e Element) Range() token.Range {
	if e.Tok != nil {
		return e.Tok.Range
	}
	if e.Node != nil {
		return e.Node.Range
	}
	return token.Range{}
}

// Node is an internal node of the concrete syntax tree: a rule Kind plus
// an ordered list of children.
type Node struct {
	Kind     Kind
	Range    token.Range
	Children []Element
}

// NewNode builds a Node from its children, computing Range as the cover
// of every child's range. An empty child list yields a zero Range, which
// the first AddToken/AddNode replaces with that child's range; a node
// that never gets a child (typically an Error node) needs its Range set
// explicitly.
func NewNode(kind Kind, children ...Element) *Node {
	n := &Node{Kind: kind, Children: children}
	if len(children) > 0 {
		r := children[0].Range()
		for _, c := range children[1:] {
			r = r.Cover(c.Range())
		}
		n.Range = r
	}
	return n
}

// AddToken appends a token child.
func (n *Node) AddToken(t token.Token) {
	if len(n.Children) == 0 {
		n.Range = t.Range
	} else {
		n.Range = n.Range.Cover(t.Range)
	}
	n.Children = append(n.Children, TokenElement(t))
}

// AddNode appends a nested node child, skipping nils so callers can pass
// through optional productions unconditionally.
func (n *Node) AddNode(c *Node) {
	if c == nil {
		return
	}
	if len(n.Children) == 0 {
		n.Range = c.Range
	} else {
		n.Range = n.Range.Cover(c.Range)
	}
	n.Children = append(n.Children, NodeElement(c))
}

// Tokens returns every direct token child, in order.
func (n *Node) Tokens() []token.Token {
	var out []token.Token
	for _, c := range n.Children {
		if c.Tok != nil {
			out = append(out, *c.Tok)
		}
	}
	return out
}

// Nodes returns every direct node child, in order.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// NodesOf returns every direct node child of the given Kind, in order.
func (n *Node) NodesOf(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// FirstOf returns the first direct node child of the given Kind, or nil.
func (n *Node) FirstOf(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node
		}
	}
	return nil
}

// Package lowerer walks a concrete syntax tree and builds the closed,
// semantically normalized abstract syntax tree consumed by the validator
// and the downstream runtime. Dispatch is table-driven: a handler table
// keyed by the CST rule-kind enumeration selects how each node lowers,
// rather than a type-switch spread across the package or a class
// hierarchy. A CST shape with no registered handler becomes an internal
// diagnostic — it is never silently dropped.
package lowerer

import (
	"github.com/hyperdrive-technology/core-sub001/internal/ast"
	"github.com/hyperdrive-technology/core-sub001/internal/cst"
	"github.com/hyperdrive-technology/core-sub001/internal/diagnostics"
	"github.com/hyperdrive-technology/core-sub001/internal/token"
)

type lowerer struct {
	diags *diagnostics.Bag
}

// Lower builds an ast.Program from a parsed File CST node.
func Lower(file *cst.Node) (*ast.Program, *diagnostics.Bag) {
	l := &lowerer{diags: diagnostics.NewBag()}
	prog := &ast.Program{Range: file.Range}
	for _, child := range file.Nodes() {
		h, ok := topHandlers[child.Kind]
		if !ok {
			if child.Kind == cst.KindError {
				continue
			}
			l.diags.Errorf(diagnostics.Lower, child.Range, "internal: unhandled top-level CST kind %s", child.Kind)
			continue
		}
		h(l, prog, child)
	}
	return prog, l.diags
}

// firstIdent returns the literal of the first direct IDENTIFIER-kind
// token child of n. Because nested declarations (VarDecl, body
// statements, etc.) are always added as Node children rather than Token
// children, this reliably finds a POU/type/variable's own name token
// regardless of whether earlier parse steps recovered from an error.
func firstIdent(n *cst.Node) string {
	for _, t := range n.Tokens() {
		if t.Kind == token.IDENTIFIER {
			return t.Literal
		}
	}
	return ""
}

func hasToken(n *cst.Node, k token.Kind) bool {
	for _, t := range n.Tokens() {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// --- Top-level dispatch table -------------------------------------------------

type topHandler func(*lowerer, *ast.Program, *cst.Node)

var topHandlers = map[cst.Kind]topHandler{
	cst.KindFunctionDef: func(l *lowerer, p *ast.Program, n *cst.Node) {
		p.Functions = append(p.Functions, l.lowerFunctionDef(n))
	},
	cst.KindFunctionBlock: func(l *lowerer, p *ast.Program, n *cst.Node) {
		p.FunctionBlocks = append(p.FunctionBlocks, l.lowerFunctionBlock(n))
	},
	cst.KindProgramDecl: func(l *lowerer, p *ast.Program, n *cst.Node) {
		p.Programs = append(p.Programs, l.lowerProgramDecl(n))
	},
	cst.KindStructType: func(l *lowerer, p *ast.Program, n *cst.Node) {
		p.Structs = append(p.Structs, l.lowerStructType(n))
	},
	cst.KindEnumType: func(l *lowerer, p *ast.Program, n *cst.Node) {
		p.Enums = append(p.Enums, l.lowerEnumType(n))
	},
}

// --- POUs ----------------------------------------------------------------

var pouDirectChildSkip = map[cst.Kind]bool{
	cst.KindVarDecl:       true,
	cst.KindInnerTypeDecl: true,
	cst.KindTypeRef:       true,
	cst.KindArrayType:     true,
}

func (l *lowerer) lowerFunctionDef(n *cst.Node) *ast.FunctionDef {
	fn := &ast.FunctionDef{Name: firstIdent(n), Range: n.Range}
	if rt := n.FirstOf(cst.KindTypeRef); rt != nil {
		fn.ReturnType = l.lowerTypeDecl(rt)
	} else if rt := n.FirstOf(cst.KindArrayType); rt != nil {
		fn.ReturnType = l.lowerTypeDecl(rt)
	}
	for _, vd := range n.NodesOf(cst.KindVarDecl) {
		fn.VarDecls = append(fn.VarDecls, l.lowerVarDecl(vd))
	}
	for _, it := range n.NodesOf(cst.KindInnerTypeDecl) {
		fn.InnerTypes = append(fn.InnerTypes, l.lowerInnerTypeDecl(it))
	}
	for _, c := range n.Nodes() {
		if pouDirectChildSkip[c.Kind] {
			continue
		}
		if st := l.lowerStatement(c); st != nil {
			fn.Body = append(fn.Body, st)
		}
	}
	return fn
}

func (l *lowerer) lowerFunctionBlock(n *cst.Node) *ast.FunctionBlock {
	fb := &ast.FunctionBlock{Name: firstIdent(n), Range: n.Range}
	for _, vd := range n.NodesOf(cst.KindVarDecl) {
		fb.VarDecls = append(fb.VarDecls, l.lowerVarDecl(vd))
	}
	if body := n.FirstOf(cst.KindBody); body != nil {
		fb.Body = l.lowerBodyNode(body)
	}
	return fb
}

func (l *lowerer) lowerProgramDecl(n *cst.Node) *ast.ProgramDecl {
	pd := &ast.ProgramDecl{Name: firstIdent(n), Range: n.Range}
	for _, vd := range n.NodesOf(cst.KindVarDecl) {
		pd.VarDecls = append(pd.VarDecls, l.lowerVarDecl(vd))
	}
	if body := n.FirstOf(cst.KindBody); body != nil {
		pd.Body = l.lowerBodyNode(body)
	}
	return pd
}

func (l *lowerer) lowerBodyNode(n *cst.Node) []ast.Statement {
	var out []ast.Statement
	for _, c := range n.Nodes() {
		if st := l.lowerStatement(c); st != nil {
			out = append(out, st)
		}
	}
	return out
}

// --- Variable declarations ------------------------------------------------

func (l *lowerer) lowerVarDecl(n *cst.Node) *ast.VarDeclaration {
	vd := &ast.VarDeclaration{Range: n.Range}
	if toks := n.Tokens(); len(toks) > 0 {
		switch toks[0].Kind {
		case token.VAR_INPUT:
			vd.Kind = ast.VarKindInput
		case token.VAR_OUTPUT:
			vd.Kind = ast.VarKindOutput
		case token.VAR_IN_OUT:
			vd.Kind = ast.VarKindInOut
		default:
			vd.Kind = ast.VarKindLocal
		}
	}
	for _, vl := range n.NodesOf(cst.KindVarLine) {
		vd.Vars = append(vd.Vars, l.lowerVarLine(vl))
	}
	return vd
}

func (l *lowerer) lowerVarLine(n *cst.Node) *ast.VarSpec {
	spec := &ast.VarSpec{Name: firstIdent(n), Range: n.Range}

	if hasToken(n, token.ASSIGN) && !hasToken(n, token.COLON) {
		// bare `Ident := Expr` form
		if nodes := n.Nodes(); len(nodes) > 0 {
			spec.Init = l.lowerOrExpr(nodes[0])
		}
		return spec
	}

	nodes := n.Nodes()
	idx := 0
	if len(nodes) > idx {
		spec.Type = l.lowerTypeDecl(nodes[idx])
		idx++
	}
	if hasToken(n, token.LPAREN) && len(nodes) >= idx+2 {
		spec.RangeConstraint = &ast.RangeConstraint{
			Low:  l.lowerOrExpr(nodes[idx]),
			High: l.lowerOrExpr(nodes[idx+1]),
		}
		idx += 2
	}
	if len(nodes) > idx {
		spec.Init = l.lowerArrayInit(nodes[idx])
	}
	return spec
}

func (l *lowerer) lowerArrayInit(n *cst.Node) ast.Expression {
	if hasToken(n, token.LBRACKET) {
		elems := make([]ast.Expression, 0, len(n.Nodes()))
		for _, c := range n.Nodes() {
			elems = append(elems, l.lowerOrExpr(c))
		}
		return &ast.ArrayInitializer{Elements: elems, Range: n.Range}
	}
	if nodes := n.Nodes(); len(nodes) > 0 {
		return l.lowerOrExpr(nodes[0])
	}
	return nil
}

// --- Types -----------------------------------------------------------------

func (l *lowerer) lowerTypeDecl(n *cst.Node) ast.TypeDecl {
	switch n.Kind {
	case cst.KindTypeRef:
		toks := n.Tokens()
		name := ""
		if len(toks) > 0 {
			name = toks[0].Literal
		}
		return &ast.SimpleType{Name: name, Range: n.Range}
	case cst.KindArrayType:
		nodes := n.Nodes()
		if len(nodes) < 3 {
			l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed array type")
			return &ast.SimpleType{Name: "<error>", Range: n.Range}
		}
		low := l.lowerOrExpr(nodes[0])
		high := l.lowerOrExpr(nodes[1])
		element := l.lowerTypeDecl(nodes[2])
		return &ast.ArrayType{
			Dimensions: []ast.ArrayDimension{{Low: low, High: high}},
			Element:    element,
			Range:      n.Range,
		}
	default:
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: unhandled type CST kind %s", n.Kind)
		return &ast.SimpleType{Name: "<error>", Range: n.Range}
	}
}

func (l *lowerer) lowerStructType(n *cst.Node) *ast.StructType {
	st := &ast.StructType{Name: firstIdent(n), Range: n.Range}
	for _, m := range n.NodesOf(cst.KindStructMember) {
		st.Members = append(st.Members, l.lowerStructMember(m))
	}
	return st
}

func (l *lowerer) lowerStructMember(n *cst.Node) *ast.StructMember {
	m := &ast.StructMember{Name: firstIdent(n), Range: n.Range}
	nodes := n.Nodes()
	if len(nodes) > 0 {
		m.Type = l.lowerTypeDecl(nodes[0])
	}
	if len(nodes) > 1 {
		m.Init = l.lowerOrExpr(nodes[1])
	}
	return m
}

func (l *lowerer) lowerEnumType(n *cst.Node) *ast.EnumType {
	e := &ast.EnumType{Range: n.Range}
	var idents []string
	for _, t := range n.Tokens() {
		if t.Kind == token.IDENTIFIER {
			idents = append(idents, t.Literal)
		}
	}
	if len(idents) > 0 {
		e.Name = idents[0]
		e.Members = idents[1:]
	}
	return e
}

func (l *lowerer) lowerInnerTypeDecl(n *cst.Node) *ast.InnerTypeDecl {
	it := &ast.InnerTypeDecl{Name: firstIdent(n), Range: n.Range}
	nodes := n.Nodes()
	idx := 0
	if hasToken(n, token.COLON) && len(nodes) > idx {
		it.Type = l.lowerTypeDecl(nodes[idx])
		idx++
	}
	if hasToken(n, token.ASSIGN) && len(nodes) > idx {
		it.Init = l.lowerOrExpr(nodes[idx])
	}
	return it
}

// --- Statements --------------------------------------------------------------

type stmtHandler func(*lowerer, *cst.Node) ast.Statement

var statementHandlers map[cst.Kind]stmtHandler

func init() {
	statementHandlers = map[cst.Kind]stmtHandler{
		cst.KindIfStmt:     (*lowerer).lowerIfStmt,
		cst.KindWhileStmt:  (*lowerer).lowerWhileStmt,
		cst.KindRepeatStmt: (*lowerer).lowerRepeatStmt,
		cst.KindForStmt:    (*lowerer).lowerForStmt,
		cst.KindCaseStmt:   (*lowerer).lowerCaseStmt,
		cst.KindAssignStmt: (*lowerer).lowerAssignStmt,
		cst.KindCallStmt:   (*lowerer).lowerCallStmt,
		cst.KindReturnStmt: func(l *lowerer, n *cst.Node) ast.Statement {
			return &ast.Return{Range: n.Range}
		},
		cst.KindStructType: func(l *lowerer, n *cst.Node) ast.Statement {
			return &ast.TypeDeclarationStmt{Struct: l.lowerStructType(n), Range: n.Range}
		},
		cst.KindEnumType: func(l *lowerer, n *cst.Node) ast.Statement {
			return &ast.TypeDeclarationStmt{Enum: l.lowerEnumType(n), Range: n.Range}
		},
	}
}

func (l *lowerer) lowerStatement(n *cst.Node) ast.Statement {
	if n.Kind == cst.KindError {
		return nil
	}
	h, ok := statementHandlers[n.Kind]
	if !ok {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: unhandled statement CST kind %s", n.Kind)
		return nil
	}
	return h(l, n)
}

func (l *lowerer) lowerAssignStmt(n *cst.Node) ast.Statement {
	nodes := n.Nodes()
	if len(nodes) < 2 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed assignment")
		return nil
	}
	return &ast.Assignment{
		Target: l.flattenAccessChain(nodes[0]),
		Value:  l.lowerOrExpr(nodes[1]),
		Range:  n.Range,
	}
}

func (l *lowerer) lowerCallStmt(n *cst.Node) ast.Statement {
	nodes := n.Nodes()
	if len(nodes) < 1 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed call statement")
		return nil
	}
	expr := l.lowerExprNode(nodes[0])
	if call, ok := expr.(*ast.FunctionCallExpression); ok {
		return &ast.FunctionCallStmt{Call: call.Call, Range: n.Range}
	}
	l.diags.Warnf(diagnostics.Lower, n.Range, "expression statement has no effect")
	return &ast.FunctionCallStmt{Call: &ast.Call{Range: n.Range}, Range: n.Range}
}

// lowerIfStmt extracts ELSIF and ELSE branches explicitly by comparing
// source offsets, rather than relying on their structural position alone:
// the CST mixes then-statements, ElsifClause nodes, and else-statements
// as flat siblings, so branch membership is recovered from where each
// child falls relative to the first ElsifClause and the ELSE token.
func (l *lowerer) lowerIfStmt(n *cst.Node) ast.Statement {
	nodes := n.Nodes()
	if len(nodes) < 1 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed if statement")
		return nil
	}
	cond := l.lowerOrExpr(nodes[0])

	elseOffset := -1
	for _, t := range n.Tokens() {
		if t.Kind == token.ELSE {
			elseOffset = t.Range.Start.Offset
		}
	}
	firstElsifOffset := -1
	for _, c := range nodes[1:] {
		if c.Kind == cst.KindElsifClause {
			firstElsifOffset = c.Range.Start.Offset
			break
		}
	}
	thenEnd := elseOffset
	if firstElsifOffset != -1 && (thenEnd == -1 || firstElsifOffset < thenEnd) {
		thenEnd = firstElsifOffset
	}

	ifStmt := &ast.If{Cond: cond, Range: n.Range}
	for _, c := range nodes[1:] {
		switch {
		case c.Kind == cst.KindElsifClause:
			ifStmt.Elsifs = append(ifStmt.Elsifs, l.lowerElsifClause(c))
		case elseOffset != -1 && c.Range.Start.Offset > elseOffset:
			if st := l.lowerStatement(c); st != nil {
				ifStmt.Else = append(ifStmt.Else, st)
			}
		case thenEnd == -1 || c.Range.Start.Offset < thenEnd:
			if st := l.lowerStatement(c); st != nil {
				ifStmt.Then = append(ifStmt.Then, st)
			}
		default:
			if st := l.lowerStatement(c); st != nil {
				ifStmt.Then = append(ifStmt.Then, st)
			}
		}
	}
	return ifStmt
}

func (l *lowerer) lowerElsifClause(n *cst.Node) ast.ElsifClause {
	nodes := n.Nodes()
	clause := ast.ElsifClause{}
	if len(nodes) > 0 {
		clause.Cond = l.lowerOrExpr(nodes[0])
	}
	for _, c := range nodes[1:] {
		if st := l.lowerStatement(c); st != nil {
			clause.Then = append(clause.Then, st)
		}
	}
	return clause
}

func (l *lowerer) lowerWhileStmt(n *cst.Node) ast.Statement {
	nodes := n.Nodes()
	w := &ast.While{Range: n.Range}
	if len(nodes) > 0 {
		w.Cond = l.lowerOrExpr(nodes[0])
	}
	for _, c := range nodes[1:] {
		if st := l.lowerStatement(c); st != nil {
			w.Body = append(w.Body, st)
		}
	}
	return w
}

func (l *lowerer) lowerRepeatStmt(n *cst.Node) ast.Statement {
	nodes := n.Nodes()
	r := &ast.Repeat{Range: n.Range}
	if len(nodes) == 0 {
		return r
	}
	for _, c := range nodes[:len(nodes)-1] {
		if st := l.lowerStatement(c); st != nil {
			r.Body = append(r.Body, st)
		}
	}
	r.Until = l.lowerOrExpr(nodes[len(nodes)-1])
	return r
}

func (l *lowerer) lowerForStmt(n *cst.Node) ast.Statement {
	f := &ast.For{Var: firstIdent(n), Range: n.Range}
	nodes := n.Nodes()
	if len(nodes) < 2 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed for statement")
		return f
	}
	f.From = l.lowerOrExpr(nodes[0])
	f.To = l.lowerOrExpr(nodes[1])
	idx := 2
	if hasToken(n, token.BY) && len(nodes) > idx {
		f.Step = l.lowerOrExpr(nodes[idx])
		idx++
	}
	for _, c := range nodes[idx:] {
		if st := l.lowerStatement(c); st != nil {
			f.Body = append(f.Body, st)
		}
	}
	return f
}

func (l *lowerer) lowerCaseStmt(n *cst.Node) ast.Statement {
	nodes := n.Nodes()
	c := &ast.Case{Range: n.Range}
	if len(nodes) == 0 {
		return c
	}
	c.Selector = l.lowerOrExpr(nodes[0])
	for _, altNode := range nodes[1:] {
		if altNode.Kind != cst.KindCaseAlt {
			continue
		}
		altToks := altNode.Tokens()
		isElse := len(altToks) > 0 && altToks[0].Kind == token.ELSE
		if isElse {
			for _, s := range altNode.Nodes() {
				if st := l.lowerStatement(s); st != nil {
					c.Else = append(c.Else, st)
				}
			}
			continue
		}
		altNodes := altNode.Nodes()
		if len(altNodes) == 0 {
			continue
		}
		// A CaseAlt carries one label node per comma in its token list
		// plus one (see parseCaseAlt), followed by its statement nodes.
		numLabels := 1
		for _, t := range altNode.Tokens() {
			if t.Kind == token.COMMA {
				numLabels++
			}
		}
		if numLabels > len(altNodes) {
			numLabels = len(altNodes)
		}
		alt := ast.CaseAlternative{}
		for _, labelNode := range altNodes[:numLabels] {
			alt.Labels = append(alt.Labels, l.lowerOrExpr(labelNode))
		}
		for _, s := range altNodes[numLabels:] {
			if st := l.lowerStatement(s); st != nil {
				alt.Body = append(alt.Body, st)
			}
		}
		c.Alternatives = append(c.Alternatives, alt)
	}
	return c
}

// --- Access chains -----------------------------------------------------------

// flattenAccessChain lowers an assignment target designator into a
// VariableReference whose Elements list the member/array-index links of
// the chain in source order (see the lowerer's assignment-target
// responsibility: flattening `a.b[c].d`).
func (l *lowerer) flattenAccessChain(n *cst.Node) *ast.VariableReference {
	var elems []ast.ElementAccess
	var walk func(*cst.Node)
	walk = func(n *cst.Node) {
		switch n.Kind {
		case cst.KindVariableAccess:
			if toks := n.Tokens(); len(toks) > 0 {
				elems = append(elems, ast.ElementAccess{Member: toks[0].Literal})
			}
		case cst.KindMemberExpr:
			nodes := n.Nodes()
			if len(nodes) > 0 {
				walk(nodes[0])
			}
			toks := n.Tokens()
			if len(toks) > 0 {
				elems = append(elems, ast.ElementAccess{Member: toks[len(toks)-1].Literal})
			}
		case cst.KindArrayAccess:
			nodes := n.Nodes()
			if len(nodes) > 0 {
				walk(nodes[0])
			}
			if len(nodes) > 1 {
				elems = append(elems, ast.ElementAccess{Index: l.lowerOrExpr(nodes[1])})
			}
		default:
			l.diags.Errorf(diagnostics.Lower, n.Range, "internal: unexpected CST kind %s in assignment target", n.Kind)
		}
	}
	walk(n)
	return &ast.VariableReference{Elements: elems, Range: n.Range}
}

// --- Expressions ---------------------------------------------------------

// foldLeftAssoc folds a flat `operand (op operand)*` CST chain into a
// strictly binary, left-associative tree: this is the lowerer's
// expression-normalization responsibility, implemented once and shared
// by every precedence level (or/and/rel/add/mul all have this shape).
func (l *lowerer) foldLeftAssoc(n *cst.Node, lowerOperand func(*cst.Node) ast.Expression) ast.Expression {
	var left ast.Expression
	var pendingOp string
	for _, c := range n.Children {
		if c.Tok != nil {
			pendingOp = string(c.Tok.Kind)
			continue
		}
		operand := lowerOperand(c.Node)
		if left == nil {
			left = operand
			continue
		}
		left = &ast.BinaryExpression{Left: left, Op: pendingOp, Right: operand, Range: left.Rng().Cover(operand.Rng())}
	}
	if left == nil {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: empty expression chain %s", n.Kind)
		return &ast.Literal{Kind: ast.LiteralString, Value: "", Range: n.Range}
	}
	return left
}

func (l *lowerer) lowerOrExpr(n *cst.Node) ast.Expression {
	return l.foldLeftAssoc(n, l.lowerAndExpr)
}
func (l *lowerer) lowerAndExpr(n *cst.Node) ast.Expression {
	return l.foldLeftAssoc(n, l.lowerRelExpr)
}
func (l *lowerer) lowerRelExpr(n *cst.Node) ast.Expression {
	return l.foldLeftAssoc(n, l.lowerAddExpr)
}
func (l *lowerer) lowerAddExpr(n *cst.Node) ast.Expression {
	return l.foldLeftAssoc(n, l.lowerMulExpr)
}
func (l *lowerer) lowerMulExpr(n *cst.Node) ast.Expression {
	return l.foldLeftAssoc(n, l.lowerExprNode)
}

type exprHandler func(*lowerer, *cst.Node) ast.Expression

var exprHandlers map[cst.Kind]exprHandler

func init() {
	exprHandlers = map[cst.Kind]exprHandler{
		cst.KindUnaryExpr:      (*lowerer).lowerUnaryExprNode,
		cst.KindParenExpr:      (*lowerer).lowerParenExprNode,
		cst.KindLiteral:        (*lowerer).lowerLiteralNode,
		cst.KindVariableAccess: (*lowerer).lowerVariableAccessNode,
		cst.KindCallExpr:       (*lowerer).lowerCallExprNode,
		cst.KindMemberExpr:     (*lowerer).lowerMemberExprNode,
		cst.KindArrayAccess:    (*lowerer).lowerArrayAccessNode,
	}
}

// lowerExprNode is the table-driven dispatch point for primary-level
// expressions (see the package doc comment).
func (l *lowerer) lowerExprNode(n *cst.Node) ast.Expression {
	h, ok := exprHandlers[n.Kind]
	if !ok {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: unhandled expression CST kind %s", n.Kind)
		return &ast.Literal{Kind: ast.LiteralString, Value: "", Range: n.Range}
	}
	return h(l, n)
}

func (l *lowerer) lowerUnaryExprNode(n *cst.Node) ast.Expression {
	toks := n.Tokens()
	nodes := n.Nodes()
	if len(toks) == 0 || len(nodes) == 0 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed unary expression")
		return &ast.Literal{Kind: ast.LiteralString, Value: "", Range: n.Range}
	}
	return &ast.UnaryExpression{Op: string(toks[0].Kind), Operand: l.lowerExprNode(nodes[0]), Range: n.Range}
}

func (l *lowerer) lowerParenExprNode(n *cst.Node) ast.Expression {
	nodes := n.Nodes()
	if len(nodes) == 0 {
		return &ast.ParenExpression{Range: n.Range}
	}
	return &ast.ParenExpression{Inner: l.lowerOrExpr(nodes[0]), Range: n.Range}
}

func (l *lowerer) lowerLiteralNode(n *cst.Node) ast.Expression {
	toks := n.Tokens()
	if len(toks) == 0 {
		return &ast.Literal{Range: n.Range}
	}
	tok := toks[0]
	switch tok.Kind {
	case token.ENUM_REFERENCE:
		return &ast.EnumReference{Qualified: tok.Literal, Range: n.Range}
	case token.TRUE:
		return &ast.Literal{Kind: ast.LiteralBool, Value: "true", Range: n.Range}
	case token.FALSE:
		return &ast.Literal{Kind: ast.LiteralBool, Value: "false", Range: n.Range}
	case token.TIME_LITERAL:
		return &ast.Literal{Kind: ast.LiteralTime, Value: tok.Literal, Range: n.Range}
	case token.DIRECT_ADDRESS:
		return &ast.Literal{Kind: ast.LiteralDirectAddress, Value: tok.Literal, Range: n.Range}
	case token.STRING:
		return &ast.Literal{Kind: ast.LiteralString, Value: tok.Literal, Range: n.Range}
	default:
		return &ast.Literal{Kind: ast.LiteralNumber, Value: tok.Literal, Range: n.Range}
	}
}

func (l *lowerer) lowerVariableAccessNode(n *cst.Node) ast.Expression {
	toks := n.Tokens()
	name := ""
	if len(toks) > 0 {
		name = toks[0].Literal
	}
	return &ast.VariableReference{Elements: []ast.ElementAccess{{Member: name}}, Range: n.Range}
}

func (l *lowerer) lowerArrayAccessNode(n *cst.Node) ast.Expression {
	nodes := n.Nodes()
	if len(nodes) < 2 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed array access")
		return &ast.Literal{Kind: ast.LiteralString, Value: "", Range: n.Range}
	}
	return &ast.ArrayAccess{Array: l.lowerExprNode(nodes[0]), Index: l.lowerOrExpr(nodes[1]), Range: n.Range}
}

// lowerCallExprNode lowers either a bare `name(args)` call or a dotted
// `object.member(args)` call: both share the CallExpr CST shape, and are
// told apart by whether a '.' token is present among its direct tokens.
func (l *lowerer) lowerCallExprNode(n *cst.Node) ast.Expression {
	nodes := n.Nodes()
	if len(nodes) < 2 {
		l.diags.Errorf(diagnostics.Lower, n.Range, "internal: malformed call expression")
		return &ast.Literal{Kind: ast.LiteralString, Value: "", Range: n.Range}
	}
	base, argList := nodes[0], nodes[1]
	call := &ast.Call{Args: l.lowerArgList(argList), Range: n.Range}
	if hasToken(n, token.DOT) {
		toks := n.Tokens()
		call.Member = toks[len(toks)-1].Literal
		if base.Kind == cst.KindVariableAccess {
			if bt := base.Tokens(); len(bt) > 0 {
				call.Object = bt[0].Literal
			}
		} else {
			l.diags.Errorf(diagnostics.Lower, base.Range, "internal: unsupported nested call base")
		}
	} else if base.Kind == cst.KindVariableAccess {
		if bt := base.Tokens(); len(bt) > 0 {
			call.FunctionName = bt[0].Literal
		}
	}
	return &ast.FunctionCallExpression{Call: call, Range: n.Range}
}

// lowerMemberExprNode lowers a dotted member read without call
// parentheses (`t.Q`) into a FunctionCallExpression with no arguments,
// matching how the runtime interprets a parenthesis-less member access.
func (l *lowerer) lowerMemberExprNode(n *cst.Node) ast.Expression {
	nodes := n.Nodes()
	toks := n.Tokens()
	call := &ast.Call{Range: n.Range}
	if len(nodes) > 0 && nodes[0].Kind == cst.KindVariableAccess {
		if bt := nodes[0].Tokens(); len(bt) > 0 {
			call.Object = bt[0].Literal
		}
	} else if len(nodes) > 0 {
		l.diags.Errorf(diagnostics.Lower, nodes[0].Range, "internal: unsupported nested member base")
	}
	if len(toks) > 0 {
		call.Member = toks[len(toks)-1].Literal
	}
	return &ast.FunctionCallExpression{Call: call, Range: n.Range}
}

func (l *lowerer) lowerArgList(n *cst.Node) []ast.Argument {
	var args []ast.Argument
	for _, a := range n.Nodes() {
		args = append(args, l.lowerArgument(a))
	}
	return args
}

func (l *lowerer) lowerArgument(n *cst.Node) ast.Argument {
	toks := n.Tokens()
	nodes := n.Nodes()
	arg := ast.Argument{}
	if len(toks) >= 2 && toks[1].Kind == token.ASSIGN {
		arg.Name = toks[0].Literal
	}
	if len(nodes) > 0 {
		arg.Value = l.lowerOrExpr(nodes[0])
	}
	return arg
}

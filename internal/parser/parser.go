// Package parser builds a concrete syntax tree from a token stream using
// an LL(k) grammar with ordered alternatives: no production backtracks
// across arbitrary depth, and the parser recovers at statement and
// declaration boundaries instead of aborting on the first error.
package parser

import (
	"github.com/hyperdrive-technology/core-sub001/internal/cst"
	"github.com/hyperdrive-technology/core-sub001/internal/diagnostics"
	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
	"github.com/hyperdrive-technology/core-sub001/internal/token"
)

// Parser consumes tokens from a Lexer and produces a cst.Node tree.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	peek token.Token

	diags *diagnostics.Bag
}

// New returns a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex, diags: diagnostics.NewBag()}
	p.cur = lex.NextToken()
	p.peek = lex.NextToken()
	return p
}

// Diagnostics returns every lexical and syntactic diagnostic raised so far.
func (p *Parser) Diagnostics() *diagnostics.Bag {
	all := diagnostics.NewBag()
	all.Merge(p.lex.Diagnostics(), "")
	all.Merge(p.diags, "")
	return all
}

func (p *Parser) advance() token.Token {
	tok := p.cur
	p.cur = p.peek
	p.peek = p.lex.NextToken()
	return tok
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expect consumes the current token if it matches k, else emits a
// diagnostic and returns the current token unconsumed (so callers that
// want to recover can decide what to do next).
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.curIs(k) {
		return p.advance(), true
	}
	p.diags.Errorf(diagnostics.Parse, p.cur.Range, "expected %s, got %q (%s)", k, p.cur.Literal, p.cur.Kind)
	return p.cur, false
}

var recoveryKeywords = map[token.Kind]bool{
	token.FUNCTION:           true,
	token.FUNCTION_BLOCK:     true,
	token.PROGRAM:            true,
	token.TYPE:               true,
	token.END:                true,
	token.END_IF:             true,
	token.END_WHILE:          true,
	token.END_FOR:            true,
	token.END_REPEAT:         true,
	token.END_CASE:           true,
	token.END_VAR:            true,
	token.END_STRUCT:         true,
	token.END_TYPE:           true,
	token.END_FUNCTION:       true,
	token.END_FUNCTION_BLOCK: true,
	token.END_PROGRAM:        true,
}

// synchronize consumes tokens up to and including the next ';', or up to
// (but not including) the next recovery keyword or EOF.
func (p *Parser) synchronize() {
	for {
		if p.curIs(token.EOF) {
			return
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		if recoveryKeywords[p.cur.Kind] {
			return
		}
		p.advance()
	}
}

func (p *Parser) errorNode(msg string) *cst.Node {
	start := p.cur.Range
	p.diags.Errorf(diagnostics.Parse, start, "%s", msg)
	n := &cst.Node{Kind: cst.KindError, Range: start}
	p.synchronize()
	return n
}

// optionalSemicolon consumes a trailing ';' if present; it is optional
// after every top-level declaration and most statements.
func (p *Parser) optionalSemicolon(n *cst.Node) {
	if p.curIs(token.SEMICOLON) {
		n.AddToken(p.advance())
	}
}

// ParseFile parses an entire source file into a File CST node.
func (p *Parser) ParseFile() *cst.Node {
	file := cst.NewNode(cst.KindFile)
	for !p.curIs(token.EOF) {
		before := p.cur
		var child *cst.Node
		switch p.cur.Kind {
		case token.FUNCTION:
			child = p.parseFunctionDef()
		case token.FUNCTION_BLOCK:
			child = p.parseFunctionBlock()
		case token.PROGRAM:
			child = p.parseProgramDecl()
		case token.TYPE:
			child = p.parseStructOrEnumDecl()
		default:
			child = p.errorNode("expected a top-level declaration (FUNCTION, FUNCTION_BLOCK, PROGRAM, or TYPE)")
		}
		file.AddNode(child)
		p.optionalSemicolon(file)
		if p.cur == before {
			// Guard against an accidental infinite loop: always make
			// progress even if a production consumed nothing.
			p.advance()
		}
	}
	return file
}

// parseVarSections consumes zero or more VAR*/TYPE(inner) sections,
// interleaved in any order, appending each to dst.
func (p *Parser) parseVarSections(dst *cst.Node) {
	for {
		switch p.cur.Kind {
		case token.VAR, token.VAR_INPUT, token.VAR_OUTPUT, token.VAR_IN_OUT:
			dst.AddNode(p.parseVarDecl())
		case token.TYPE:
			dst.AddNode(p.parseInnerTypeDecl())
		default:
			return
		}
	}
}

func (p *Parser) parseVarDecl() *cst.Node {
	n := cst.NewNode(cst.KindVarDecl)
	n.AddToken(p.advance()) // VAR | VAR_INPUT | VAR_OUTPUT | VAR_IN_OUT
	for p.curIs(token.IDENTIFIER) {
		n.AddNode(p.parseVarLine())
	}
	if tok, ok := p.expect(token.END_VAR); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseVarLine() *cst.Node {
	line := cst.NewNode(cst.KindVarLine)
	nameTok := p.advance()
	line.AddToken(nameTok)

	if p.curIs(token.ASSIGN) {
		line.AddToken(p.advance())
		line.AddNode(p.parseOrExpr())
		p.optionalSemicolon(line)
		return line
	}

	if tok, ok := p.expect(token.COLON); ok {
		line.AddToken(tok)
	}
	line.AddNode(p.parseTypeDecl())

	if p.curIs(token.LPAREN) {
		line.AddToken(p.advance())
		line.AddNode(p.parseOrExpr())
		if tok, ok := p.expect(token.DOTDOT); ok {
			line.AddToken(tok)
		}
		line.AddNode(p.parseOrExpr())
		if tok, ok := p.expect(token.RPAREN); ok {
			line.AddToken(tok)
		}
	}

	if p.curIs(token.ASSIGN) {
		line.AddToken(p.advance())
		line.AddNode(p.parseArrayInit())
	}

	p.optionalSemicolon(line)
	return line
}

func (p *Parser) parseArrayInit() *cst.Node {
	n := cst.NewNode(cst.KindArrayInit)
	if p.curIs(token.LBRACKET) {
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
		for p.curIs(token.COMMA) {
			n.AddToken(p.advance())
			n.AddNode(p.parseOrExpr())
		}
		if tok, ok := p.expect(token.RBRACKET); ok {
			n.AddToken(tok)
		}
		return n
	}
	n.AddNode(p.parseOrExpr())
	return n
}

// parseTypeDecl parses TypeDecl ::= Ident | TON | TOF | TP | ArrayType.
func (p *Parser) parseTypeDecl() *cst.Node {
	if p.curIs(token.ARRAY) {
		return p.parseArrayType()
	}
	if p.curIs(token.IDENTIFIER) || token.IsTimerType(p.cur.Kind) {
		n := cst.NewNode(cst.KindTypeRef)
		n.AddToken(p.advance())
		return n
	}
	return p.errorNode("expected a type name, a timer type, or ARRAY")
}

func (p *Parser) parseArrayType() *cst.Node {
	n := cst.NewNode(cst.KindArrayType)
	n.AddToken(p.advance()) // ARRAY
	if tok, ok := p.expect(token.LBRACKET); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.DOTDOT); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.RBRACKET); ok {
		n.AddToken(tok)
	}
	if tok, ok := p.expect(token.OF); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseTypeDecl())
	return n
}

// parseStructOrEnumDecl parses the top-level `TYPE name : ...` form
// (struct or enum). Named distinctly from parseTypeDecl (the
// Ident|TON|TOF|TP|ArrayType production used inside VarLine) to avoid
// confusing the two TypeDecl uses in the grammar.
func (p *Parser) parseStructOrEnumDecl() *cst.Node {
	typeTok := p.advance() // TYPE
	nameTok, _ := p.expect(token.IDENTIFIER)
	colonTok, _ := p.expect(token.COLON)

	if p.curIs(token.STRUCT) {
		n := cst.NewNode(cst.KindStructType)
		n.AddToken(typeTok)
		n.AddToken(nameTok)
		n.AddToken(colonTok)
		n.AddToken(p.advance()) // STRUCT
		for p.curIs(token.IDENTIFIER) {
			n.AddNode(p.parseStructMember())
		}
		if tok, ok := p.expect(token.END_STRUCT); ok {
			n.AddToken(tok)
		}
		p.optionalSemicolon(n)
		if tok, ok := p.expect(token.END_TYPE); ok {
			n.AddToken(tok)
		}
		return n
	}

	if p.curIs(token.LPAREN) {
		n := cst.NewNode(cst.KindEnumType)
		n.AddToken(typeTok)
		n.AddToken(nameTok)
		n.AddToken(colonTok)
		n.AddToken(p.advance()) // '('
		if memberTok, ok := p.expect(token.IDENTIFIER); ok {
			n.AddToken(memberTok)
		}
		for p.curIs(token.COMMA) {
			n.AddToken(p.advance())
			if memberTok, ok := p.expect(token.IDENTIFIER); ok {
				n.AddToken(memberTok)
			}
		}
		if tok, ok := p.expect(token.RPAREN); ok {
			n.AddToken(tok)
		}
		p.optionalSemicolon(n)
		if tok, ok := p.expect(token.END_TYPE); ok {
			n.AddToken(tok)
		}
		return n
	}

	return p.errorNode("expected STRUCT or '(' after TYPE name :")
}

func (p *Parser) parseStructMember() *cst.Node {
	n := cst.NewNode(cst.KindStructMember)
	n.AddToken(p.advance()) // Ident
	if tok, ok := p.expect(token.COLON); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseTypeDecl())
	if p.curIs(token.ASSIGN) {
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
	}
	if tok, ok := p.expect(token.SEMICOLON); ok {
		n.AddToken(tok)
	}
	return n
}

// parseInnerTypeDecl parses the function-scoped constant-alias form:
// TYPE name [: Type] [:= Expr] END_TYPE.
func (p *Parser) parseInnerTypeDecl() *cst.Node {
	n := cst.NewNode(cst.KindInnerTypeDecl)
	n.AddToken(p.advance()) // TYPE
	if nameTok, ok := p.expect(token.IDENTIFIER); ok {
		n.AddToken(nameTok)
	}
	if p.curIs(token.COLON) {
		n.AddToken(p.advance())
		n.AddNode(p.parseTypeDecl())
	}
	if p.curIs(token.ASSIGN) {
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
	}
	if tok, ok := p.expect(token.END_TYPE); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseFunctionDef() *cst.Node {
	n := cst.NewNode(cst.KindFunctionDef)
	n.AddToken(p.advance()) // FUNCTION
	if nameTok, ok := p.expect(token.IDENTIFIER); ok {
		n.AddToken(nameTok)
	}
	if p.curIs(token.COLON) {
		n.AddToken(p.advance())
		n.AddNode(p.parseTypeDecl())
	}
	p.parseVarSections(n)
	for !p.curIs(token.END_FUNCTION) && !p.curIs(token.EOF) {
		before := p.cur
		n.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	if tok, ok := p.expect(token.END_FUNCTION); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseFunctionBlock() *cst.Node {
	n := cst.NewNode(cst.KindFunctionBlock)
	n.AddToken(p.advance()) // FUNCTION_BLOCK
	if nameTok, ok := p.expect(token.IDENTIFIER); ok {
		n.AddToken(nameTok)
	}
	p.parseVarSections(n)

	body := cst.NewNode(cst.KindBody)
	if p.curIs(token.BEGIN) {
		body.AddToken(p.advance())
		for !p.curIs(token.END) && !p.curIs(token.EOF) {
			before := p.cur
			body.AddNode(p.parseStatementOrTypeDecl())
			if p.cur == before {
				p.advance()
			}
		}
		if tok, ok := p.expect(token.END); ok {
			body.AddToken(tok)
		}
	} else {
		for !p.curIs(token.END_FUNCTION_BLOCK) && !p.curIs(token.EOF) {
			before := p.cur
			body.AddNode(p.parseStatementOrTypeDecl())
			if p.cur == before {
				p.advance()
			}
		}
	}
	n.AddNode(body)
	if tok, ok := p.expect(token.END_FUNCTION_BLOCK); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseProgramDecl() *cst.Node {
	n := cst.NewNode(cst.KindProgramDecl)
	n.AddToken(p.advance()) // PROGRAM
	if nameTok, ok := p.expect(token.IDENTIFIER); ok {
		n.AddToken(nameTok)
	}
	p.parseVarSections(n)

	body := cst.NewNode(cst.KindBody)
	if tok, ok := p.expect(token.BEGIN); ok {
		body.AddToken(tok)
	}
	for !p.curIs(token.END) && !p.curIs(token.EOF) {
		before := p.cur
		body.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	if tok, ok := p.expect(token.END); ok {
		body.AddToken(tok)
	}
	n.AddNode(body)
	if tok, ok := p.expect(token.END_PROGRAM); ok {
		n.AddToken(tok)
	}
	return n
}

// parseStatementOrTypeDecl parses one Statement, or an inline EnumType /
// StructType declaration, both of which are valid inside a POU body.
func (p *Parser) parseStatementOrTypeDecl() *cst.Node {
	if p.curIs(token.TYPE) {
		return p.parseStructOrEnumDecl()
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() *cst.Node {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.REPEAT:
		return p.parseRepeatStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.CASE:
		return p.parseCaseStmt()
	case token.RETURN:
		n := cst.NewNode(cst.KindReturnStmt)
		n.AddToken(p.advance())
		p.optionalSemicolon(n)
		return n
	case token.IDENTIFIER, token.DIRECT_ADDRESS:
		return p.parseAssignOrCallStmt()
	default:
		return p.errorNode("expected a statement")
	}
}

func (p *Parser) parseIfStmt() *cst.Node {
	n := cst.NewNode(cst.KindIfStmt)
	n.AddToken(p.advance()) // IF
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.THEN); ok {
		n.AddToken(tok)
	}
	for !p.atIfTerminator() {
		before := p.cur
		n.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	for p.curIs(token.ELSIF) {
		clause := cst.NewNode(cst.KindElsifClause)
		clause.AddToken(p.advance())
		clause.AddNode(p.parseOrExpr())
		if tok, ok := p.expect(token.THEN); ok {
			clause.AddToken(tok)
		}
		for !p.atIfTerminator() {
			before := p.cur
			clause.AddNode(p.parseStatementOrTypeDecl())
			if p.cur == before {
				p.advance()
			}
		}
		n.AddNode(clause)
	}
	if p.curIs(token.ELSE) {
		n.AddToken(p.advance())
		for !p.curIs(token.END_IF) && !p.curIs(token.EOF) {
			before := p.cur
			n.AddNode(p.parseStatementOrTypeDecl())
			if p.cur == before {
				p.advance()
			}
		}
	}
	if tok, ok := p.expect(token.END_IF); ok {
		n.AddToken(tok)
	}
	return n
}

// atIfTerminator reports whether the current token ends the current
// then/elsif branch's statement list. A bare END is included alongside
// END_IF/ELSIF/ELSE/EOF: it is what the parser actually sees when END_IF
// is missing (the enclosing POU's own END), and treating it as a
// terminator here stops recovery at the first unmatched END instead of
// letting the body loop consume the POU's closing tokens as bogus
// statements.
func (p *Parser) atIfTerminator() bool {
	return p.curIs(token.ELSIF) || p.curIs(token.ELSE) || p.curIs(token.END_IF) || p.curIs(token.END) || p.curIs(token.EOF)
}

func (p *Parser) parseWhileStmt() *cst.Node {
	n := cst.NewNode(cst.KindWhileStmt)
	n.AddToken(p.advance()) // WHILE
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.DO); ok {
		n.AddToken(tok)
	}
	for !p.curIs(token.END_WHILE) && !p.curIs(token.EOF) {
		before := p.cur
		n.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	if tok, ok := p.expect(token.END_WHILE); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseRepeatStmt() *cst.Node {
	n := cst.NewNode(cst.KindRepeatStmt)
	n.AddToken(p.advance()) // REPEAT
	for !p.curIs(token.UNTIL) && !p.curIs(token.EOF) {
		before := p.cur
		n.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	if tok, ok := p.expect(token.UNTIL); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.END_REPEAT); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseForStmt() *cst.Node {
	n := cst.NewNode(cst.KindForStmt)
	n.AddToken(p.advance()) // FOR
	if nameTok, ok := p.expect(token.IDENTIFIER); ok {
		n.AddToken(nameTok)
	}
	if tok, ok := p.expect(token.ASSIGN); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.TO); ok {
		n.AddToken(tok)
	}
	n.AddNode(p.parseOrExpr())
	if p.curIs(token.BY) {
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
	}
	if tok, ok := p.expect(token.DO); ok {
		n.AddToken(tok)
	}
	for !p.curIs(token.END_FOR) && !p.curIs(token.EOF) {
		before := p.cur
		n.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	if tok, ok := p.expect(token.END_FOR); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseCaseStmt() *cst.Node {
	n := cst.NewNode(cst.KindCaseStmt)
	n.AddToken(p.advance()) // CASE
	n.AddNode(p.parseOrExpr())
	if tok, ok := p.expect(token.OF); ok {
		n.AddToken(tok)
	}
	for !p.curIs(token.ELSE) && !p.curIs(token.END_CASE) && !p.curIs(token.EOF) {
		n.AddNode(p.parseCaseAlt())
	}
	if p.curIs(token.ELSE) {
		elseNode := cst.NewNode(cst.KindCaseAlt)
		elseNode.AddToken(p.advance())
		for !p.curIs(token.END_CASE) && !p.curIs(token.EOF) {
			before := p.cur
			elseNode.AddNode(p.parseStatementOrTypeDecl())
			if p.cur == before {
				p.advance()
			}
		}
		n.AddNode(elseNode)
	}
	if tok, ok := p.expect(token.END_CASE); ok {
		n.AddToken(tok)
	}
	return n
}

// parseCaseAlt parses `Label (',' Label)* ':' Statement*`, collecting
// every comma-separated label as a sibling node ahead of the statements
// that follow the ':'. The lowerer recovers how many leading nodes are
// labels by counting the COMMA tokens carried alongside them.
func (p *Parser) parseCaseAlt() *cst.Node {
	n := cst.NewNode(cst.KindCaseAlt)
	n.AddNode(p.parseOrExpr())
	for p.curIs(token.COMMA) {
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
	}
	if tok, ok := p.expect(token.COLON); ok {
		n.AddToken(tok)
	}
	for !p.curIs(token.ELSE) && !p.atCaseAltEnd() {
		before := p.cur
		n.AddNode(p.parseStatementOrTypeDecl())
		if p.cur == before {
			p.advance()
		}
	}
	return n
}

// atCaseAltEnd reports whether the current token starts a new case
// label (list) or terminates the CASE statement. A statement can never
// start with NUMBER/TRUE/FALSE/ENUM_REFERENCE (parseStatement only
// accepts IF/WHILE/REPEAT/FOR/CASE/RETURN/IDENTIFIER/DIRECT_ADDRESS), so
// seeing one of these at the top of a body loop unambiguously marks the
// next alternative's first label, including the first label of a
// multi-label list like `2, 3: ...` — no lookahead past it is needed to
// tell it apart from an ordinary statement.
func (p *Parser) atCaseAltEnd() bool {
	return p.curIs(token.END_CASE) || p.curIs(token.EOF) ||
		p.curIs(token.NUMBER) || p.curIs(token.TRUE) || p.curIs(token.FALSE) || p.curIs(token.ENUM_REFERENCE)
}

func (p *Parser) parseAssignOrCallStmt() *cst.Node {
	designator := p.parseDesignator()
	if p.curIs(token.ASSIGN) {
		n := cst.NewNode(cst.KindAssignStmt)
		n.AddNode(designator)
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
		p.optionalSemicolon(n)
		return n
	}
	n := cst.NewNode(cst.KindCallStmt)
	n.AddNode(designator)
	p.optionalSemicolon(n)
	return n
}

// parseDesignator parses a chain of member/array/call accesses starting
// from a base identifier or direct address: `Ident`, `Ident(args)`,
// `Ident.Member`, `Ident.Member(args)`, `Ident[idx]`, and any left-to-right
// composition of these (e.g. `a.b[c].d`). The lowerer is responsible for
// flattening the resulting nested node chain into an ordered element list.
func (p *Parser) parseDesignator() *cst.Node {
	baseTok := p.advance()
	node := cst.NewNode(cst.KindVariableAccess, cst.TokenElement(baseTok))

	if p.curIs(token.LPAREN) {
		call := cst.NewNode(cst.KindCallExpr)
		call.AddNode(node)
		call.AddNode(p.parseArgList())
		node = call
	}

	for {
		switch p.cur.Kind {
		case token.DOT:
			dotTok := p.advance()
			memberTok, _ := p.expect(token.IDENTIFIER)
			if p.curIs(token.LPAREN) {
				call := cst.NewNode(cst.KindCallExpr)
				call.AddNode(node)
				call.AddToken(dotTok)
				call.AddToken(memberTok)
				call.AddNode(p.parseArgList())
				node = call
			} else {
				member := cst.NewNode(cst.KindMemberExpr)
				member.AddNode(node)
				member.AddToken(dotTok)
				member.AddToken(memberTok)
				node = member
			}
		case token.LBRACKET:
			lbTok := p.advance()
			idx := p.parseOrExpr()
			rbTok, _ := p.expect(token.RBRACKET)
			access := cst.NewNode(cst.KindArrayAccess)
			access.AddNode(node)
			access.AddToken(lbTok)
			access.AddNode(idx)
			access.AddToken(rbTok)
			node = access
		default:
			return node
		}
	}
}

func (p *Parser) parseArgList() *cst.Node {
	n := cst.NewNode(cst.KindArgList)
	n.AddToken(p.advance()) // '('
	if !p.curIs(token.RPAREN) {
		n.AddNode(p.parseArgument())
		for p.curIs(token.COMMA) {
			n.AddToken(p.advance())
			n.AddNode(p.parseArgument())
		}
	}
	if tok, ok := p.expect(token.RPAREN); ok {
		n.AddToken(tok)
	}
	return n
}

func (p *Parser) parseArgument() *cst.Node {
	n := cst.NewNode(cst.KindArgument)
	if p.curIs(token.IDENTIFIER) && p.peekIs(token.ASSIGN) {
		n.AddToken(p.advance())
		n.AddToken(p.advance())
	}
	n.AddNode(p.parseOrExpr())
	return n
}

// --- Expression grammar: or-expr -> and-expr -> rel-expr -> add-expr ->
// mul-expr -> unary -> primary, all left-associative. Every binary level
// node (or/and/rel/add/mul) is always emitted (even with a single
// operand); the lowerer folds single-operand chains into their sole
// child. A UnaryExpr node is emitted only when a NOT or '-' is present.

func (p *Parser) parseOrExpr() *cst.Node {
	n := cst.NewNode(cst.KindOrExpr)
	n.AddNode(p.parseAndExpr())
	for p.curIs(token.OR) {
		n.AddToken(p.advance())
		n.AddNode(p.parseAndExpr())
	}
	return n
}

func (p *Parser) parseAndExpr() *cst.Node {
	n := cst.NewNode(cst.KindAndExpr)
	n.AddNode(p.parseRelExpr())
	for p.curIs(token.AND) {
		n.AddToken(p.advance())
		n.AddNode(p.parseRelExpr())
	}
	return n
}

var relOps = map[token.Kind]bool{
	token.EQ: true, token.NEQ: true, token.LT: true, token.LE: true, token.GT: true, token.GE: true,
}

func (p *Parser) parseRelExpr() *cst.Node {
	n := cst.NewNode(cst.KindRelExpr)
	n.AddNode(p.parseAddExpr())
	if relOps[p.cur.Kind] {
		n.AddToken(p.advance())
		n.AddNode(p.parseAddExpr())
	}
	return n
}

func (p *Parser) parseAddExpr() *cst.Node {
	n := cst.NewNode(cst.KindAddExpr)
	n.AddNode(p.parseMulExpr())
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		n.AddToken(p.advance())
		n.AddNode(p.parseMulExpr())
	}
	return n
}

func (p *Parser) parseMulExpr() *cst.Node {
	n := cst.NewNode(cst.KindMulExpr)
	n.AddNode(p.parseUnary())
	for p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.MOD) {
		n.AddToken(p.advance())
		n.AddNode(p.parseUnary())
	}
	return n
}

func (p *Parser) parseUnary() *cst.Node {
	if p.curIs(token.NOT) || p.curIs(token.MINUS) {
		n := cst.NewNode(cst.KindUnaryExpr)
		n.AddToken(p.advance())
		n.AddNode(p.parsePrimary())
		return n
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() *cst.Node {
	switch p.cur.Kind {
	case token.LPAREN:
		n := cst.NewNode(cst.KindParenExpr)
		n.AddToken(p.advance())
		n.AddNode(p.parseOrExpr())
		if tok, ok := p.expect(token.RPAREN); ok {
			n.AddToken(tok)
		}
		return n
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.TIME_LITERAL, token.DIRECT_ADDRESS, token.ENUM_REFERENCE:
		n := cst.NewNode(cst.KindLiteral)
		n.AddToken(p.advance())
		return n
	case token.IDENTIFIER:
		return p.parseDesignator()
	default:
		return p.errorNode("expected an expression")
	}
}

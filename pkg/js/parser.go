package js

// parser is a recursive descent parser over a Lexer. It holds at most one
// token of lookahead.
type parser struct {
	lex   *Lexer
	buf   Tok
	has   bool
	last  Position
	debug bool
}

// Parse consumes every token of l and returns the Program they form.
// The grammar is LL(1): each production decides what to do next from a
// single peeked token.
func Parse(l *Lexer) (*Program, error) {
	return parse(l, false)
}

// ParseString is shorthand for Parse(Tokenize(src)).
func ParseString(src string) (*Program, error) {
	return Parse(Tokenize(src))
}

func parse(l *Lexer, debug bool) (*Program, error) {
	p := &parser{lex: l, debug: debug}
	prog, err := p.program()
	if err == nil && debug {
		LogDebugf("parse -> fingerprint %x", prog.Fingerprint())
	}
	return prog, err
}

func (p *parser) next() (Tok, bool) {
	if p.has {
		p.has = false
		p.last = p.buf.Position
		return p.buf, true
	}

	tok, ok := p.lex.Next()
	if ok {
		p.last = tok.Position
	}
	return tok, ok
}

func (p *parser) peek() (Tok, bool) {
	if p.has {
		return p.buf, true
	}

	tok, ok := p.lex.Next()
	if !ok {
		return tok, false
	}
	p.buf = tok
	p.has = true
	return tok, true
}

// skip consumes the next token if it is the punctuator c.
func (p *parser) skip(c rune) bool {
	if tok, ok := p.peek(); ok && tok.is(c) {
		p.next()
		return true
	}
	return false
}

func (p *parser) unexpectedEnd(expected string) error {
	return errorf(ErrUnexpectedEnd, p.last, "unexpected end of input, expected %s", expected)
}

func unexpectedToken(tok Tok, expected string) error {
	if tok.Kind == Illegal && tok.Str != "" && isDigit(rune(tok.Str[0])) {
		return errorf(ErrUnexpectedToken, tok.Position, "number literal %s is out of range", tok.Str)
	}
	return errorf(ErrUnexpectedToken, tok.Position, "unexpected %s, expected %s", tok.text(), expected)
}

// Program := SourceElement*
func (p *parser) program() (*Program, error) {
	prog := &Program{Body: make([]Node, 0)}
	for {
		tok, ok := p.peek()
		if !ok {
			return prog, nil
		}
		if tok.is(';') {
			// empty statement
			p.next()
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if p.debug {
			LogDebug("parse ->", stmt.String())
		}
		prog.Body = append(prog.Body, stmt)
	}
}

// Statement := 'var' VariableDeclarationList (';')?
//	| ExpressionStatement
func (p *parser) statement() (Node, error) {
	tok, _ := p.peek()

	var stmt Node
	if tok.Kind == Keyword {
		if tok.Str != "var" {
			return nil, unexpectedToken(tok, "a statement")
		}
		p.next()

		decl, err := p.variableDeclaration(tok.Position)
		if err != nil {
			return nil, err
		}
		stmt = decl
	} else {
		expr, err := p.assignmentExpression()
		if err != nil {
			return nil, err
		}
		stmt = &ExpressionStatementNode{Expression: expr, Pos: tok.Position}
	}

	p.skip(';')
	return stmt, nil
}

// VariableDeclarationList := VariableDeclarator (',' VariableDeclarator)*
func (p *parser) variableDeclaration(pos Position) (*VariableDeclarationNode, error) {
	decls := make([]*VariableDeclaratorNode, 0, 1)
	for {
		decl, err := p.variableDeclarator()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)

		if !p.skip(',') {
			return &VariableDeclarationNode{Declarations: decls, Pos: pos}, nil
		}
	}
}

// VariableDeclarator := Identifier Initialiser?
// Initialiser := '=' AssignmentExpression
func (p *parser) variableDeclarator() (*VariableDeclaratorNode, error) {
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}

	decl := &VariableDeclaratorNode{ID: id, Pos: id.Pos}
	if p.skip('=') {
		decl.Init, err = p.assignmentExpression()
		if err != nil {
			return nil, err
		}
	}
	return decl, nil
}

// AssignmentExpression := AdditiveExpression ('=' AssignmentExpression)?
func (p *parser) assignmentExpression() (Node, error) {
	left, err := p.additiveExpression()
	if err != nil {
		return nil, err
	}

	tok, ok := p.peek()
	if !ok || !tok.is('=') {
		return left, nil
	}
	p.next()

	right, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	return &AssignmentExprNode{
		Operator: '=',
		Left:     left,
		Right:    right,
		Pos:      tok.Position,
	}, nil
}

// AdditiveExpression := LeftHandSideExpression (('+' | '-') AssignmentExpression)?
//
// The right operand recurses into AssignmentExpression, so chains of
// additive operators group to the right: 5 - 2 - 1 is 5 - (2 - 1).
func (p *parser) additiveExpression() (Node, error) {
	left, err := p.leftHandSideExpression()
	if err != nil {
		return nil, err
	}

	tok, ok := p.peek()
	if !ok || !(tok.is('+') || tok.is('-')) {
		return left, nil
	}
	p.next()

	right, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	return &AdditiveExprNode{
		Operator: tok.Punct,
		Left:     left,
		Right:    right,
		Pos:      tok.Position,
	}, nil
}

// LeftHandSideExpression := PrimaryExpression ('.' Identifier)*
func (p *parser) leftHandSideExpression() (Node, error) {
	expr, err := p.primaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || !tok.is('.') {
			return expr, nil
		}
		p.next()

		prop, err := p.identifier()
		if err != nil {
			return nil, err
		}
		expr = &MemberExprNode{Object: expr, Property: prop, Pos: tok.Position}
	}
}

// PrimaryExpression := Identifier | StringLiteral | Number
//	| '(' AssignmentExpression ')'
func (p *parser) primaryExpression() (Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.unexpectedEnd("an expression")
	}

	switch tok.Kind {
	case Identifier:
		return &IdentifierNode{Name: tok.Str, Pos: tok.Position}, nil
	case StringLiteral:
		return &StringLiteralNode{Value: tok.Str, Pos: tok.Position}, nil
	case Number:
		return &NumericLiteralNode{Value: tok.Num, Pos: tok.Position}, nil
	case Punctuator:
		if tok.is('(') {
			expr, err := p.assignmentExpression()
			if err != nil {
				return nil, err
			}
			closing, ok := p.next()
			if !ok {
				return nil, p.unexpectedEnd("')'")
			}
			if !closing.is(')') {
				return nil, unexpectedToken(closing, "')'")
			}
			return expr, nil
		}
	}

	return nil, unexpectedToken(tok, "an expression")
}

func (p *parser) identifier() (*IdentifierNode, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.unexpectedEnd("an identifier")
	}
	if tok.Kind != Identifier {
		return nil, unexpectedToken(tok, "an identifier")
	}
	return &IdentifierNode{Name: tok.Str, Pos: tok.Position}, nil
}

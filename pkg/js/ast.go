package js

import (
	"fmt"
	"strings"

	"github.com/segmentio/fasthash/fnv1a"
)

// Node represents an abstract syntax tree (AST) node of a script.
//
// Nodes are never modified once the parser has built them, so subtrees may
// be shared freely. A nil Node stands for a child the grammar left out.
type Node interface {
	String() string
	Position() Position
	Eval(*Runtime, *Environment) (Value, error)
}

func nodeString(n Node) string {
	if n == nil {
		return "()"
	}
	return n.String()
}

type ExpressionStatementNode struct {
	Expression Node
	Pos        Position
}

func (n *ExpressionStatementNode) String() string {
	return fmt.Sprintf("Expression (%s)", nodeString(n.Expression))
}

func (n *ExpressionStatementNode) Position() Position {
	return n.Pos
}

// AdditiveExprNode is a '+' or '-' expression.
type AdditiveExprNode struct {
	Operator rune
	Left     Node
	Right    Node
	Pos      Position
}

func (n *AdditiveExprNode) String() string {
	return fmt.Sprintf("Additive (%s) %c (%s)", nodeString(n.Left), n.Operator, nodeString(n.Right))
}

func (n *AdditiveExprNode) Position() Position {
	return n.Pos
}

// AssignmentExprNode is an '=' expression.
type AssignmentExprNode struct {
	Operator rune
	Left     Node
	Right    Node
	Pos      Position
}

func (n *AssignmentExprNode) String() string {
	return fmt.Sprintf("Assignment (%s) %c (%s)", nodeString(n.Left), n.Operator, nodeString(n.Right))
}

func (n *AssignmentExprNode) Position() Position {
	return n.Pos
}

// MemberExprNode is a property access, object.property.
type MemberExprNode struct {
	Object   Node
	Property Node
	Pos      Position
}

func (n *MemberExprNode) String() string {
	return fmt.Sprintf("Member (%s).(%s)", nodeString(n.Object), nodeString(n.Property))
}

func (n *MemberExprNode) Position() Position {
	return n.Pos
}

type NumericLiteralNode struct {
	Value uint64
	Pos   Position
}

func (n *NumericLiteralNode) String() string {
	return fmt.Sprintf("Number %d", n.Value)
}

func (n *NumericLiteralNode) Position() Position {
	return n.Pos
}

type StringLiteralNode struct {
	Value string
	Pos   Position
}

func (n *StringLiteralNode) String() string {
	return fmt.Sprintf("String %q", n.Value)
}

func (n *StringLiteralNode) Position() Position {
	return n.Pos
}

type IdentifierNode struct {
	Name string
	Pos  Position
}

func (n *IdentifierNode) String() string {
	return fmt.Sprintf("Identifier '%s'", n.Name)
}

func (n *IdentifierNode) Position() Position {
	return n.Pos
}

type VariableDeclarationNode struct {
	Declarations []*VariableDeclaratorNode
	Pos          Position
}

func (n *VariableDeclarationNode) String() string {
	decls := make([]string, len(n.Declarations))
	for i, d := range n.Declarations {
		decls[i] = d.String()
	}
	return fmt.Sprintf("Var (%s)", strings.Join(decls, ", "))
}

func (n *VariableDeclarationNode) Position() Position {
	return n.Pos
}

// VariableDeclaratorNode binds ID. Init is nil for `var x;`.
type VariableDeclaratorNode struct {
	ID   *IdentifierNode
	Init Node
	Pos  Position
}

func (n *VariableDeclaratorNode) String() string {
	return fmt.Sprintf("Declarator (%s) = (%s)", nodeString(identOrNil(n.ID)), nodeString(n.Init))
}

func (n *VariableDeclaratorNode) Position() Position {
	return n.Pos
}

// Program is the ordered list of top level statements of a script.
type Program struct {
	Body []Node
}

func (p *Program) String() string {
	stmts := make([]string, len(p.Body))
	for i, n := range p.Body {
		stmts[i] = nodeString(n)
	}
	return strings.Join(stmts, "\n")
}

// Equal reports whether p and q have the same statements, ignoring
// source positions.
func (p *Program) Equal(q *Program) bool {
	if p == nil || q == nil {
		return p == q
	}
	if len(p.Body) != len(q.Body) {
		return false
	}
	for i := range p.Body {
		if !NodesEqual(p.Body[i], q.Body[i]) {
			return false
		}
	}
	return true
}

// Fingerprint is a structural hash of the program. Programs that are
// Equal have the same fingerprint.
func (p *Program) Fingerprint() uint64 {
	return fnv1a.HashString64(p.String())
}

// NodesEqual compares two trees structurally, ignoring source positions.
func NodesEqual(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *ExpressionStatementNode:
		y, ok := b.(*ExpressionStatementNode)
		return ok && NodesEqual(x.Expression, y.Expression)
	case *AdditiveExprNode:
		y, ok := b.(*AdditiveExprNode)
		return ok && x.Operator == y.Operator &&
			NodesEqual(x.Left, y.Left) && NodesEqual(x.Right, y.Right)
	case *AssignmentExprNode:
		y, ok := b.(*AssignmentExprNode)
		return ok && x.Operator == y.Operator &&
			NodesEqual(x.Left, y.Left) && NodesEqual(x.Right, y.Right)
	case *MemberExprNode:
		y, ok := b.(*MemberExprNode)
		return ok && NodesEqual(x.Object, y.Object) && NodesEqual(x.Property, y.Property)
	case *NumericLiteralNode:
		y, ok := b.(*NumericLiteralNode)
		return ok && x.Value == y.Value
	case *StringLiteralNode:
		y, ok := b.(*StringLiteralNode)
		return ok && x.Value == y.Value
	case *IdentifierNode:
		y, ok := b.(*IdentifierNode)
		return ok && x.Name == y.Name
	case *VariableDeclarationNode:
		y, ok := b.(*VariableDeclarationNode)
		if !ok || len(x.Declarations) != len(y.Declarations) {
			return false
		}
		for i := range x.Declarations {
			if !NodesEqual(x.Declarations[i], y.Declarations[i]) {
				return false
			}
		}
		return true
	case *VariableDeclaratorNode:
		y, ok := b.(*VariableDeclaratorNode)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return NodesEqual(identOrNil(x.ID), identOrNil(y.ID)) && NodesEqual(x.Init, y.Init)
	default:
		return false
	}
}

// identOrNil keeps a nil *IdentifierNode from becoming a non-nil Node.
func identOrNil(id *IdentifierNode) Node {
	if id == nil {
		return nil
	}
	return id
}

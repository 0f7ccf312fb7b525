package js

import (
	"math"

	"lukechampine.com/uint128"
)

// evalNode evaluates an optional child. A missing child produces no value.
func evalNode(rt *Runtime, env *Environment, n Node) (Value, error) {
	if n == nil {
		return nil, nil
	}
	return n.Eval(rt, env)
}

func (n *ExpressionStatementNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	return evalNode(rt, env, n.Expression)
}

func (n *AdditiveExprNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	leftValue, err := evalNode(rt, env, n.Left)
	if err != nil {
		return nil, err
	}
	rightValue, err := evalNode(rt, env, n.Right)
	if err != nil {
		return nil, err
	}
	if leftValue == nil || rightValue == nil {
		return nil, nil
	}

	switch n.Operator {
	case '+':
		switch left := leftValue.(type) {
		case NumberValue:
			if right, ok := rightValue.(NumberValue); ok {
				return rt.add(left, right, n.Pos)
			}
		case StringValue:
			if right, ok := rightValue.(StringValue); ok {
				return left + right, nil
			}
		}
		return nil, errorf(ErrTypeMismatch, n.Pos,
			"values %s (%s) and %s (%s) do not support addition",
			leftValue, leftValue.Kind(), rightValue, rightValue.Kind())
	case '-':
		if left, ok := leftValue.(NumberValue); ok {
			if right, ok := rightValue.(NumberValue); ok {
				return rt.sub(left, right, n.Pos)
			}
		}
		return nil, errorf(ErrTypeMismatch, n.Pos,
			"values %s (%s) and %s (%s) do not support subtraction",
			leftValue, leftValue.Kind(), rightValue, rightValue.Kind())
	}

	return nil, errorf(ErrUnsupported, n.Pos, "unknown additive operator '%c'", n.Operator)
}

func (rt *Runtime) add(left, right NumberValue, pos Position) (Value, error) {
	sum := uint128.From64(uint64(left)).Add64(uint64(right))
	if sum.Hi == 0 {
		return NumberValue(sum.Lo), nil
	}

	switch rt.config.Overflow {
	case OverflowWrap:
		return NumberValue(sum.Lo), nil
	case OverflowSaturate:
		return NumberValue(math.MaxUint64), nil
	default:
		return nil, errorf(ErrNumericOverflow, pos, "%s + %s overflows", left, right)
	}
}

func (rt *Runtime) sub(left, right NumberValue, pos Position) (Value, error) {
	l := uint128.From64(uint64(left))
	if l.Cmp64(uint64(right)) >= 0 {
		return NumberValue(l.Sub64(uint64(right)).Lo), nil
	}

	switch rt.config.Overflow {
	case OverflowWrap:
		return NumberValue(l.SubWrap64(uint64(right)).Lo), nil
	case OverflowSaturate:
		return NumberValue(0), nil
	default:
		return nil, errorf(ErrNumericOverflow, pos, "%s - %s underflows", left, right)
	}
}

func (n *AssignmentExprNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	if n.Operator != '=' {
		return nil, errorf(ErrUnsupported, n.Pos, "unknown assignment operator '%c'", n.Operator)
	}

	ident, ok := n.Left.(*IdentifierNode)
	if !ok || ident == nil {
		return nil, errorf(ErrUnsupported, n.Pos,
			"cannot assign value to non-identifier %s", nodeString(n.Left))
	}

	val, err := evalNode(rt, env, n.Right)
	if err != nil {
		return nil, err
	}
	if val == nil {
		val = UndefinedValue{}
	}

	env.Set(ident.Name, val)
	return val, nil
}

func (n *MemberExprNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	return nil, errorf(ErrUnsupported, n.Pos, "property access %s is not supported", n)
}

func (n *NumericLiteralNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	return NumberValue(n.Value), nil
}

func (n *StringLiteralNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	return StringValue(n.Value), nil
}

func (n *IdentifierNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	val, ok := env.Get(n.Name)
	if !ok {
		return nil, errorf(ErrUnboundIdentifier, n.Pos, "%s is not defined", n.Name)
	}
	return val, nil
}

// Eval binds every declarator in order. Declarations produce no value.
func (n *VariableDeclarationNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	for _, decl := range n.Declarations {
		if decl == nil {
			continue
		}
		if _, err := decl.Eval(rt, env); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (n *VariableDeclaratorNode) Eval(rt *Runtime, env *Environment) (Value, error) {
	if n.ID == nil {
		return nil, errorf(ErrUnsupported, n.Pos, "variable declarator without a name")
	}

	val, err := evalNode(rt, env, n.Init)
	if err != nil {
		return nil, err
	}
	if val == nil {
		val = UndefinedValue{}
	}

	env.Set(n.ID.Name, val)
	return nil, nil
}

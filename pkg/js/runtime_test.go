package js

import (
	"errors"
	"math"
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, rt *Runtime, src string) ([]Value, *Environment, error) {
	t.Helper()
	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	env := NewEnvironment()
	vals, err := rt.Execute(prog, env)
	return vals, env, err
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     []Value
		bindings map[string]Value
	}{
		{"empty", "", []Value{}, nil},
		{"number", "42", []Value{NumberValue(42)}, nil},
		{"add", "1 + 2", []Value{NumberValue(3)}, nil},
		{"subtract", "2 - 1", []Value{NumberValue(1)}, nil},
		{"declare string", `var foo="bar"`, []Value{}, map[string]Value{
			"foo": StringValue("bar"),
		}},
		{"declare and reference", "var foo=42; var result=foo+1;", []Value{}, map[string]Value{
			"foo":    NumberValue(42),
			"result": NumberValue(43),
		}},
		{"right grouping", "5 - 2 - 1", []Value{NumberValue(4)}, nil},
		{"parenthesized", "(5 - 2) - 1", []Value{NumberValue(2)}, nil},
		{"concatenate", `"foo" + "bar"`, []Value{StringValue("foobar")}, nil},
		{"uninitialized", "var x; x", []Value{UndefinedValue{}}, map[string]Value{
			"x": UndefinedValue{},
		}},
		{"assignment yields value", "x = 5; x + 1", []Value{NumberValue(5), NumberValue(6)}, map[string]Value{
			"x": NumberValue(5),
		}},
		{"chained assignment", "a = b = 3", []Value{NumberValue(3)}, map[string]Value{
			"a": NumberValue(3),
			"b": NumberValue(3),
		}},
		{"redeclare replaces", "var a = 1; var a = 2; a", []Value{NumberValue(2)}, map[string]Value{
			"a": NumberValue(2),
		}},
		{"declarator list in order", "var a = 1, b = a + 1; b", []Value{NumberValue(2)}, map[string]Value{
			"a": NumberValue(1),
			"b": NumberValue(2),
		}},
		{"assignment inside addition", "1 + x = 3", []Value{NumberValue(4)}, map[string]Value{
			"x": NumberValue(3),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, env, err := run(t, NewRuntime(nil), tt.src)
			if err != nil {
				t.Fatalf("execute %q: %v", tt.src, err)
			}
			if diff := cmp.Diff(tt.want, vals); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
			if env.Len() != len(tt.bindings) {
				t.Fatalf("expected %d bindings, got %s", len(tt.bindings), env)
			}
			for name, want := range tt.bindings {
				got, ok := env.Get(name)
				if !ok {
					t.Fatalf("%s is not bound", name)
				}
				if !want.Equals(got) {
					t.Fatalf("%s: expected %s, got %s", name, want, got)
				}
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		src    string
		reason Reason
	}{
		{"y", ErrUnboundIdentifier},
		{"var a = b", ErrUnboundIdentifier},
		{`1 + "a"`, ErrTypeMismatch},
		{`"a" + 1`, ErrTypeMismatch},
		{`"a" - "b"`, ErrTypeMismatch},
		{"var x; x + 1", ErrTypeMismatch},
		{"a.b", ErrUnsupported},
		{"1 = 2", ErrUnsupported},
		{"a.b = 1", ErrUnsupported},
		{"18446744073709551615 + 1", ErrNumericOverflow},
		{"0 - 1", ErrNumericOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, _, err := run(t, NewRuntime(nil), tt.src)
			if err == nil {
				t.Fatalf("expected error for %q", tt.src)
			}
			if got := ReasonOf(err); got != tt.reason {
				t.Fatalf("expected %v, got %v (%v)", tt.reason, got, err)
			}
			if !errors.Is(err, Err{}.WithReason(tt.reason)) {
				t.Fatalf("errors.Is does not match reason %v", tt.reason)
			}
		})
	}
}

func TestErrorStopsExecution(t *testing.T) {
	vals, env, err := run(t, NewRuntime(nil), "var a = 1; a; b; a = 2")
	if ReasonOf(err) != ErrUnboundIdentifier {
		t.Fatalf("expected unbound identifier, got %v", err)
	}
	if len(vals) != 1 || !vals[0].Equals(NumberValue(1)) {
		t.Fatalf("expected values before the failure, got %v", vals)
	}
	if a, _ := env.Get("a"); !a.Equals(NumberValue(1)) {
		t.Fatalf("statement after the failure ran, a = %s", a)
	}
}

func TestFailedAssignmentTargetHasNoEffect(t *testing.T) {
	_, env, err := run(t, NewRuntime(nil), "a.b = c = 1")
	if ReasonOf(err) != ErrUnsupported {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if _, ok := env.Get("c"); ok {
		t.Fatalf("right hand side ran for an invalid target")
	}
}

func TestOverflowPolicies(t *testing.T) {
	tests := []struct {
		policy OverflowPolicy
		src    string
		want   NumberValue
	}{
		{OverflowWrap, "18446744073709551615 + 1", 0},
		{OverflowWrap, "18446744073709551615 + 18446744073709551615", math.MaxUint64 - 1},
		{OverflowWrap, "0 - 1", math.MaxUint64},
		{OverflowWrap, "3 - 5", math.MaxUint64 - 1},
		{OverflowSaturate, "18446744073709551615 + 1", math.MaxUint64},
		{OverflowSaturate, "0 - 1", 0},
		{OverflowError, "18446744073709551614 + 1", math.MaxUint64},
		{OverflowError, "1 - 1", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy)+" "+tt.src, func(t *testing.T) {
			vals, _, err := run(t, NewRuntime(&Config{Overflow: tt.policy}), tt.src)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if len(vals) != 1 || !vals[0].Equals(tt.want) {
				t.Fatalf("expected %s, got %v", tt.want, vals)
			}
		})
	}
}

func TestArithmeticAcrossRange(t *testing.T) {
	samples := []uint64{0, 1, 2, 41, math.MaxUint32, math.MaxUint64 / 2, math.MaxUint64 - 1, math.MaxUint64}
	policies := []OverflowPolicy{OverflowError, OverflowWrap, OverflowSaturate}

	for _, policy := range policies {
		rt := NewRuntime(&Config{Overflow: policy})
		env := NewEnvironment()
		for _, a := range samples {
			for _, b := range samples {
				sum, carry := bits.Add64(a, b, 0)
				got, err := rt.Eval(additive('+', num(a), num(b)), env)
				switch {
				case carry == 0 && (err != nil || !got.Equals(NumberValue(sum))):
					t.Fatalf("%s: %d + %d = %v, %v", policy, a, b, got, err)
				case carry != 0 && policy == OverflowError && ReasonOf(err) != ErrNumericOverflow:
					t.Fatalf("%s: %d + %d expected overflow, got %v, %v", policy, a, b, got, err)
				case carry != 0 && policy == OverflowWrap && !got.Equals(NumberValue(sum)):
					t.Fatalf("%s: %d + %d = %v", policy, a, b, got)
				case carry != 0 && policy == OverflowSaturate && !got.Equals(NumberValue(math.MaxUint64)):
					t.Fatalf("%s: %d + %d = %v", policy, a, b, got)
				}

				diff, borrow := bits.Sub64(a, b, 0)
				got, err = rt.Eval(additive('-', num(a), num(b)), env)
				switch {
				case borrow == 0 && (err != nil || !got.Equals(NumberValue(diff))):
					t.Fatalf("%s: %d - %d = %v, %v", policy, a, b, got, err)
				case borrow != 0 && policy == OverflowError && ReasonOf(err) != ErrNumericOverflow:
					t.Fatalf("%s: %d - %d expected overflow, got %v, %v", policy, a, b, got, err)
				case borrow != 0 && policy == OverflowWrap && !got.Equals(NumberValue(diff)):
					t.Fatalf("%s: %d - %d = %v", policy, a, b, got)
				case borrow != 0 && policy == OverflowSaturate && !got.Equals(NumberValue(0)):
					t.Fatalf("%s: %d - %d = %v", policy, a, b, got)
				}
			}
		}
	}
}

func TestMissingOperandsProduceNothing(t *testing.T) {
	rt := NewRuntime(nil)
	env := NewEnvironment()

	prog := program(
		expr(nil),
		expr(additive('+', nil, num(1))),
		expr(additive('-', num(1), nil)),
		expr(num(7)),
	)
	vals, err := rt.Execute(prog, env)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if diff := cmp.Diff([]Value{NumberValue(7)}, vals); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingInitializerBindsUndefined(t *testing.T) {
	rt := NewRuntime(nil)
	env := NewEnvironment()

	if _, err := rt.Execute(program(expr(assign(ident("a"), nil))), env); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if v, ok := env.Get("a"); !ok || !v.Equals(UndefinedValue{}) {
		t.Fatalf("expected a to be undefined, got %v", v)
	}
}

func TestUnsupportedNodes(t *testing.T) {
	rt := NewRuntime(nil)
	env := NewEnvironment()
	env.Set("a", NumberValue(1))

	nodes := []Node{
		member(ident("a"), ident("b")),
		assign(num(1), num(2)),
		&AssignmentExprNode{Operator: '+', Left: ident("a"), Right: num(1)},
		&AdditiveExprNode{Operator: '*', Left: num(1), Right: num(2)},
		&VariableDeclaratorNode{Init: num(1)},
	}
	for _, n := range nodes {
		v, err := rt.Eval(n, env)
		if ReasonOf(err) != ErrUnsupported {
			t.Fatalf("%s: expected unsupported, got %v, %v", n, v, err)
		}
	}
}

func TestExecuteSharedEnvironment(t *testing.T) {
	rt := NewRuntime(nil)
	env := NewEnvironment()

	for _, src := range []string{"var foo = 42", "foo = foo + 1", "var result = foo + 1"} {
		if _, err := rt.ExecSource(src, env); err != nil {
			t.Fatalf("execute %q: %v", src, err)
		}
	}
	if v, _ := env.Get("result"); !v.Equals(NumberValue(44)) {
		t.Fatalf("expected result 44, got %v", v)
	}
	if got := env.Names(); !cmp.Equal(got, []string{"foo", "result"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestPackageExecute(t *testing.T) {
	prog, err := ParseString("1 + 2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vals, err := Execute(prog, NewEnvironment())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(vals) != 1 || !vals[0].Equals(NumberValue(3)) {
		t.Fatalf("expected 3, got %v", vals)
	}
}

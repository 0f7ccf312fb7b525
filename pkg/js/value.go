package js

import (
	"strconv"
)

// Value represents any value a script can produce at runtime.
type Value interface {
	String() string
	// Equals reports whether the given value is of the same kind and
	// holds the same contents as the receiving value.
	Equals(Value) bool
	Kind() ValueKind
}

// ValueKind names the variant of a Value, for type errors.
type ValueKind string

const (
	NumberKind    ValueKind = "number"
	StringKind    ValueKind = "string"
	UndefinedKind ValueKind = "undefined"
)

// NumberValue is an unsigned 64-bit integer.
type NumberValue uint64

func (v NumberValue) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (v NumberValue) Equals(other Value) bool {
	ov, ok := other.(NumberValue)
	return ok && v == ov
}

func (v NumberValue) Kind() ValueKind {
	return NumberKind
}

type StringValue string

func (v StringValue) String() string {
	return strconv.Quote(string(v))
}

func (v StringValue) Equals(other Value) bool {
	ov, ok := other.(StringValue)
	return ok && v == ov
}

func (v StringValue) Kind() ValueKind {
	return StringKind
}

// UndefinedValue is bound to variables declared without an initializer.
type UndefinedValue struct{}

func (v UndefinedValue) String() string {
	return "undefined"
}

func (v UndefinedValue) Equals(other Value) bool {
	_, ok := other.(UndefinedValue)
	return ok
}

func (v UndefinedValue) Kind() ValueKind {
	return UndefinedKind
}

// Plain converts v into a plain Go value, for YAML and JSON dumps.
func Plain(v Value) interface{} {
	switch x := v.(type) {
	case NumberValue:
		return uint64(x)
	case StringValue:
		return string(x)
	default:
		return nil
	}
}

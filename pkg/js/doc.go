// Package js is the script engine of sabajs: a small JavaScript subset
// lexed, parsed and evaluated against a single global environment.
//
// Supported input is numeric and string literals, identifiers, var
// declarations, '=' assignment, and '+' / '-' on unsigned 64-bit numbers.
// Additive chains group to the right, so 5 - 2 - 1 evaluates to 4.
//
// Usage:
//
//	rt := js.NewRuntime(nil)
//	env := js.NewEnvironment()
//	vals, err := rt.ExecSource("var foo = 42; foo + 1", env)
//
// Every failure is reported as an Err carrying a Reason and, where known,
// the source Position.
package js

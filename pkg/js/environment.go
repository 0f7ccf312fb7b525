package js

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxPrintLen = 120

// ValueTable is used anytime a map of names to Values is needed.
type ValueTable map[string]Value

// Environment holds the global bindings of one script execution.
// A name is bound at most once; writing it again replaces the value.
type Environment struct {
	vt ValueTable
}

func NewEnvironment() *Environment {
	return &Environment{vt: ValueTable{}}
}

// Get a value bound to name
func (env *Environment) Get(name string) (Value, bool) {
	val, ok := env.vt[name]
	return val, ok
}

// Set binds name to val, replacing any earlier binding
func (env *Environment) Set(name string, val Value) {
	env.vt[name] = val
}

func (env *Environment) Len() int {
	return len(env.vt)
}

// Names returns the bound names in sorted order.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.vt))
	for k := range env.vt {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (env *Environment) String() string {
	entries := make([]string, 0, len(env.vt))
	for _, k := range env.Names() {
		vstr := truncate(env.vt[k].String(), maxPrintLen)
		entries = append(entries, fmt.Sprintf("%s -> %s", k, vstr))
	}

	return fmt.Sprintf("{\n\t%s\n}", strings.Join(entries, "\n\t"))
}

// truncate cuts s to at most n bytes on a rune boundary, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + ".."
}

// MarshalYAML dumps the bindings as a mapping from name to plain value.
func (env *Environment) MarshalYAML() (interface{}, error) {
	out := make(map[string]interface{}, len(env.vt))
	for k, v := range env.vt {
		out[k] = Plain(v)
	}
	return out, nil
}

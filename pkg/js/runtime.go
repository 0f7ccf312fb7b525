package js

// Runtime walks parsed Programs. It holds configuration and the script
// cache; all bindings live in the Environment passed to each call, so one
// Runtime can run many independent executions one after another.
//
// Execution is synchronous: statements run to completion in source order
// and operands are evaluated left before right.
type Runtime struct {
	config Config
	cache  *ScriptCache
}

// NewRuntime creates a Runtime. A nil config selects the defaults.
func NewRuntime(cfg *Config) *Runtime {
	rt := &Runtime{config: cfg.normalize()}
	if rt.config.CacheSize > 0 {
		rt.cache = NewScriptCache(rt.config.CacheSize)
	}
	return rt
}

func (rt *Runtime) Config() Config {
	return rt.config
}

// Execute runs every statement of prog against env and returns the values
// the statements produced, in order. Statements that produce no value,
// such as declarations, contribute nothing. The first error stops
// execution; values produced before it are still returned.
func (rt *Runtime) Execute(prog *Program, env *Environment) ([]Value, error) {
	vals := make([]Value, 0, len(prog.Body))

	var err error
	for _, stmt := range prog.Body {
		var val Value
		val, err = evalNode(rt, env, stmt)
		if err != nil {
			break
		}
		if val != nil {
			vals = append(vals, val)
		}
	}

	if rt.config.Debug.Dump {
		LogDebug("environment dump", env.String())
	}
	return vals, err
}

// Eval evaluates a single node. It returns a nil Value when the node
// produces nothing.
func (rt *Runtime) Eval(n Node, env *Environment) (Value, error) {
	return evalNode(rt, env, n)
}

// Parse lexes and parses src, going through the script cache when it is
// enabled.
func (rt *Runtime) Parse(src string) (*Program, error) {
	if rt.cache != nil {
		return rt.cache.Parse(src, rt.config.Debug)
	}
	return parse(Tokenize(src).Debug(rt.config.Debug.Lex), rt.config.Debug.Parse)
}

// ExecSource parses src and executes it against env.
func (rt *Runtime) ExecSource(src string, env *Environment) ([]Value, error) {
	prog, err := rt.Parse(src)
	if err != nil {
		return nil, err
	}
	return rt.Execute(prog, env)
}

// CacheStats reports script cache counters; all zero when the cache is
// disabled.
func (rt *Runtime) CacheStats() CacheStats {
	if rt.cache == nil {
		return CacheStats{}
	}
	return rt.cache.Stats()
}

// Execute runs prog against env with a default Runtime.
func Execute(prog *Program, env *Environment) ([]Value, error) {
	return NewRuntime(nil).Execute(prog, env)
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/superloach/sabajs/pkg/host"
	"github.com/superloach/sabajs/pkg/js"
)

const Version = "0.1.0"

const HelpMessage = `
sabajs is the script engine of the saba browser.
	sabajs v%s

By default, sabajs interprets from stdin.
	sabajs < main.js
Run scripts from source files by passing them to the interpreter.
	sabajs main.js other.js
Fetch a script over HTTP and run it with -u.
	sabajs -u http://example.com/main.js
Start an interactive repl with -r.
	sabajs -r
	> ___
Run from the command line with -e.
	sabajs -e "var a = 40; a + 2"

Options:
	-e <src>     Evaluate argument as a script
	-r           Run as an interactive repl
	-u <url>     Fetch a script over HTTP and run it
	-c <file>    Read configuration from a YAML file
	-d <mode>    Debug output: lex, parse, dump or all (repeatable)
	-o <policy>  Arithmetic overflow policy: error, wrap or saturate
	-y           Print the global environment as YAML after running
	-v           Print version string and exit
	-h           Print help message and exit

`

type options struct {
	eval     string
	hasEval  bool
	repl     bool
	url      string
	config   string
	debug    []string
	overflow string
	dumpYAML bool
}

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "e:ru:c:d:o:yvh")
	if err != nil {
		fmt.Fprintf(os.Stderr, HelpMessage, Version)
		js.LogErrf(js.ErrSystem, "%s", err)
	}
	// collect all other non-option arguments as files to be run
	files := os.Args[optind:]

	var o options
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			o.eval, o.hasEval = opt.Value, true
		case 'r':
			o.repl = true
		case 'u':
			o.url = opt.Value
		case 'c':
			o.config = opt.Value
		case 'd':
			o.debug = append(o.debug, opt.Value)
		case 'o':
			o.overflow = opt.Value
		case 'y':
			o.dumpYAML = true
		case 'v':
			// if asked for version, disregard everything else
			fmt.Printf("sabajs v%s\n", Version)
			os.Exit(0)
		case 'h':
			fmt.Printf(HelpMessage, Version)
			os.Exit(0)
		}
	}

	cfg, err := buildConfig(o)
	if err != nil {
		js.LogErrf(js.ErrSystem, "%s", err)
	}
	rt := js.NewRuntime(cfg)

	switch {
	case o.repl:
		runRepl(rt, os.Stdin)
	case o.hasEval:
		env := js.NewEnvironment()
		if _, err := rt.ExecSource(o.eval, env); err != nil {
			fatal(err)
		}
		finish(os.Stdout, o, env)
	case o.url != "":
		env := js.NewEnvironment()
		if _, err := host.NewFetcher().Run(o.url, rt, env); err != nil {
			fatal(err)
		}
		finish(os.Stdout, o, env)
	case len(files) > 0:
		failed := false
		for _, filePath := range files {
			// environment is one-per-file
			env := js.NewEnvironment()
			if err := runFile(rt, filePath, env); err != nil {
				js.LogSafeErr(js.ReasonOf(err), fmt.Sprintf("%s in %s", err, filePath))
				failed = true
				continue
			}
			finish(os.Stdout, o, env)
		}
		if failed {
			os.Exit(1)
		}
	default:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			js.LogErrf(js.ErrSystem, "could not read stdin:\n\t-> %s", err)
		}
		env := js.NewEnvironment()
		if _, err := rt.ExecSource(string(src), env); err != nil {
			fatal(err)
		}
		finish(os.Stdout, o, env)
	}
}

// buildConfig layers command line flags over the optional config file.
func buildConfig(o options) (*js.Config, error) {
	cfg := &js.Config{}
	if o.config != "" {
		var err error
		cfg, err = js.LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
	}

	for _, mode := range o.debug {
		switch mode {
		case "lex":
			cfg.Debug.Lex = true
		case "parse":
			cfg.Debug.Parse = true
		case "dump":
			cfg.Debug.Dump = true
		case "all":
			cfg.Debug = js.DebugConfig{Lex: true, Parse: true, Dump: true}
		default:
			return nil, fmt.Errorf("unknown debug mode %q", mode)
		}
	}

	if o.overflow != "" {
		policy, err := js.ParseOverflowPolicy(o.overflow)
		if err != nil {
			return nil, err
		}
		cfg.Overflow = policy
	}
	return cfg, nil
}

func runFile(rt *js.Runtime, filePath string, env *js.Environment) error {
	// expand out ~ for $HOME, which is not done by shells
	if strings.HasPrefix(filePath, "~"+string(os.PathSeparator)) {
		filePath = os.Getenv("HOME") + string(os.PathSeparator) + filePath[2:]
	}

	src, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("could not open %s for execution: %w", filePath, err)
	}
	_, err = rt.ExecSource(string(src), env)
	return err
}

func runRepl(rt *js.Runtime, in io.Reader) {
	env := js.NewEnvironment()
	reader := bufio.NewReader(in)
	var last *js.Program

	for {
		fmt.Fprint(color.Output, js.Prompt)
		text, err := reader.ReadString('\n')
		if err == io.EOF && text == "" {
			return
		} else if err != nil && err != io.EOF {
			js.LogErrf(js.ErrSystem, "unexpected end of input:\n\t-> %s", err)
		}

		switch strings.TrimSpace(text) {
		// introspection directives in a repl session
		case "@dump":
			js.LogDebug("environment dump", env.String())
			continue
		case "@stats":
			st := rt.CacheStats()
			js.LogInteractivef("cache: %d entries, %d hits, %d misses", st.Entries, st.Hits, st.Misses)
			if last != nil {
				js.LogInteractivef("last program: %x", last.Fingerprint())
			}
			continue
		case "@exit":
			return
		}

		// the session keeps going after a failed line, the user
		// sees the error either way
		prog, err := rt.Parse(text)
		if err != nil {
			js.LogError(err)
			continue
		}
		last = prog

		vals, err := rt.Execute(prog, env)
		for _, v := range vals {
			js.LogInteractive(v.String())
		}
		if err != nil {
			js.LogError(err)
		}
	}
}

func finish(w io.Writer, o options, env *js.Environment) {
	if !o.dumpYAML {
		return
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(env); err != nil {
		js.LogErrf(js.ErrSystem, "could not encode environment:\n\t-> %s", err)
	}
}

func fatal(err error) {
	reason := js.ReasonOf(err)
	if reason == js.ErrUnknown {
		reason = js.ErrSystem
	}
	js.LogErr(reason, err.Error())
}

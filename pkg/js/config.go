package js

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OverflowPolicy decides what unsigned arithmetic does when a result
// leaves the 64-bit range.
type OverflowPolicy string

const (
	// OverflowError fails the expression with ErrNumericOverflow.
	OverflowError OverflowPolicy = "error"
	// OverflowWrap wraps modulo 2^64.
	OverflowWrap OverflowPolicy = "wrap"
	// OverflowSaturate clamps to 0 or the largest uint64.
	OverflowSaturate OverflowPolicy = "saturate"
)

// ParseOverflowPolicy validates a policy name.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch p := OverflowPolicy(s); p {
	case OverflowError, OverflowWrap, OverflowSaturate:
		return p, nil
	case "":
		return OverflowError, nil
	default:
		return "", fmt.Errorf("unknown overflow policy %q", s)
	}
}

func (p *OverflowPolicy) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: overflow policy must be a string", value.Line)
	}
	parsed, err := ParseOverflowPolicy(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

// DebugConfig defines any debugging flags referenced at runtime
type DebugConfig struct {
	Lex   bool `yaml:"lex"`
	Parse bool `yaml:"parse"`
	Dump  bool `yaml:"dump"`
}

// Config controls a Runtime.
type Config struct {
	Debug    DebugConfig    `yaml:"debug"`
	Overflow OverflowPolicy `yaml:"overflow"`
	// CacheSize bounds the number of parsed scripts kept by ExecSource.
	// Zero means the default, a negative value disables the cache.
	CacheSize int `yaml:"cacheSize"`
}

const defaultCacheSize = 64

func (c *Config) normalize() Config {
	if c == nil {
		return Config{Overflow: OverflowError, CacheSize: defaultCacheSize}
	}

	out := *c
	if out.Overflow == "" {
		out.Overflow = OverflowError
	}
	if out.CacheSize == 0 {
		out.CacheSize = defaultCacheSize
	}
	return out
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	return DecodeConfig(file)
}

// DecodeConfig reads a YAML config from r. An empty document yields the
// default config.
func DecodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	out := cfg.normalize()
	return &out, nil
}

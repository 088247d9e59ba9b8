// Package config loads CLI defaults from a TOML or YAML file and ARITH_*
// environment variables. Command-line flags override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARITH"

// EnvFile names the variable holding the config file path when --config
// is not given.
const EnvFile = EnvPrefix + "_CONFIG"

// FileFormat is the syntax of a config file.
type FileFormat int

const (
	FormatTOML FileFormat = iota
	FormatYAML
)

func (f FileFormat) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds defaults for the arith commands.
type Config struct {
	// Format is the tree output format: prefix, infix, json or pool.
	Format string `toml:"format" yaml:"format"`
	// Whitespace selects the separator set: "unicode" (the default, so
	// files and stdin may span lines) skips any Unicode white space,
	// "space" only U+0020.
	Whitespace string `toml:"whitespace" yaml:"whitespace"`
	// MaxDepth bounds parenthesis nesting. Zero means unlimited.
	MaxDepth  int    `toml:"max_depth" yaml:"max_depth"`
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Format:     "prefix",
		Whitespace: "unicode",
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := c.decode(content, detectFormat(path)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromString parses content over the defaults without consulting the
// environment.
func LoadFromString(content string, format FileFormat) (*Config, error) {
	c := Default()
	if err := c.decode([]byte(content), format); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func detectFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// decode rejects keys that Config does not define.
func (c *Config) decode(content []byte, format FileFormat) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), c)
		if err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(envKey("format")); ok {
		c.Format = v
	}
	if v, ok := os.LookupEnv(envKey("whitespace")); ok {
		c.Whitespace = v
	}
	if v, ok := os.LookupEnv(envKey("max_depth")); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envKey("max_depth"), err)
		}
		c.MaxDepth = n
	}
	if v, ok := os.LookupEnv(envKey("verbosity")); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envKey("verbosity"), err)
		}
		c.Verbosity = n
	}
	if v, ok := os.LookupEnv(envKey("log_file")); ok {
		c.LogFile = v
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case "prefix", "infix", "json", "pool":
	default:
		return fmt.Errorf("format: unknown format %q", c.Format)
	}
	switch c.Whitespace {
	case "space", "unicode":
	default:
		return fmt.Errorf("whitespace: want space or unicode, got %q", c.Whitespace)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth: must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

func (c *Config) LexerOptions() []lexer.Option {
	if c.Whitespace == "unicode" {
		return []lexer.Option{lexer.WithSpace(unicode.IsSpace)}
	}
	return nil
}

func (c *Config) ParserOptions() []parser.Option {
	if c.MaxDepth > 0 {
		return []parser.Option{parser.WithMaxDepth(c.MaxDepth)}
	}
	return nil
}

// LogPath returns the log file for commonlog.Configure, nil for stderr.
func (c *Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	return &c.LogFile
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
	if len(c.LexerOptions()) != 1 {
		t.Error("default whitespace should skip Unicode spaces")
	}
	if c.ParserOptions() != nil || c.LogPath() != nil {
		t.Error("defaults should not bound depth or log to a file")
	}
}

func TestLoadFiles(t *testing.T) {
	want := &Config{
		Format:     "infix",
		Whitespace: "unicode",
		MaxDepth:   64,
		Verbosity:  2,
		LogFile:    "/tmp/arith.log",
	}
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "arith.toml", `
format = "infix"
whitespace = "unicode"
max_depth = 64
verbosity = 2
log_file = "/tmp/arith.log"
`},
		{"yaml", "arith.yaml", `
format: infix
whitespace: unicode
max_depth: 64
verbosity: 2
log_file: /tmp/arith.log
`},
		{"yml", "arith.yml", `{format: infix, whitespace: unicode, max_depth: 64, verbosity: 2, log_file: /tmp/arith.log}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, c); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
			if len(c.LexerOptions()) != 1 || len(c.ParserOptions()) != 1 {
				t.Error("expected one lexer and one parser option")
			}
			if p := c.LogPath(); p == nil || *p != "/tmp/arith.log" {
				t.Errorf("LogPath = %v", p)
			}
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	c, err := LoadFromString(`max_depth = 3`, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if c.Format != "prefix" || c.Whitespace != "unicode" || c.MaxDepth != 3 {
		t.Errorf("got %+v", c)
	}

	c, err = LoadFromString("", FormatYAML)
	if err != nil {
		t.Fatalf("empty YAML: %v", err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("empty YAML mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  FileFormat
		wantErr string
	}{
		{"unknown toml key", `colour = "red"`, FormatTOML, `unknown config key "colour"`},
		{"unknown yaml key", "colour: red\n", FormatYAML, "YAML parse error"},
		{"bad toml", `format = `, FormatTOML, "TOML parse error"},
		{"bad format", `format = "sexpr"`, FormatTOML, `unknown format "sexpr"`},
		{"bad whitespace", "whitespace: tabs\n", FormatYAML, "want space or unicode"},
		{"negative depth", `max_depth = -1`, FormatTOML, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromString(tt.content, tt.format)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "arith.toml", `format = "infix"`+"\n"+`max_depth = 5`)
	t.Setenv("ARITH_FORMAT", "json")
	t.Setenv("ARITH_MAX_DEPTH", "9")
	t.Setenv("ARITH_WHITESPACE", "space")
	t.Setenv("ARITH_VERBOSITY", "1")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{Format: "json", Whitespace: "space", MaxDepth: 9, Verbosity: 1}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("ARITH_MAX_DEPTH", "deep")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "ARITH_MAX_DEPTH") {
		t.Errorf("error = %v, want ARITH_MAX_DEPTH parse error", err)
	}
}

func TestFileFormatString(t *testing.T) {
	if FormatTOML.String() != "toml" || FormatYAML.String() != "yaml" || FileFormat(9).String() != "unknown" {
		t.Error("unexpected FileFormat names")
	}
	if detectFormat("a.YML") != FormatYAML || detectFormat("a.conf") != FormatTOML {
		t.Error("detectFormat picked the wrong format")
	}
}

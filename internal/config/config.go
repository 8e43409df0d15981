// Package config loads monkey's settings from a TOML or YAML file.
//
// Every field has a default, so a config file only needs the keys it wants to
// change. Unknown keys are rejected rather than silently ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "MONKEY_CONFIG"

type Config struct {
	REPL REPLConfig `toml:"repl" yaml:"repl"`
	Log  LogConfig  `toml:"log" yaml:"log"`
	Eval EvalConfig `toml:"eval" yaml:"eval"`
}

type REPLConfig struct {
	Prompt             string `toml:"prompt" yaml:"prompt"`
	ContinuationPrompt string `toml:"continuation_prompt" yaml:"continuation_prompt"`
	HistoryFile        string `toml:"history_file" yaml:"history_file"` // "" disables history
	Color              bool   `toml:"color" yaml:"color"`
	Banner             bool   `toml:"banner" yaml:"banner"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

type EvalConfig struct {
	MaxCallDepth int `toml:"max_call_depth" yaml:"max_call_depth"` // 0 = unlimited
}

// Levels accepted by Log.Level, as understood by fortio.org/log.
var Levels = []string{"debug", "verbose", "info", "warning", "error", "critical", "fatal"}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:             ">> ",
			ContinuationPrompt: ".. ",
			HistoryFile:        "~/.monkey_history",
			Color:              true,
			Banner:             true,
		},
		Log:  LogConfig{Level: "warning"},
		Eval: EvalConfig{MaxCallDepth: 10000},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Eval.MaxCallDepth < 0 {
		return fmt.Errorf("eval.max_call_depth must be >= 0, got %d", c.Eval.MaxCallDepth)
	}
	lvl := strings.ToLower(c.Log.Level)
	for _, l := range Levels {
		if l == lvl {
			return nil
		}
	}
	return fmt.Errorf("log.level %q is not one of %s", c.Log.Level, strings.Join(Levels, ", "))
}

// Load reads path over the defaults. The format follows the extension:
// .toml, or .yaml / .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q (want .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	log.LogVf("loaded config from %s", path)
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Discover returns the config file to use when none is given explicitly:
// $MONKEY_CONFIG if set, else the first existing
// ~/.config/monkey/config.{toml,yaml,yml}. It returns "" when there is none.
func Discover() string {
	home, _ := os.UserHomeDir()
	return discover(os.Getenv, home)
}

func discover(getenv func(string) string, home string) string {
	if p := getenv(EnvVar); p != "" {
		return p
	}
	if home == "" {
		return ""
	}
	dir := filepath.Join(home, ".config", "monkey")
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// Resolve loads path, or the discovered file when path is "", or falls back
// to the defaults. The second result is the file actually read ("" for none).
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		path = Discover()
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

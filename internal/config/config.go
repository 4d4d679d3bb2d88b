// Package config loads the global configuration from the tasks
// directory. Settings layer as flags > environment (MONT_*) > config.yml
// > defaults, with the file itself decoded strictly so typos surface
// instead of silently disabling behavior.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

// FileName is the configuration file inside the tasks directory.
const FileName = "config.yml"

// VCS controls snapshot commits after successful mutations.
type VCS struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// Config is the global configuration. DefaultGates are applied, in
// order, ahead of every task's own gates.
type Config struct {
	DefaultGates []string `yaml:"default_gates" mapstructure:"default_gates"`
	VCS          VCS      `yaml:"vcs" mapstructure:"vcs"`
	Editor       string   `yaml:"editor" mapstructure:"editor"`
}

// Load reads the configuration from dir. A missing file yields the zero
// config; a malformed or unknown-key file is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if data, err := os.ReadFile(path); err == nil {
		// Strict pre-pass: viper tolerates unknown keys, the file decode
		// must not.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		var strict Config
		if err := dec.Decode(&strict); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("default_gates", []string{})
	v.SetDefault("vcs.enabled", false)
	v.SetDefault("editor", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration against a formed graph: every
// default gate name must resolve to a root validator.
func (c *Config) Validate(g *graph.TaskGraph) error {
	for _, name := range c.DefaultGates {
		t, ok := g.Get(name)
		if !ok {
			return fmt.Errorf("default gate %q does not exist, create a validator record for it", name)
		}
		if t.Kind != task.KindValidator {
			return fmt.Errorf("default gate %q is a %s, default gates must be validator records", name, t.Kind)
		}
		if len(t.Before) > 0 {
			return fmt.Errorf("default gate %q is contained in another task, default gates must be root validators", name)
		}
	}
	return nil
}

// Write persists the configuration to dir in its canonical YAML shape.
func (c *Config) Write(dir string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, FileName), out, 0o644)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"specgen/assets"
	"specgen/internal/features/ecosystem"
	"specgen/internal/features/versionsync"
)

// FileName is the optional project configuration file in the package root
const FileName = "specgen.toml"

// RunnerConfig selects the external script runner
type RunnerConfig struct {
	// Binary is invoked as `<binary> run <script>`
	Binary string `toml:"binary"`
}

// Config represents specgen configuration options
type Config struct {
	Runner RunnerConfig `toml:"runner"`

	// Components is the version-sync registry, processed in order
	Components []versionsync.Component `toml:"components"`

	// Process overrides the generated process-manager entry
	Process ecosystem.Overrides `toml:"process"`
}

// Default returns the embedded default configuration
func Default() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(assets.GetDefaultConfig()), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}
	return &cfg, nil
}

// Load returns the default configuration overlaid with dir/specgen.toml when
// that file exists
func Load(dir string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.Validate()
	}

	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Runner.Binary != "" {
		c.Runner.Binary = o.Runner.Binary
	}
	if len(o.Components) > 0 {
		c.Components = o.Components
	}

	p := &c.Process
	if o.Process.Name != "" {
		p.Name = o.Process.Name
	}
	if o.Process.Script != "" {
		p.Script = o.Process.Script
	}
	if o.Process.Cwd != "" {
		p.Cwd = o.Process.Cwd
	}
	if o.Process.Instances != 0 {
		p.Instances = o.Process.Instances
	}
	if o.Process.ExecMode != "" {
		p.ExecMode = o.Process.ExecMode
	}
	if o.Process.MaxMemoryRestart != "" {
		p.MaxMemoryRestart = o.Process.MaxMemoryRestart
	}
	if len(o.Process.Env) > 0 {
		if p.Env == nil {
			p.Env = make(map[string]string, len(o.Process.Env))
		}
		maps.Copy(p.Env, o.Process.Env)
	}
}

// Validate checks the configuration for values no command can work with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Runner.Binary) == "" {
		return fmt.Errorf("runner.binary must not be empty")
	}

	seen := make(map[string]bool, len(c.Components))
	for i, comp := range c.Components {
		if comp.Name == "" || comp.Dir == "" || comp.Package == "" {
			return fmt.Errorf("components[%d]: name, dir and package are required", i)
		}
		if seen[comp.Name] {
			return fmt.Errorf("components[%d]: duplicate component %q", i, comp.Name)
		}
		seen[comp.Name] = true
	}

	if c.Process.Instances < 0 {
		return fmt.Errorf("process.instances must not be negative")
	}

	return nil
}

package ecosystem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCwd is used when neither the configuration nor $PWD names a directory
	DefaultCwd = "/home/ubuntu/specgen-app"

	// APIKeyEnv is the credential passed through to the server
	APIKeyEnv = "OPENAI_API_KEY"

	// PlaceholderAPIKey keeps the server bootable when no credential is available
	PlaceholderAPIKey = "sk-test1234"
)

// Output formats accepted by Render
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// App is a single pm2 application entry
type App struct {
	Name             string         `json:"name" yaml:"name"`
	Script           string         `json:"script" yaml:"script"`
	Cwd              string         `json:"cwd" yaml:"cwd"`
	Env              map[string]any `json:"env" yaml:"env"`
	Instances        int            `json:"instances" yaml:"instances"`
	ExecMode         string         `json:"exec_mode" yaml:"exec_mode"`
	MaxMemoryRestart string         `json:"max_memory_restart" yaml:"max_memory_restart"`
	Time             bool           `json:"time" yaml:"time"`
	Watch            bool           `json:"watch" yaml:"watch"`
	ErrorFile        string         `json:"error_file" yaml:"error_file"`
	OutFile          string         `json:"out_file" yaml:"out_file"`
	LogFile          string         `json:"log_file" yaml:"log_file"`
}

// File is a pm2 process file
type File struct {
	Apps []App `json:"apps" yaml:"apps"`
}

// Overrides replace individual defaults. Zero values keep the default.
type Overrides struct {
	Name             string            `toml:"name"`
	Script           string            `toml:"script"`
	Cwd              string            `toml:"cwd"`
	Instances        int               `toml:"instances"`
	ExecMode         string            `toml:"exec_mode"`
	MaxMemoryRestart string            `toml:"max_memory_restart"`
	Env              map[string]string `toml:"env"`
}

// Options controls how the process file is assembled
type Options struct {
	Getenv    func(string) string
	Overrides Overrides
	// Secrets are decrypted values layered over the configured env
	Secrets map[string]string
}

// DefaultApp returns the built-in application entry
func DefaultApp() App {
	return App{
		Name:   "specgen",
		Script: "./server/index.js",
		Cwd:    DefaultCwd,
		Env: map[string]any{
			"NODE_ENV": "production",
			"PORT":     80,
			"HOST":     "0.0.0.0",
			APIKeyEnv:  PlaceholderAPIKey,
		},
		Instances:        1,
		ExecMode:         "fork",
		MaxMemoryRestart: "500M",
		Time:             true,
		Watch:            false,
		ErrorFile:        "./logs/err.log",
		OutFile:          "./logs/out.log",
		LogFile:          "./logs/combined.log",
	}
}

// Build assembles the process file. Env values are layered as built-in
// defaults, configured overrides, decrypted secrets, then the credential from
// the process environment.
func Build(opts Options) File {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	app := DefaultApp()
	if pwd := getenv("PWD"); pwd != "" {
		app.Cwd = pwd
	}

	app.apply(opts.Overrides)
	setEnv(app.Env, opts.Secrets)

	if key := getenv(APIKeyEnv); key != "" {
		app.Env[APIKeyEnv] = key
	}

	return File{Apps: []App{app}}
}

func (a *App) apply(o Overrides) {
	if o.Name != "" {
		a.Name = o.Name
	}
	if o.Script != "" {
		a.Script = o.Script
	}
	if o.Cwd != "" {
		a.Cwd = o.Cwd
	}
	if o.Instances > 0 {
		a.Instances = o.Instances
	}
	if o.ExecMode != "" {
		a.ExecMode = o.ExecMode
	}
	if o.MaxMemoryRestart != "" {
		a.MaxMemoryRestart = o.MaxMemoryRestart
	}
	setEnv(a.Env, o.Env)
}

func setEnv(env map[string]any, values map[string]string) {
	for k, v := range values {
		env[k] = v
	}
}

// Render writes f in the requested format
func Render(w io.Writer, f File, format string) error {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode process file: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("failed to encode process file: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown format: %s\nValid formats: json, yaml", format)
	}
}

package versionsync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"specgen/internal/features/manifest"
)

// Component is a sub-project whose version tracks the root manifest
type Component struct {
	Name    string `toml:"name"`
	Dir     string `toml:"dir"`
	Package string `toml:"package"`
}

// DefaultComponents returns the built-in component registry in processing order
func DefaultComponents() []Component {
	return []Component{
		{Name: "server", Dir: "server", Package: "@gv-sh/specgen-server"},
		{Name: "admin", Dir: "admin", Package: "@gv-sh/specgen-admin"},
		{Name: "user", Dir: "user", Package: "@gv-sh/specgen-user"},
	}
}

// Status is the per-component outcome of a sync run
type Status int

const (
	StatusAlreadySynced Status = iota
	StatusUpdated
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusAlreadySynced:
		return "already synced"
	case StatusUpdated:
		return "updated"
	case StatusNotFound:
		return "not found"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result records what happened to one component
type Result struct {
	Component Component
	Status    Status
	Old       string
	New       string
}

// Report collects the results of a sync run in registry order
type Report struct {
	Results []Result
}

// Changed returns the number of components whose version differed
func (r *Report) Changed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusUpdated {
			n++
		}
	}
	return n
}

// Options defines options for a sync run
type Options struct {
	Root       string
	Components []Component
	// Check reports differences without writing any manifest
	Check bool
	Out   io.Writer
}

// DefaultOptions returns options that sync the built-in components in the
// current directory
func DefaultOptions() Options {
	return Options{
		Root:       ".",
		Components: DefaultComponents(),
		Out:        os.Stdout,
	}
}

// ErrOutOfSync is returned in check mode when at least one component differs
var ErrOutOfSync = errors.New("component versions are out of sync")

// Sync copies the version declared for each component in the root manifest's
// dependencies into the component's own manifest. A missing component
// manifest is reported and skipped; a malformed manifest aborts the run.
func Sync(opts Options) (*Report, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	root, err := manifest.Read(filepath.Join(opts.Root, manifest.FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read main package.json: %w", err)
	}

	fmt.Fprintf(out, "🔄 Syncing versions from main package.json...\n")

	report := &Report{}
	for _, comp := range opts.Components {
		res, err := syncComponent(opts, root, comp)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
		printResult(out, res, opts.Check)
	}

	if opts.Check {
		if n := report.Changed(); n > 0 {
			fmt.Fprintf(out, "⚠️  %d component(s) out of sync\n", n)
			return report, ErrOutOfSync
		}
		fmt.Fprintf(out, "✨ All versions in sync!\n")
		return report, nil
	}

	fmt.Fprintf(out, "✨ Version sync complete!\n")
	return report, nil
}

func syncComponent(opts Options, root *manifest.Manifest, comp Component) (Result, error) {
	res := Result{Component: comp}

	expected, hasExpected := root.Dependency(comp.Package)

	path := filepath.Join(opts.Root, comp.Dir, manifest.FileName)
	local, err := manifest.Read(path)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			res.Status = StatusNotFound
			return res, nil
		}
		return res, err
	}

	current, hasCurrent := local.Version()
	res.Old = display(current, hasCurrent)
	res.New = display(expected, hasExpected)

	if sameValue(current, hasCurrent, expected, hasExpected) {
		res.Status = StatusAlreadySynced
		return res, nil
	}

	res.Status = StatusUpdated
	if opts.Check {
		return res, nil
	}

	if hasExpected {
		local.Set("version", expected)
	} else {
		// an undeclared dependency leaves the component without a version
		local.Delete("version")
	}

	if err := local.WriteFile(path); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return res, nil
}

func printResult(w io.Writer, res Result, check bool) {
	name := res.Component.Name
	switch res.Status {
	case StatusUpdated:
		if check {
			fmt.Fprintf(w, "📦 %s: %s → %s (would update)\n", name, res.Old, res.New)
			return
		}
		fmt.Fprintf(w, "📦 %s: %s → %s\n", name, res.Old, res.New)
	case StatusAlreadySynced:
		fmt.Fprintf(w, "✅ %s: %s (already synced)\n", name, res.Old)
	case StatusNotFound:
		fmt.Fprintf(w, "❌ %s: package.json not found\n", name)
	}
}

// sameValue compares two optional JSON values by their exact compact text
func sameValue(a json.RawMessage, aok bool, b json.RawMessage, bok bool) bool {
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return bytes.Equal(compact(a), compact(b))
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

func display(raw json.RawMessage, ok bool) string {
	if !ok {
		return "undefined"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(compact(raw))
}

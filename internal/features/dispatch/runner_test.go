package dispatch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/features/dispatch"
)

// fakeRunnerScript stands in for npm: it records its working directory and
// arguments, and fails when asked to run the "broken" script.
const fakeRunnerScript = `#!/bin/sh
pwd > invocation.txt
echo "$@" >> invocation.txt
echo "running $2"
if [ "$2" = "broken" ]; then
  echo "boom" >&2
  exit 3
fi
`

func writeFakeRunner(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based fake runner requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-npm")
	require.NoError(t, os.WriteFile(path, []byte(fakeRunnerScript), 0o755))
	return path
}

func TestScriptRunner(t *testing.T) {
	t.Run("should run the script in the given directory", func(t *testing.T) {
		bin := writeFakeRunner(t)
		dir := t.TempDir()
		var stdout bytes.Buffer

		r := &dispatch.ScriptRunner{Binary: bin, Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &bytes.Buffer{}}
		require.NoError(t, r.Run(context.Background(), dir, "deploy:ec2"))

		data, err := os.ReadFile(filepath.Join(dir, "invocation.txt"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)

		wantDir, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		gotDir, err := filepath.EvalSymlinks(lines[0])
		require.NoError(t, err)
		assert.Equal(t, wantDir, gotDir)
		assert.Equal(t, "run deploy:ec2", lines[1])
		assert.Equal(t, "running deploy:ec2\n", stdout.String())
	})

	t.Run("should report the exit status of a failing script", func(t *testing.T) {
		bin := writeFakeRunner(t)
		var stderr bytes.Buffer

		r := &dispatch.ScriptRunner{Binary: bin, Stdout: &bytes.Buffer{}, Stderr: &stderr}
		err := r.Run(context.Background(), t.TempDir(), "broken")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "run broken (exit status 3)")
		assert.Equal(t, "boom\n", stderr.String())
	})

	t.Run("should report a missing runner binary", func(t *testing.T) {
		r := dispatch.NewScriptRunner(filepath.Join(t.TempDir(), "missing-npm"))

		err := r.Run(context.Background(), t.TempDir(), "setup")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run")
	})

	t.Run("should default to npm", func(t *testing.T) {
		assert.Equal(t, "npm", dispatch.NewScriptRunner("").Binary)
	})
}

func TestFindPackageRoot(t *testing.T) {
	t.Run("should find the manifest one level above the install directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{}`), 0o644))
		binDir := filepath.Join(root, "bin")
		require.NoError(t, os.Mkdir(binDir, 0o755))

		got, err := dispatch.FindPackageRoot(binDir)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("should fail when the manifest is absent", func(t *testing.T) {
		binDir := filepath.Join(t.TempDir(), "bin")
		require.NoError(t, os.Mkdir(binDir, 0o755))

		_, err := dispatch.FindPackageRoot(binDir)

		assert.ErrorIs(t, err, dispatch.ErrRootNotFound)
		assert.Contains(t, err.Error(), "could not locate package root directory")
	})

	t.Run("should not accept a directory named like the manifest", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "package.json"), 0o755))

		_, err := dispatch.FindPackageRoot(filepath.Join(root, "bin"))
		assert.ErrorIs(t, err, dispatch.ErrRootNotFound)
	})
}

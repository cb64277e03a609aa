package dispatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"specgen/internal/features/manifest"
)

// ErrRootNotFound is returned when no package manifest sits at the expected
// offset from the install directory
var ErrRootNotFound = errors.New("could not locate package root directory")

// FindPackageRoot returns the package root for a binary installed in
// installDir. The binary lives in <root>/bin, both when run in place and when
// installed under node_modules, so the manifest is always one level up.
func FindPackageRoot(installDir string) (string, error) {
	manifestPath := filepath.Join(installDir, "..", manifest.FileName)

	info, err := os.Stat(manifestPath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s not found", ErrRootNotFound, manifestPath)
	}

	root, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	return root, nil
}

// InstallDir returns the directory holding the running executable, with
// symlinks such as node_modules/.bin entries resolved
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to determine executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// LocateRoot resolves the package root of the running executable
func LocateRoot() (string, error) {
	dir, err := InstallDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	return FindPackageRoot(dir)
}

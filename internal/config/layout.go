package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const HomeEnv = "SCUMGUARD_HOME"

// Layout locates the files shared with the GUI shell under one root.
type Layout struct {
	Root string
}

func (l Layout) ConfigFile() string { return filepath.Join(l.Root, "config", "config.json") }
func (l Layout) PathFile() string   { return filepath.Join(l.Root, "config", "path.ini") }
func (l Layout) StatusFile() string { return filepath.Join(l.Root, "data", "data.ini") }
func (l Layout) LogFile() string    { return filepath.Join(l.Root, "data", "log.txt") }

func (l Layout) EnvFile() string { return filepath.Join(l.Root, ".env") }

// ResolveLayout picks the root from the flag, then SCUMGUARD_HOME, then the
// executable's directory.
func ResolveLayout(flag string) (Layout, error) {
	if root := strings.TrimSpace(flag); root != "" {
		return newLayout(root)
	}
	if root := strings.TrimSpace(os.Getenv(HomeEnv)); root != "" {
		return newLayout(root)
	}
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, fmt.Errorf("locating executable: %w", err)
	}
	return newLayout(filepath.Dir(exe))
}

func newLayout(root string) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving root %s: %w", root, err)
	}
	return Layout{Root: abs}, nil
}

// CreateDefault writes the default run configuration unless the file
// already exists. It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := writeConfig(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

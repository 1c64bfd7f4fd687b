// Package savepath locates the SCUM save database.
package savepath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

var ErrNotFound = errors.New("SCUM.db not found")

const (
	section = "paths"
	key     = "db_path"

	steamAppID = "513710"
)

var protonSaveDir = []string{
	"steamapps", "compatdata", steamAppID, "pfx", "drive_c", "users", "steamuser",
	"AppData", "Local", "SCUM", "Saved", "SaveFiles", "SCUM.db",
}

// Candidates lists the default install locations for goos, in the order
// they are tried.
func Candidates(goos string, getenv func(string) string, home string) []string {
	switch goos {
	case "windows":
		local := getenv("LOCALAPPDATA")
		if local == "" {
			return nil
		}
		return []string{filepath.Join(local, "SCUM", "Saved", "SaveFiles", "SCUM.db")}
	case "linux":
		if home == "" {
			return nil
		}
		roots := []string{
			filepath.Join(home, "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		}
		paths := make([]string, 0, len(roots))
		for _, root := range roots {
			paths = append(paths, filepath.Join(append([]string{root}, protonSaveDir...)...))
		}
		return paths
	default:
		return nil
	}
}

type Resolver struct {
	PathFile   string
	Candidates []string
	Log        logrus.FieldLogger
}

func NewResolver(pathFile string, log logrus.FieldLogger) *Resolver {
	home, _ := os.UserHomeDir()
	return &Resolver{
		PathFile:   pathFile,
		Candidates: Candidates(runtime.GOOS, os.Getenv, home),
		Log:        log.WithField("component", "savepath"),
	}
}

func Detect(pathFile string, log logrus.FieldLogger) (string, error) {
	return NewResolver(pathFile, log).Detect()
}

// Detect tries the override file, then the default locations. When
// nothing exists it records the need for manual configuration in the
// override file, but never clears a value the user already set.
func (r *Resolver) Detect() (string, error) {
	file, loadErr := r.loadPathFile()

	if file != nil {
		if sec, err := file.GetSection(section); err == nil && sec.HasKey(key) {
			if path := strings.TrimSpace(sec.Key(key).String()); path != "" && Exists(path) {
				return path, nil
			}
		}
	}

	for _, path := range r.Candidates {
		if Exists(path) {
			return path, nil
		}
	}

	if loadErr != nil {
		r.Log.WithError(loadErr).Errorf("[LOGIC] Could not read %s; leaving it unchanged.", r.PathFile)
		return "", ErrNotFound
	}

	if file == nil {
		file = ini.Empty()
	}
	sec := file.Section(section)
	if sec.HasKey(key) {
		r.Log.Warn("[LOGIC] The SCUM.db path is invalid, but db_path was left unchanged.")
		return "", ErrNotFound
	}

	sec.Key(key).SetValue("")
	if err := r.savePathFile(file); err != nil {
		r.Log.WithError(err).Errorf("[LOGIC] Could not write %s", r.PathFile)
	}
	r.Log.Warn("[LOGIC] SCUM.db was not found. Please enter the path manually in path.ini, section [paths], key: db_path.")
	return "", ErrNotFound
}

func (r *Resolver) loadPathFile() (*ini.File, error) {
	if _, err := os.Stat(r.PathFile); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	file, err := ini.Load(r.PathFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.PathFile, err)
	}
	return file, nil
}

func (r *Resolver) savePathFile(file *ini.File) error {
	if err := os.MkdirAll(filepath.Dir(r.PathFile), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := file.SaveTo(r.PathFile); err != nil {
		return fmt.Errorf("saving %s: %w", r.PathFile, err)
	}
	return nil
}

// Exists reports whether path names a regular file right now.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Package status writes the files the GUI shell polls: data.ini with the
// acting player and zone count, and log.txt with timestamped console lines.
package status

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/ini.v1"
)

const (
	prisonerSection = "prisoner"
	nameKey         = "name"
	zonesSection    = "all_zones"
	countKey        = "count"
)

// Fields is a partial status update. A nil field is left as it was, not
// cleared.
type Fields struct {
	PlayerName *string
	ZoneCount  *int
}

// Record is the process's view of data.ini. Every update rewrites the whole
// file from memory.
type Record struct {
	path string

	mu   sync.Mutex
	file *ini.File
}

func NewRecord(path string) *Record {
	return &Record{path: path, file: ini.Empty()}
}

func (r *Record) Update(f Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.PlayerName != nil {
		r.file.Section(prisonerSection).Key(nameKey).SetValue(*f.PlayerName)
	}
	if f.ZoneCount != nil {
		r.file.Section(zonesSection).Key(countKey).SetValue(strconv.Itoa(*f.ZoneCount))
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating status directory: %w", err)
	}
	if err := r.file.SaveTo(r.path); err != nil {
		return fmt.Errorf("writing %s: %w", r.path, err)
	}
	return nil
}

func (r *Record) SetPlayerName(name string) error {
	return r.Update(Fields{PlayerName: &name})
}

func (r *Record) SetZoneCount(n int) error {
	return r.Update(Fields{ZoneCount: &n})
}

type Snapshot struct {
	PlayerName string
	ZoneCount  int
	HasPlayer  bool
	HasZones   bool
}

// ReadRecord parses a data.ini written by any process. A missing file is an
// empty snapshot.
func ReadRecord(path string) (Snapshot, error) {
	var snap Snapshot

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return snap, fmt.Errorf("loading %s: %w", path, err)
	}

	if sec, err := file.GetSection(prisonerSection); err == nil && sec.HasKey(nameKey) {
		snap.PlayerName = sec.Key(nameKey).String()
		snap.HasPlayer = true
	}
	if sec, err := file.GetSection(zonesSection); err == nil && sec.HasKey(countKey) {
		n, err := sec.Key(countKey).Int()
		if err != nil {
			return snap, fmt.Errorf("parsing zone count: %w", err)
		}
		snap.ZoneCount = n
		snap.HasZones = true
	}
	return snap, nil
}

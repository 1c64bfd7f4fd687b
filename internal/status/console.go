package status

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const timeLayout = "15:04:05"

const Banner = "[SaveItems] Module Loaded..."

// Console is the append-only log.txt read by the GUI console view. The file
// is opened per line so a reader truncating or deleting it never wedges the
// writer.
type Console struct {
	path string

	mu sync.Mutex
}

func NewConsole(path string) *Console {
	return &Console{path: path}
}

// Reset truncates the file to a single untimestamped banner line.
func (c *Console) Reset(banner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	if err := os.WriteFile(c.path, []byte(banner+"\n"), 0o644); err != nil {
		return fmt.Errorf("resetting %s: %w", c.path, err)
	}
	return nil
}

// appendAt writes one line stamped with t. ConsoleHook is its only caller.
func (c *Console) appendAt(t time.Time, message string) error {
	line := "[" + t.Format(timeLayout) + "] " + strings.TrimRight(message, "\n") + "\n"

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.path, err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", c.path, err)
	}
	return f.Close()
}

// Tail returns up to the last n lines of the console file.
func Tail(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

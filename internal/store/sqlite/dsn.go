package sqlite

import (
	"fmt"
	"net/url"
	"strings"
)

// connectionPragmas keep the game process unblocked: a short busy timeout
// fails fast on its locks, WAL lets both sides work at once, and
// read_uncommitted accepts rows that are still in flight.
var connectionPragmas = []string{
	"busy_timeout(1000)",
	"journal_mode(WAL)",
	"locking_mode(NORMAL)",
	"synchronous(NORMAL)",
	"read_uncommitted(true)",
}

func buildDSN(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("database path is empty")
	}
	if strings.HasPrefix(path, "file:") {
		return "", fmt.Errorf("expected a filesystem path, got URI %q", path)
	}
	if strings.Contains(path, "?") {
		return "", fmt.Errorf("database path must not contain '?': %q", path)
	}

	params := url.Values{}
	for _, pragma := range connectionPragmas {
		params.Add("_pragma", pragma)
	}
	return path + "?" + params.Encode(), nil
}

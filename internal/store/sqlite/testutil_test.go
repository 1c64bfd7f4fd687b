package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

const saveSchema = `
CREATE TABLE user_profile (id INTEGER PRIMARY KEY, name TEXT);
CREATE TABLE entity_system (id INTEGER PRIMARY KEY, user_profile_id INTEGER);
CREATE TABLE entity (
	id               INTEGER PRIMARY KEY,
	class            TEXT,
	flags            INTEGER,
	entity_system_id INTEGER,
	location_x       REAL,
	location_y       REAL
);
CREATE TABLE virtualized_item (item_entity_id INTEGER PRIMARY KEY, can_expire INTEGER);
CREATE TABLE base (id INTEGER PRIMARY KEY, user_profile_id INTEGER);
CREATE TABLE base_element (base_id INTEGER, location_x REAL, location_y REAL, asset TEXT);
`

// newSaveFile creates a save database the way the game would, outside of
// Client, and returns its path together with a raw handle for seeding.
func newSaveFile(t *testing.T) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SCUM.db")

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening raw database: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	for _, stmt := range splitStatements(saveSchema) {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("creating save schema: %v", err)
		}
	}
	return path, raw
}

func openTestClient(t *testing.T, path string) *Client {
	t.Helper()
	log, _ := test.NewNullLogger()
	client, err := Open(context.Background(), path, log)
	if err != nil {
		t.Fatalf("opening client: %v", err)
	}
	t.Cleanup(func() { client.Close(context.Background()) })
	return client
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

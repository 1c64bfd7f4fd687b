package protect

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"scumguard/internal/config"
	"scumguard/internal/savepath"
	"scumguard/internal/status"
	"scumguard/internal/store/sqlite"
	"scumguard/internal/zone"
)

var ErrNoDatabase = errors.New("save database not available")

const missingDatabaseMessage = "[SaveItems] SCUM.db file not found or disk is disconnected. " +
	"Please enter the path manually in config/path.ini and restart the application."

// Start checks that the save database exists, opens it, and runs the loop
// until ctx is done. The database path is resolved once; a missing file
// needs a config fix and a restart.
func Start(ctx context.Context, layout config.Layout, log logrus.FieldLogger) error {
	cfg := config.LoadOrCreate(layout.ConfigFile(), log)

	dbPath, err := savepath.Detect(layout.PathFile(), log)
	if err != nil || !savepath.Exists(dbPath) {
		log.Error(missingDatabaseMessage)
		return ErrNoDatabase
	}

	client, err := sqlite.Open(ctx, dbPath, log)
	if err != nil {
		log.Errorf("[LOGIC] Error opening database: %v", err)
		return fmt.Errorf("%w: %v", ErrNoDatabase, err)
	}
	defer client.Close(ctx)

	log.WithField("path", dbPath).Infof("[SaveItems] Protecting items every %v", cfg.Interval())

	resolver := zone.NewResolver(client, config.FileLoader{Path: layout.ConfigFile(), Log: log})
	engine := New(client, resolver, status.NewRecord(layout.StatusFile()), log, cfg.Interval())
	return engine.Run(ctx)
}

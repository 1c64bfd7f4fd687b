package sqlite

import (
	"context"
	"fmt"
	"strings"
)

// The save database ships without these, and a sub-second polling
// interval needs them on large worlds.
const indexDDL = `
-- entity
CREATE INDEX IF NOT EXISTS idx_entity_class ON entity (class);
CREATE INDEX IF NOT EXISTS idx_entity_flags ON entity (flags);
CREATE INDEX IF NOT EXISTS idx_entity_id ON entity (id);
CREATE INDEX IF NOT EXISTS idx_entity_entity_system_id ON entity (entity_system_id);
CREATE INDEX IF NOT EXISTS idx_entity_location_xy ON entity (location_x, location_y);

-- entity_system
CREATE INDEX IF NOT EXISTS idx_entity_system_id ON entity_system (id);
CREATE INDEX IF NOT EXISTS idx_entity_system_user_profile_id ON entity_system (user_profile_id);

-- user_profile
CREATE INDEX IF NOT EXISTS idx_user_profile_id ON user_profile (id);
CREATE INDEX IF NOT EXISTS idx_user_profile_name ON user_profile (name);

-- virtualized_item
CREATE INDEX IF NOT EXISTS idx_virtualized_item_entity_id ON virtualized_item (item_entity_id);
CREATE INDEX IF NOT EXISTS idx_virtualized_item_can_expire ON virtualized_item (can_expire);

-- base
CREATE INDEX IF NOT EXISTS idx_base_user_profile_id ON base (user_profile_id);
`

func (c *Client) EnsureIndexes(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(indexDDL) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}

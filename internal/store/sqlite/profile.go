package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PlayerEntitySystems returns the entity_system_id of every entity of the
// given class with flags = 0. A NULL reference is reported as 0, which no
// entity_system row uses.
func (c *Client) PlayerEntitySystems(ctx context.Context, class string) ([]int64, error) {
	query := `
	SELECT entity_system_id
	FROM entity
	WHERE class = ?
	  AND flags = 0
	`

	rows, err := c.db.QueryContext(ctx, query, class)
	if err != nil {
		return nil, fmt.Errorf("querying player entities: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id sql.NullInt64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning player entity: %w", err)
		}
		ids = append(ids, id.Int64)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating player entities: %w", err)
	}

	return ids, nil
}

func (c *Client) UserProfileForEntitySystem(ctx context.Context, entitySystemID int64) (int64, bool, error) {
	query := `
	SELECT user_profile_id
	FROM entity_system
	WHERE id = ?
	`

	var id sql.NullInt64
	err := c.db.QueryRowContext(ctx, query, entitySystemID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("getting user profile for entity system %d: %w", entitySystemID, err)
	}
	return id.Int64, id.Valid, nil
}

func (c *Client) UserName(ctx context.Context, userProfileID int64) (string, bool, error) {
	query := `
	SELECT name
	FROM user_profile
	WHERE id = ?
	`

	var name sql.NullString
	err := c.db.QueryRowContext(ctx, query, userProfileID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting user name for profile %d: %w", userProfileID, err)
	}
	return name.String, name.Valid, nil
}

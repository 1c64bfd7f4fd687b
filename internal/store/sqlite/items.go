package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"scumguard/internal/store"
)

func (c *Client) ExpiringItems(ctx context.Context) ([]int64, error) {
	query := `
	SELECT item_entity_id
	FROM virtualized_item
	WHERE can_expire = 1 AND item_entity_id IS NOT NULL
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expiring items: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning expiring item: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expiring items: %w", err)
	}

	return ids, nil
}

// ItemPositions returns a position for each id that exists in entity with
// a non-NULL location. Unknown ids are absent from the result.
func (c *Client) ItemPositions(ctx context.Context, itemIDs []int64) (map[int64]store.Position, error) {
	positions := make(map[int64]store.Position, len(itemIDs))

	for _, batch := range batches(itemIDs, maxBatch) {
		query := fmt.Sprintf(`
		SELECT id, location_x, location_y
		FROM entity
		WHERE id IN (%s)
		`, placeholders(len(batch)))

		if err := c.scanPositions(ctx, query, int64Args(batch), positions); err != nil {
			return nil, err
		}
	}

	return positions, nil
}

func (c *Client) scanPositions(ctx context.Context, query string, args []any, into map[int64]store.Position) error {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("getting item positions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var x, y sql.NullFloat64
		if err := rows.Scan(&id, &x, &y); err != nil {
			return fmt.Errorf("scanning item position: %w", err)
		}
		if !x.Valid || !y.Valid {
			continue
		}
		into[id] = store.Position{X: x.Float64, Y: y.Float64}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating item positions: %w", err)
	}
	return nil
}

// ClearCanExpire sets can_expire = 0 for the given items in one
// transaction. Rows already at 0 are not counted, so a repeated call
// reports 0.
func (c *Client) ClearCanExpire(ctx context.Context, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var affected int64
	for _, batch := range batches(itemIDs, maxBatch) {
		query := fmt.Sprintf(`
		UPDATE virtualized_item
		SET can_expire = 0
		WHERE can_expire = 1
		  AND item_entity_id IN (%s)
		`, placeholders(len(batch)))

		result, err := tx.ExecContext(ctx, query, int64Args(batch)...)
		if err != nil {
			return 0, fmt.Errorf("clearing can_expire: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("getting rows affected: %w", err)
		}
		affected += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing can_expire update: %w", err)
	}

	return affected, nil
}

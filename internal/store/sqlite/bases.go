package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"scumguard/internal/store"
)

func (c *Client) BasesOwnedBy(ctx context.Context, userProfileID int64) ([]int64, error) {
	query := `
	SELECT id
	FROM base
	WHERE user_profile_id = ?
	`

	rows, err := c.db.QueryContext(ctx, query, userProfileID)
	if err != nil {
		return nil, fmt.Errorf("listing bases: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning base: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bases: %w", err)
	}

	return ids, nil
}

func (c *Client) BaseElements(ctx context.Context, baseIDs []int64) ([]store.BaseElement, error) {
	elements := make([]store.BaseElement, 0)

	for _, batch := range batches(baseIDs, maxBatch) {
		query := fmt.Sprintf(`
		SELECT base_id, location_x, location_y, asset
		FROM base_element
		WHERE base_id IN (%s)
		`, placeholders(len(batch)))

		rows, err := c.db.QueryContext(ctx, query, int64Args(batch)...)
		if err != nil {
			return nil, fmt.Errorf("listing base elements: %w", err)
		}

		for rows.Next() {
			var e store.BaseElement
			var x, y sql.NullFloat64
			var asset sql.NullString
			if err := rows.Scan(&e.BaseID, &x, &y, &asset); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning base element: %w", err)
			}
			if !x.Valid || !y.Valid || !asset.Valid {
				continue
			}
			e.X, e.Y, e.Asset = x.Float64, y.Float64, asset.String
			elements = append(elements, e)
		}

		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating base elements: %w", err)
		}
	}

	return elements, nil
}

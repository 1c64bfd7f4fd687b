package sqlite

import (
	"context"
	"fmt"
)

// TableColumns returns the column names of table, or none if it does not
// exist.
func (c *Client) TableColumns(ctx context.Context, table string) ([]string, error) {
	query := `
	SELECT name
	FROM pragma_table_info(?)
	`

	rows, err := c.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("inspecting table %s: %w", table, err)
	}
	defer rows.Close()

	columns := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		columns = append(columns, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}

	return columns, nil
}

// Package validate checks a save database against the tables, columns and
// rows the protection loop depends on.
package validate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"scumguard/internal/zone"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeMissingTable  = "missing_table"
	codeMissingColumn = "missing_column"
	codeNoPlayer      = "no_player"
	codeNoZones       = "no_zones"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Table    string
}

type Report struct {
	Issues    []Issue
	ProfileID int64
	Player    string
	Zones     int
}

func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// RequiredColumns lists, per table, the columns read or written.
var RequiredColumns = map[string][]string{
	"entity":           {"id", "class", "flags", "entity_system_id", "location_x", "location_y"},
	"entity_system":    {"id", "user_profile_id"},
	"user_profile":     {"id", "name"},
	"virtualized_item": {"item_entity_id", "can_expire"},
	"base":             {"id", "user_profile_id"},
	"base_element":     {"base_id", "location_x", "location_y", "asset"},
}

type SchemaInspector interface {
	TableColumns(ctx context.Context, table string) ([]string, error)
}

type PlayerResolver interface {
	UserProfileID(ctx context.Context) (int64, error)
	UserName(ctx context.Context, userProfileID int64) (string, bool, error)
	Zones(ctx context.Context, userProfileID int64) ([]zone.Zone, error)
}

// Run reports schema problems first. Player and zone checks only run on a
// complete schema, since they would fail on the same missing pieces.
func Run(ctx context.Context, db SchemaInspector, players PlayerResolver) (*Report, error) {
	if db == nil {
		return nil, fmt.Errorf("schema inspector is required")
	}
	if players == nil {
		return nil, fmt.Errorf("player resolver is required")
	}

	report := &Report{Issues: make([]Issue, 0)}

	schemaIssues, err := validateSchema(ctx, db)
	if err != nil {
		return nil, err
	}
	report.Issues = append(report.Issues, schemaIssues...)
	if len(schemaIssues) > 0 {
		return report, nil
	}

	profileID, err := players.UserProfileID(ctx)
	if errors.Is(err, zone.ErrNoPlayer) {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarn,
			Code:     codeNoPlayer,
			Message:  err.Error(),
		})
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve player: %w", err)
	}
	report.ProfileID = profileID

	name, ok, err := players.UserName(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("resolve player name: %w", err)
	}
	if ok {
		report.Player = name
	}

	zones, err := players.Zones(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("resolve zones: %w", err)
	}
	report.Zones = len(zones)
	if len(zones) == 0 {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarn,
			Code:     codeNoZones,
			Message:  "no base element of the player's bases matches a configured zone rule",
		})
	}

	return report, nil
}

func validateSchema(ctx context.Context, db SchemaInspector) ([]Issue, error) {
	tables := make([]string, 0, len(RequiredColumns))
	for table := range RequiredColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	var issues []Issue
	for _, table := range tables {
		columns, err := db.TableColumns(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("inspect table %s: %w", table, err)
		}
		if len(columns) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeMissingTable,
				Message:  "table not found",
				Table:    table,
			})
			continue
		}

		present := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			present[c] = struct{}{}
		}
		for _, want := range RequiredColumns[table] {
			if _, ok := present[want]; ok {
				continue
			}
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeMissingColumn,
				Message:  fmt.Sprintf("column %s not found", want),
				Table:    table,
			})
		}
	}
	return issues, nil
}

package data

import (
	"database/sql"
	"time"

	"ventnav/lib/workflow"
)

// Conversion helpers between sql.Null* scan targets and the pointer fields
// the models use.

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullInt64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

func stringOrNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func int64OrNull(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func timeOrNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// parseTimestamp parses an incoming schedule timestamp. Malformed values
// surface as validation errors, not decode failures.
func parseTimestamp(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return &t, nil
		}
	}

	return nil, workflow.NewValidationError("invalid " + field + " format")
}

// parseDateOnly parses the legacy date-only schedule field
func parseDateOnly(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}

	return nil, workflow.NewValidationError("invalid " + field + " format")
}

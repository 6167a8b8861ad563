package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

const patternColumns = "id, category, subcategory, target, severity_level, occurrence_count, confidence, last_seen_at"

// UpsertPattern inserts or replaces an error pattern. A missing id is
// assigned.
func (db *DB) UpsertPattern(ctx context.Context, p *engine.ErrorPattern) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.LastSeenAt.IsZero() {
		p.LastSeenAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO error_patterns (`+patternColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			subcategory = excluded.subcategory,
			target = excluded.target,
			severity_level = excluded.severity_level,
			occurrence_count = excluded.occurrence_count,
			confidence = excluded.confidence,
			last_seen_at = excluded.last_seen_at`,
		p.ID, p.Category, p.Subcategory, p.Target, p.SeverityLevel,
		p.OccurrenceCount, p.Confidence, p.LastSeenAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting pattern: %w", err)
	}
	return nil
}

// GetPattern returns a pattern by id, or nil if it does not exist.
func (db *DB) GetPattern(ctx context.Context, id string) (*engine.ErrorPattern, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+patternColumns+" FROM error_patterns WHERE id = ?", id)

	p, err := scanPattern(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying pattern: %w", err)
	}
	return p, nil
}

// GetPatterns returns patterns matching the filter, most frequent first.
// Zero-valued filter fields are ignored.
func (db *DB) GetPatterns(ctx context.Context, filter engine.PatternFilter) ([]engine.ErrorPattern, error) {
	var conds []string
	var args []any

	if filter.MinOccurrence > 0 {
		conds = append(conds, "occurrence_count >= ?")
		args = append(args, filter.MinOccurrence)
	}
	if filter.MinSeverity > 0 {
		conds = append(conds, "severity_level >= ?")
		args = append(args, filter.MinSeverity)
	}
	if filter.MinConfidence > 0 {
		conds = append(conds, "confidence >= ?")
		args = append(args, filter.MinConfidence)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}

	query := "SELECT " + patternColumns + " FROM error_patterns"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurrence_count DESC, severity_level DESC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying patterns: %w", err)
	}
	defer rows.Close()

	var out []engine.ErrorPattern
	for rows.Next() {
		p, err := scanPattern(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning pattern: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetPatternsByCategory returns all patterns in a category, most frequent
// first.
func (db *DB) GetPatternsByCategory(ctx context.Context, category string) ([]engine.ErrorPattern, error) {
	return db.GetPatterns(ctx, engine.PatternFilter{Category: category})
}

func scanPattern(scan func(...any) error) (*engine.ErrorPattern, error) {
	var p engine.ErrorPattern
	var subcategory, target sql.NullString
	var lastSeen string

	if err := scan(&p.ID, &p.Category, &subcategory, &target, &p.SeverityLevel,
		&p.OccurrenceCount, &p.Confidence, &lastSeen); err != nil {
		return nil, err
	}

	p.Subcategory = subcategory.String
	p.Target = target.String
	p.LastSeenAt, _ = time.Parse(time.RFC3339, lastSeen)
	return &p, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

const suggestionColumns = "id, pattern_id, type, title, description, target_component, priority, confidence, effort_hours, tags, status, created_at, implemented_at"

// InsertSuggestion persists a suggestion. A missing id is assigned.
func (db *DB) InsertSuggestion(ctx context.Context, s *engine.Suggestion) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.Status == "" {
		s.Status = engine.StatusProposed
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO suggestions
		(id, pattern_id, type, title, description, target_component, priority,
		 confidence, effort_hours, tags, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.PatternID, string(s.Type), s.Title, s.Description,
		s.TargetComponent, s.Priority, s.Confidence, s.EffortHours,
		s.Tags, string(s.Status), s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting suggestion: %w", err)
	}
	return nil
}

// GetSuggestions returns suggestions, optionally filtered by status
// (empty status means all), newest first.
func (db *DB) GetSuggestions(ctx context.Context, status engine.SuggestionStatus) ([]engine.Suggestion, error) {
	query := "SELECT " + suggestionColumns + " FROM suggestions"
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	var out []engine.Suggestion
	for rows.Next() {
		s, _, err := scanSuggestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// GetSuggestion returns a suggestion by id, or nil if it does not exist.
func (db *DB) GetSuggestion(ctx context.Context, id string) (*engine.Suggestion, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+suggestionColumns+" FROM suggestions WHERE id = ?", id)

	s, _, err := scanSuggestion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying suggestion: %w", err)
	}
	return s, nil
}

// UpdateSuggestionConfidence sets a suggestion's confidence score.
func (db *DB) UpdateSuggestionConfidence(ctx context.Context, id string, confidence float64) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	result, err := db.conn.ExecContext(ctx,
		"UPDATE suggestions SET confidence = ? WHERE id = ?", confidence, id)
	if err != nil {
		return fmt.Errorf("updating confidence: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("suggestion %s not found", id)
	}
	return nil
}

// UpdateSuggestionStatus moves a suggestion through its lifecycle. Marking
// a suggestion implemented records the implementation moment for the
// effectiveness analyzer.
func (db *DB) UpdateSuggestionStatus(ctx context.Context, id string, status engine.SuggestionStatus) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var implementedAt any
	if status == engine.StatusImplemented {
		implementedAt = time.Now().UTC().Format(time.RFC3339)
	}

	result, err := db.conn.ExecContext(ctx, `
		UPDATE suggestions
		SET status = ?, implemented_at = COALESCE(?, implemented_at)
		WHERE id = ?`,
		string(status), implementedAt, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("suggestion %s not found", id)
	}
	return nil
}

// ImplementedAt returns when the suggestion was marked implemented, or the
// zero time if it never was.
func (db *DB) ImplementedAt(ctx context.Context, suggestionID string) (time.Time, error) {
	var implementedAt sql.NullString
	err := db.conn.QueryRowContext(ctx,
		"SELECT implemented_at FROM suggestions WHERE id = ?", suggestionID).
		Scan(&implementedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying implemented_at: %w", err)
	}
	if !implementedAt.Valid {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, implementedAt.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing implemented_at: %w", err)
	}
	return t, nil
}

func scanSuggestion(scan func(...any) error) (*engine.Suggestion, time.Time, error) {
	var s engine.Suggestion
	var typ, status, createdAt string
	var tags, implementedAt sql.NullString

	if err := scan(&s.ID, &s.PatternID, &typ, &s.Title, &s.Description,
		&s.TargetComponent, &s.Priority, &s.Confidence, &s.EffortHours,
		&tags, &status, &createdAt, &implementedAt); err != nil {
		return nil, time.Time{}, err
	}

	s.Type = engine.OptimizationType(typ)
	s.Status = engine.SuggestionStatus(status)
	s.Tags = tags.String
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	var implAt time.Time
	if implementedAt.Valid {
		implAt, _ = time.Parse(time.RFC3339, implementedAt.String)
	}
	return &s, implAt, nil
}

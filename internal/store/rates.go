package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

// InsertRateSample records one error-rate observation for a pattern.
func (db *DB) InsertRateSample(ctx context.Context, s engine.RateSample) error {
	if s.ObservedAt.IsZero() {
		s.ObservedAt = time.Now().UTC()
	}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO error_rate_samples (pattern_id, rate, observed_at) VALUES (?, ?, ?)",
		s.PatternID, s.Rate, s.ObservedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting rate sample: %w", err)
	}
	return nil
}

// GetRateSamples returns a pattern's error-rate observations within
// [from, to), oldest first.
func (db *DB) GetRateSamples(ctx context.Context, patternID string, from, to time.Time) ([]engine.RateSample, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT pattern_id, rate, observed_at
		FROM error_rate_samples
		WHERE pattern_id = ? AND observed_at >= ? AND observed_at < ?
		ORDER BY observed_at`,
		patternID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying rate samples: %w", err)
	}
	defer rows.Close()

	var out []engine.RateSample
	for rows.Next() {
		var s engine.RateSample
		var observedAt string
		if err := rows.Scan(&s.PatternID, &s.Rate, &observedAt); err != nil {
			return nil, fmt.Errorf("scanning rate sample: %w", err)
		}
		s.ObservedAt, _ = time.Parse(time.RFC3339, observedAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecentRateStats summarizes stored rates for spike detection: the mean
// rate over the most recent window and the mean over the same-length window
// one day earlier, plus per-category occurrence counts from the pattern
// table.
func (db *DB) RecentRateStats(ctx context.Context, window time.Duration) (current, dayAgo float64, err error) {
	now := time.Now().UTC()

	current, err = db.meanRate(ctx, now.Add(-window), now)
	if err != nil {
		return 0, 0, err
	}

	dayAgoEnd := now.Add(-24 * time.Hour)
	dayAgo, err = db.meanRate(ctx, dayAgoEnd.Add(-window), dayAgoEnd)
	if err != nil {
		return 0, 0, err
	}

	return current, dayAgo, nil
}

func (db *DB) meanRate(ctx context.Context, from, to time.Time) (float64, error) {
	var mean float64
	err := db.conn.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rate), 0)
		FROM error_rate_samples
		WHERE observed_at >= ? AND observed_at < ?`,
		from.Format(time.RFC3339), to.Format(time.RFC3339)).Scan(&mean)
	if err != nil {
		return 0, fmt.Errorf("querying mean rate: %w", err)
	}
	return mean, nil
}

// TopCategories returns the categories with the highest occurrence counts.
func (db *DB) TopCategories(ctx context.Context, limit int) ([]engine.CategoryCount, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT category, SUM(occurrence_count)
		FROM error_patterns
		GROUP BY category
		ORDER BY SUM(occurrence_count) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top categories: %w", err)
	}
	defer rows.Close()

	var out []engine.CategoryCount
	for rows.Next() {
		var c engine.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Package watcher provides background monitoring of the pattern store,
// assembling live system-context snapshots and emitting alerts when the
// contextual engine reacts to them.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Stats provides the stored signals a snapshot is built from.
type Stats interface {
	RecentRateStats(ctx context.Context, window time.Duration) (current, dayAgo float64, err error)
	TopCategories(ctx context.Context, limit int) ([]engine.CategoryCount, error)
}

// ContextualEngine reacts to a system-context snapshot. Satisfied by
// *engine.Engine.
type ContextualEngine interface {
	GenerateContextualSuggestions(ctx context.Context, sys *engine.SystemContext) ([]engine.Suggestion, error)
}

// topCategoryLimit bounds how many categories a snapshot carries. The
// contextual engine only acts on the top three anyway.
const topCategoryLimit = 5

// Watcher polls stored error-rate samples at a regular interval, builds a
// SystemContext from them, runs contextual generation, and emits alerts for
// whatever it produces.
type Watcher struct {
	stats    Stats
	engine   ContextualEngine
	interval time.Duration
	alertFn  func(Alert)

	// CapacityHours caps suggested work per cycle.
	CapacityHours float64

	// Environment labels the snapshots ("production" by default).
	Environment string

	lastAlertKeys map[string]bool
}

// New creates a Watcher over the given stats source and engine.
func New(stats Stats, eng ContextualEngine, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		stats:         stats,
		engine:        eng,
		interval:      interval,
		alertFn:       alertFn,
		Environment:   "production",
		lastAlertKeys: make(map[string]bool),
	}
}

// Run starts the watch loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check(ctx)
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Snapshot builds a SystemContext from stored rate samples and pattern
// counts. Load signals are not observed locally and stay zero; the snapshot
// drives the error-spike trigger only.
func (w *Watcher) Snapshot(ctx context.Context) (*engine.SystemContext, error) {
	current, dayAgo, err := w.stats.RecentRateStats(ctx, w.interval)
	if err != nil {
		return nil, fmt.Errorf("reading rate stats: %w", err)
	}

	categories, err := w.stats.TopCategories(ctx, topCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("reading top categories: %w", err)
	}

	return &engine.SystemContext{
		Environment: w.Environment,
		ErrorTrends: engine.ErrorTrends{
			CurrentErrorRate:   current,
			ErrorRateOneDayAgo: dayAgo,
			RecentCategories:   categories,
		},
		Resources: engine.ResourceAvailability{
			DevelopmentCapacityHours: w.CapacityHours,
		},
	}, nil
}

// Check performs a single cycle: snapshot, contextual generation, alert
// assembly. Identical alerts are suppressed until the underlying data
// changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	now := time.Now()

	sys, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read stored signals: %v", err),
			Time:    now,
		}}
	}

	suggestions, err := w.engine.GenerateContextualSuggestions(ctx, sys)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Contextual generation failed",
			Message: err.Error(),
			Time:    now,
		}}
	}

	raw := buildAlerts(sys, suggestions, now)

	// Suppress alerts repeated from the previous cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	return alerts
}

// buildAlerts converts a snapshot and the engine's reaction into alerts.
func buildAlerts(sys *engine.SystemContext, suggestions []engine.Suggestion, now time.Time) []Alert {
	var out []Alert

	trends := sys.ErrorTrends
	if trends.ErrorRateOneDayAgo > 0 && trends.CurrentErrorRate > trends.ErrorRateOneDayAgo*1.5 {
		out = append(out, Alert{
			Level: "critical",
			Title: "Error rate spike",
			Message: fmt.Sprintf("Current rate %.2f/min vs %.2f/min a day ago",
				trends.CurrentErrorRate, trends.ErrorRateOneDayAgo),
			Time: now,
		})
	}

	if len(suggestions) > 0 {
		top := suggestions[0]
		out = append(out, Alert{
			Level: "info",
			Title: fmt.Sprintf("%d contextual suggestions ready", len(suggestions)),
			Message: fmt.Sprintf("Top: %s (priority %d, %.0fh)",
				top.Title, top.Priority, top.EffortHours),
			Time: now,
		})
	}

	return out
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsertPattern_RoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	p := engine.ErrorPattern{
		Category: "Network", Subcategory: "Timeout", Target: "payment-api",
		SeverityLevel: 4, OccurrenceCount: 12, Confidence: 0.8,
	}
	require.NoError(t, db.UpsertPattern(ctx, &p))
	require.NotEmpty(t, p.ID, "missing id should be assigned")
	require.False(t, p.LastSeenAt.IsZero(), "last seen should be stamped")

	got, err := db.GetPattern(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Network", got.Category)
	require.Equal(t, "Timeout", got.Subcategory)
	require.Equal(t, 12, got.OccurrenceCount)
	require.InDelta(t, 0.8, got.Confidence, 1e-9)
}

func TestUpsertPattern_ReplacesExisting(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	p := engine.ErrorPattern{ID: "fixed", Category: "HTTP", SeverityLevel: 3, OccurrenceCount: 1, Confidence: 0.5}
	require.NoError(t, db.UpsertPattern(ctx, &p))

	p.OccurrenceCount = 7
	require.NoError(t, db.UpsertPattern(ctx, &p))

	got, err := db.GetPattern(ctx, "fixed")
	require.NoError(t, err)
	require.Equal(t, 7, got.OccurrenceCount)
}

func TestGetPattern_Missing(t *testing.T) {
	db := testDB(t)

	got, err := db.GetPattern(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetPatterns_FilterAndOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	seed := []engine.ErrorPattern{
		{ID: "a", Category: "Network", SeverityLevel: 5, OccurrenceCount: 3, Confidence: 0.9},
		{ID: "b", Category: "Network", SeverityLevel: 2, OccurrenceCount: 20, Confidence: 0.4},
		{ID: "c", Category: "HTTP", SeverityLevel: 4, OccurrenceCount: 10, Confidence: 0.7},
	}
	for i := range seed {
		require.NoError(t, db.UpsertPattern(ctx, &seed[i]))
	}

	all, err := db.GetPatterns(ctx, engine.PatternFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Most frequent first.
	require.Equal(t, "b", all[0].ID)

	filtered, err := db.GetPatterns(ctx, engine.PatternFilter{
		MinOccurrence: 3, MinSeverity: 4, MinConfidence: 0.6,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	byCat, err := db.GetPatternsByCategory(ctx, "HTTP")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	require.Equal(t, "c", byCat[0].ID)
}

func TestSuggestionLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	s := engine.Suggestion{
		PatternID: "p1", Type: engine.TypeTimeout,
		Title: "Optimize connection timeout settings", Description: "d",
		TargetComponent: "api", Priority: 4, Confidence: 0.7, EffortHours: 2,
	}
	require.NoError(t, db.InsertSuggestion(ctx, &s))
	require.NotEmpty(t, s.ID)
	require.Equal(t, engine.StatusProposed, s.Status)

	// Not implemented yet: zero time.
	at, err := db.ImplementedAt(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, at.IsZero())

	require.NoError(t, db.UpdateSuggestionStatus(ctx, s.ID, engine.StatusApproved))
	require.NoError(t, db.UpdateSuggestionStatus(ctx, s.ID, engine.StatusImplemented))

	at, err = db.ImplementedAt(ctx, s.ID)
	require.NoError(t, err)
	require.False(t, at.IsZero())

	implemented, err := db.GetSuggestions(ctx, engine.StatusImplemented)
	require.NoError(t, err)
	require.Len(t, implemented, 1)
	require.Equal(t, s.ID, implemented[0].ID)
}

func TestUpdateSuggestionStatus_PreservesImplementedAt(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	s := engine.Suggestion{PatternID: "p1", Type: engine.TypeTestCase, Title: "t", Description: "d", TargetComponent: "c", Priority: 3, Confidence: 0.5}
	require.NoError(t, db.InsertSuggestion(ctx, &s))
	require.NoError(t, db.UpdateSuggestionStatus(ctx, s.ID, engine.StatusImplemented))

	first, err := db.ImplementedAt(ctx, s.ID)
	require.NoError(t, err)

	// A later status change keeps the original implementation moment.
	require.NoError(t, db.UpdateSuggestionStatus(ctx, s.ID, engine.StatusRejected))
	second, err := db.ImplementedAt(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestUpdateSuggestionConfidence(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	s := engine.Suggestion{PatternID: "p1", Type: engine.TypeAssertion, Title: "t", Description: "d", TargetComponent: "c", Priority: 2, Confidence: 0.5}
	require.NoError(t, db.InsertSuggestion(ctx, &s))

	require.NoError(t, db.UpdateSuggestionConfidence(ctx, s.ID, 0.75))

	got, err := db.GetSuggestion(ctx, s.ID)
	require.NoError(t, err)
	require.InDelta(t, 0.75, got.Confidence, 1e-9)

	require.Error(t, db.UpdateSuggestionConfidence(ctx, "missing", 0.5))
}

func TestRateSamples_WindowQuery(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	p := engine.ErrorPattern{ID: "p1", Category: "Network", SeverityLevel: 3, OccurrenceCount: 5, Confidence: 0.7}
	require.NoError(t, db.UpsertPattern(ctx, &p))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.InsertRateSample(ctx, engine.RateSample{
			PatternID: "p1", Rate: float64(i + 1),
			ObservedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	// [base+1h, base+4h) covers samples at +1h, +2h, +3h.
	got, err := db.GetRateSamples(ctx, "p1", base.Add(time.Hour), base.Add(4*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 2.0, got[0].Rate, "oldest first")
	require.Equal(t, 4.0, got[2].Rate)
}

func TestTopCategories(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	seed := []engine.ErrorPattern{
		{ID: "a", Category: "Network", SeverityLevel: 3, OccurrenceCount: 5, Confidence: 0.5},
		{ID: "b", Category: "Network", SeverityLevel: 3, OccurrenceCount: 10, Confidence: 0.5},
		{ID: "c", Category: "HTTP", SeverityLevel: 3, OccurrenceCount: 8, Confidence: 0.5},
	}
	for i := range seed {
		require.NoError(t, db.UpsertPattern(ctx, &seed[i]))
	}

	top, err := db.TopCategories(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "Network", top[0].Category)
	require.Equal(t, 15, top[0].Count)
	require.Equal(t, "HTTP", top[1].Category)
}

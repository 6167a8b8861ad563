package engine

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestDeduplicate_MergesNearDuplicates(t *testing.T) {
	in := []Suggestion{
		{
			ID: "s1", Type: TypePerformance, TargetComponent: "cache-layer",
			Title: "Reduce cache miss rate", Description: "Tune eviction policy",
			Priority: 3, Confidence: 0.6, EffortHours: 8,
		},
		{
			ID: "s2", Type: TypePerformance, TargetComponent: "cache-layer",
			Title: "Reduce cache misses", Description: "Increase cache size",
			Priority: 5, Confidence: 0.8, EffortHours: 4,
		},
	}

	out := Deduplicate(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged suggestion, got %d", len(out))
	}

	m := out[0]
	if m.ID != "s1" {
		t.Errorf("expected merge into first-encountered s1, got %s", m.ID)
	}
	if m.EffortHours != 12 {
		t.Errorf("expected effort sum 12, got %f", m.EffortHours)
	}
	if m.Priority != 5 {
		t.Errorf("expected max priority 5, got %d", m.Priority)
	}
	if math.Abs(m.Confidence-0.7) > 1e-9 {
		t.Errorf("expected mean confidence 0.7, got %f", m.Confidence)
	}
	if !strings.HasSuffix(m.Description, "(Consolidated from 2 similar suggestions)") {
		t.Errorf("expected consolidation note, got %q", m.Description)
	}
}

func TestDeduplicate_DifferentTypeOrTargetKept(t *testing.T) {
	in := []Suggestion{
		{ID: "s1", Type: TypePerformance, TargetComponent: "cache-layer", Title: "Reduce cache miss rate"},
		{ID: "s2", Type: TypeTimeout, TargetComponent: "cache-layer", Title: "Reduce cache miss rate"},
		{ID: "s3", Type: TypePerformance, TargetComponent: "session-store", Title: "Reduce cache miss rate"},
	}

	out := Deduplicate(in)
	if len(out) != 3 {
		t.Fatalf("expected all 3 kept, got %d", len(out))
	}
}

func TestDeduplicate_LowSimilarityKept(t *testing.T) {
	// Same type and target but unrelated text stays separate.
	in := []Suggestion{
		{ID: "s1", Type: TypeArchitectural, TargetComponent: "auth-service", Title: "Split the token issuer", Description: "Separate signing from validation"},
		{ID: "s2", Type: TypeArchitectural, TargetComponent: "auth-service", Title: "Cache permission lookups", Description: "Memoize role resolution per request"},
		{ID: "s3", Type: TypeArchitectural, TargetComponent: "auth-service", Title: "Introduce audit logging", Description: "Record every privileged call"},
		{ID: "s4", Type: TypeArchitectural, TargetComponent: "auth-service", Title: "Retire the legacy session path", Description: "Remove cookie fallback handling"},
		{ID: "s5", Type: TypeArchitectural, TargetComponent: "auth-service", Title: "Adopt scoped credentials", Description: "Issue narrowly scoped grants"},
	}

	out := Deduplicate(in)
	if len(out) != 5 {
		t.Fatalf("expected all 5 kept, got %d", len(out))
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	in := []Suggestion{
		{
			ID: "s1", Type: TypePerformance, TargetComponent: "cache-layer",
			Title: "Reduce cache miss rate", Description: "Tune eviction policy",
			Priority: 3, Confidence: 0.6, EffortHours: 8,
		},
		{
			ID: "s2", Type: TypePerformance, TargetComponent: "cache-layer",
			Title: "Reduce cache misses", Description: "Increase cache size",
			Priority: 5, Confidence: 0.8, EffortHours: 4,
		},
		{
			ID: "s3", Type: TypeErrorHandling, TargetComponent: "api-gateway",
			Title: "Add retry with backoff", Description: "Wrap outbound calls",
			Priority: 4, Confidence: 0.7, EffortHours: 6,
		},
	}

	once := Deduplicate(in)
	twice := Deduplicate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected deduplication to be idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestDeduplicate_SurvivorOrderStable(t *testing.T) {
	in := make([]Suggestion, 4)
	for i := range in {
		in[i] = Suggestion{
			ID:              fmt.Sprintf("s%d", i),
			Type:            TypeCodeQuality,
			TargetComponent: fmt.Sprintf("svc-%d", i),
			Title:           fmt.Sprintf("Completely unrelated change number %d", i),
		}
	}

	out := Deduplicate(in)
	for i, s := range out {
		if s.ID != in[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, in[i].ID, s.ID)
		}
	}
}

func TestDeduplicate_InputNotModified(t *testing.T) {
	in := []Suggestion{
		{ID: "s1", Type: TypePerformance, TargetComponent: "c", Title: "Reduce cache miss rate", Description: "d1", EffortHours: 8},
		{ID: "s2", Type: TypePerformance, TargetComponent: "c", Title: "Reduce cache misses", Description: "d2", EffortHours: 4},
	}
	snapshot := append([]Suggestion(nil), in...)

	_ = Deduplicate(in)
	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input slice was modified")
	}
}

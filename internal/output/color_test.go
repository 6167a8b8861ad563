package output

import "testing"

func TestStylePickers(t *testing.T) {
	SetNoColor(false)
	t.Cleanup(func() { SetNoColor(true) })

	if got := PriorityStyle(5).GetForeground(); got != ColorBad {
		t.Errorf("priority 5: got foreground %v, want %v", got, ColorBad)
	}
	if got := PriorityStyle(4).GetForeground(); got != ColorCaution {
		t.Errorf("priority 4: got foreground %v, want %v", got, ColorCaution)
	}
	if got := PriorityStyle(2).GetForeground(); got != ColorMuted {
		t.Errorf("priority 2: got foreground %v, want %v", got, ColorMuted)
	}

	if got := StatusStyle("implemented").GetForeground(); got != ColorGood {
		t.Errorf("implemented: got foreground %v, want %v", got, ColorGood)
	}
	if got := StatusStyle("approved").GetForeground(); got != ColorCaution {
		t.Errorf("approved: got foreground %v, want %v", got, ColorCaution)
	}
	if got := StatusStyle("rejected").GetForeground(); got != ColorBad {
		t.Errorf("rejected: got foreground %v, want %v", got, ColorBad)
	}
	if got := StatusStyle("proposed").GetForeground(); got != ColorMuted {
		t.Errorf("proposed: got foreground %v, want %v", got, ColorMuted)
	}

	if got := ConfidenceStyle(0.85).GetForeground(); got != ColorGood {
		t.Errorf("confidence 0.85: got foreground %v, want %v", got, ColorGood)
	}
	if got := ConfidenceStyle(0.5).GetForeground(); got != ColorCaution {
		t.Errorf("confidence 0.5: got foreground %v, want %v", got, ColorCaution)
	}
	if got := ConfidenceStyle(0.2).GetForeground(); got != ColorBad {
		t.Errorf("confidence 0.2: got foreground %v, want %v", got, ColorBad)
	}
}

func TestSetNoColor_Toggles(t *testing.T) {
	SetNoColor(true)
	if got := StyleError.GetForeground(); got == ColorBad {
		t.Errorf("expected plain style while disabled, got foreground %v", got)
	}

	SetNoColor(false)
	t.Cleanup(func() { SetNoColor(true) })
	if got := StyleError.GetForeground(); got != ColorBad {
		t.Errorf("expected color restored, got foreground %v", got)
	}
}

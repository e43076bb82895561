package navigation

import "testing"

func TestResolvePosition(t *testing.T) {
	tests := []struct {
		name   string
		raw    int
		total  int
		review bool
		want   int
	}{
		{"first position", 1, 3, false, 0},
		{"middle position", 2, 3, false, 1},
		{"last position", 3, 3, false, 2},
		{"zero clamps to start", 0, 3, false, 0},
		{"negative clamps to start", -7, 3, false, 0},
		{"past end clamps to last", 10, 3, false, 2},
		{"empty questionnaire", 4, 0, false, 0},
		{"review resolves to sentinel", 2, 3, true, ReviewSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePosition(tt.raw, tt.total, tt.review); got != tt.want {
				t.Errorf("ResolvePosition(%d, %d, %v) = %d, want %d", tt.raw, tt.total, tt.review, got, tt.want)
			}
		})
	}
}

func TestResolvePosition_AlwaysInBounds(t *testing.T) {
	for total := 1; total <= 5; total++ {
		for raw := -3; raw <= 8; raw++ {
			idx := ResolvePosition(raw, total, false)
			if idx < 0 || idx >= total {
				t.Fatalf("ResolvePosition(%d, %d) = %d out of bounds", raw, total, idx)
			}
		}
	}
}

func TestStartEnd(t *testing.T) {
	if !IsAtStart(0) || IsAtStart(1) {
		t.Error("IsAtStart should be index <= 0")
	}
	if !IsAtEnd(2, 3) || IsAtEnd(1, 3) {
		t.Error("IsAtEnd should be index >= total-1")
	}
}

func TestPrevious(t *testing.T) {
	if s := Previous(0, 3); s.Moved || s.Index != 0 {
		t.Errorf("Previous at start should be a no-op, got %+v", s)
	}
	if s := Previous(2, 3); !s.Moved || s.Index != 1 {
		t.Errorf("Previous(2) = %+v, want index 1", s)
	}
}

func TestNext(t *testing.T) {
	if s := Next(0, 3); !s.Moved || s.Index != 1 || s.Review {
		t.Errorf("Next(0) = %+v, want index 1", s)
	}
	s := Next(2, 3)
	if !s.Review || s.Index != ReviewSentinel {
		t.Errorf("Next at end should enter review, got %+v", s)
	}
	if s := Next(ReviewSentinel, 3); s.Moved {
		t.Errorf("Next in review should not move, got %+v", s)
	}
}

func TestStepInView(t *testing.T) {
	view := []int{1, 4}

	if s := NextInView(1, view); s.Index != 4 {
		t.Errorf("NextInView(1) = %+v, want 4", s)
	}
	if s := NextInView(4, view); !s.Review {
		t.Errorf("NextInView past last visible should enter review, got %+v", s)
	}
	if s := PreviousInView(4, view); s.Index != 1 {
		t.Errorf("PreviousInView(4) = %+v, want 1", s)
	}
	if s := PreviousInView(1, view); s.Moved {
		t.Errorf("PreviousInView at first visible should not move, got %+v", s)
	}
	// A hidden current question steps to its visible neighbours.
	if s := NextInView(2, view); s.Index != 4 {
		t.Errorf("NextInView(2) = %+v, want 4", s)
	}
	if s := PreviousInView(2, view); s.Index != 1 {
		t.Errorf("PreviousInView(2) = %+v, want 1", s)
	}
}

func TestViewBounds(t *testing.T) {
	view := []int{1, 4}
	if !IsAtViewStart(1, view) || IsAtViewStart(4, view) {
		t.Error("unexpected view start")
	}
	if !IsAtViewEnd(4, view) || IsAtViewEnd(1, view) {
		t.Error("unexpected view end")
	}
	if ViewPosition(4, view) != 1 || ViewPosition(3, view) != -1 {
		t.Error("unexpected view position")
	}
}

func TestStepInEmptyView(t *testing.T) {
	if s := NextInView(1, nil); s.Moved || s.Review || s.Index != 1 {
		t.Errorf("NextInView over an empty view should stay, got %+v", s)
	}
	if s := PreviousInView(1, nil); s.Moved {
		t.Errorf("PreviousInView over an empty view should stay, got %+v", s)
	}
	if !IsAtViewEnd(1, nil) || !IsAtViewStart(1, nil) {
		t.Error("an empty view is both at start and at end")
	}
}

package date

import "testing"

func TestHistory(t *testing.T) {
	h := &History[float64]{}
	// appended out of order, read back sorted
	h.Append(MustParse("2024-05-31"), 173.96)
	h.Append(MustParse("2024-05-29"), 171.20)
	h.Append(MustParse("2024-05-30"), 172.50)

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	day, value := h.Latest()
	if day != MustParse("2024-05-31") || value != 173.96 {
		t.Errorf("Latest = %s %v, want 2024-05-31 173.96", day, value)
	}

	// re-appending a day overwrites
	h.Append(MustParse("2024-05-31"), 174.00)
	if h.Len() != 3 {
		t.Errorf("Len = %d after overwrite, want 3", h.Len())
	}
	if v, ok := h.Get(MustParse("2024-05-31")); !ok || v != 174.00 {
		t.Errorf("Get = %v %v, want 174 true", v, ok)
	}

	var prev Date
	for day := range h.Values() {
		if !prev.IsZero() && day.Before(prev) {
			t.Errorf("Values not chronological: %s after %s", day, prev)
		}
		prev = day
	}
}

func TestHistory_Empty(t *testing.T) {
	h := &History[float64]{}
	if day, value := h.Latest(); !day.IsZero() || value != 0 {
		t.Errorf("Latest on empty = %s %v, want zero values", day, value)
	}
}

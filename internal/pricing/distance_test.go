package pricing

import (
	"strings"
	"testing"
)

func TestEstimateDistanceKnownPair(t *testing.T) {
	if got := EstimateDistanceKm("Manali", "Kullu"); got != 42 {
		t.Fatalf("Manali-Kullu = %d km, want 42", got)
	}
	// Symmetric and case/spacing insensitive.
	if got := EstimateDistanceKm("  kullu ", "MANALI"); got != 42 {
		t.Fatalf("reversed lookup = %d km, want 42", got)
	}
}

func TestEstimateDistanceDeterministic(t *testing.T) {
	first := EstimateDistanceKm("Old Manali Market", "Vashisht Temple Road")
	for i := 0; i < 5; i++ {
		if got := EstimateDistanceKm("Old Manali Market", "Vashisht Temple Road"); got != first {
			t.Fatalf("run %d: got %d, first run %d", i, got, first)
		}
	}
}

func TestEstimateDistanceMinimum(t *testing.T) {
	// Same known point both ends still yields the service minimum.
	if got := EstimateDistanceKm("Manali", "Manali"); got != 3 {
		t.Fatalf("same place = %d km, want 3", got)
	}
}

func TestEstimateDistanceFallbackClamp(t *testing.T) {
	long := strings.Repeat("someplace far away ", 40)
	if got := EstimateDistanceKm("a", long); got != 120 {
		t.Fatalf("fallback not clamped: %d", got)
	}
}

func TestEstimateDistanceFallbackSharedTokens(t *testing.T) {
	near := EstimateDistanceKm("mall road manali", "mall road")
	far := EstimateDistanceKm("mall road manali", "naggar castle")
	if near >= far {
		t.Fatalf("shared tokens should read closer: near=%d far=%d", near, far)
	}
}

package models

import (
	"testing"
	"time"
)

func TestSpinDateInCrossesDayBoundary(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC on the 14th is already the 15th in Paris (UTC+1 in winter)
	instant := time.Date(2024, 1, 14, 23, 30, 0, 0, time.UTC)

	if got := SpinDateIn(instant, time.UTC); got != "2024-01-14" {
		t.Errorf("SpinDateIn UTC = %s, want 2024-01-14", got)
	}
	if got := SpinDateIn(instant, paris); got != "2024-01-15" {
		t.Errorf("SpinDateIn Paris = %s, want 2024-01-15", got)
	}
}

func TestNextSpinTimeIsUpcomingMidnight(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 45, 12, 0, time.UTC)

	next := NextSpinTime(now, time.UTC)
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("NextSpinTime = %v, want %v", next, want)
	}
	if !next.After(now) {
		t.Errorf("NextSpinTime must be after now")
	}
}

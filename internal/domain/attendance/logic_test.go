package attendance

import (
	"testing"
	"time"
)

func TestWorkHours(t *testing.T) {
	checkIn := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 4, 7, 18, 30, 0, 0, time.UTC)

	hours := WorkHours(&checkIn, &checkOut)
	if hours == nil {
		t.Fatal("expected hours, got nil")
	}
	if *hours != 9.5 {
		t.Fatalf("expected 9.5 hours, got %v", *hours)
	}
}

func TestWorkHoursRounding(t *testing.T) {
	checkIn := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 4, 7, 17, 20, 0, 0, time.UTC)

	hours := WorkHours(&checkIn, &checkOut)
	if hours == nil {
		t.Fatal("expected hours, got nil")
	}
	if *hours != 8.33 {
		t.Fatalf("expected 8.33 hours, got %v", *hours)
	}
}

func TestWorkHoursMissingTimes(t *testing.T) {
	checkIn := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)

	if got := WorkHours(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	if got := WorkHours(&checkIn, nil); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	if got := WorkHours(nil, &checkIn); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
}

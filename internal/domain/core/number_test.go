package core

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestGenerateEmployeeNumber(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 45, 0, time.UTC)

	number := GenerateEmployeeNumber(now)
	if !strings.HasPrefix(number, "EMP") {
		t.Fatalf("expected EMP prefix, got %q", number)
	}
	digits := strings.TrimPrefix(number, "EMP")
	if len(digits) != 12 {
		t.Fatalf("expected 12 digits after prefix, got %d in %q", len(digits), number)
	}
	if _, err := strconv.ParseInt(digits, 10, 64); err != nil {
		t.Fatalf("expected numeric suffix, got %q", digits)
	}

	// The timestamp portion is deterministic for a fixed clock.
	if !strings.HasPrefix(digits, "615103045") {
		t.Fatalf("expected timestamp prefix 615103045, got %q", digits)
	}
}

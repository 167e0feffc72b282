package shared

import "testing"

func TestValidatorRequiredAndEnum(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.Enum("status", "bogus", []string{"active", "inactive"}, "invalid status")
	v.Enum("gender", "Male", []string{"male", "female", "other"}, "invalid gender")

	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(issues), issues)
	}
}

func TestValidatorEmail(t *testing.T) {
	v := NewValidator()
	v.Email("email", "jane@example.com")
	if v.HasIssues() {
		t.Fatalf("unexpected issues: %+v", v.Issues())
	}

	v.Email("email", "not-an-email")
	v.Email("email", "trailing@")
	if len(v.Issues()) != 2 {
		t.Fatalf("expected 2 issues, got %+v", v.Issues())
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()

	parsed, ok := v.Date("start_date", "2025-06-01")
	if !ok || parsed.IsZero() {
		t.Fatalf("expected valid date, issues: %+v", v.Issues())
	}

	if _, ok := v.Date("end_date", "junk"); ok {
		t.Fatal("expected invalid date to be rejected")
	}
	if !v.HasIssues() {
		t.Fatal("expected an issue for the invalid date")
	}
}

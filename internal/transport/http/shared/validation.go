package shared

import (
	"net/http"
	"strings"
	"time"

	"hrms/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator accumulates field problems across a payload so a response can
// report all of them at once. Issues keep insertion order per field.
type Validator struct {
	order   []string
	reasons map[string][]string
}

func NewValidator() *Validator {
	return &Validator{reasons: make(map[string][]string)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	if _, seen := v.reasons[field]; !seen {
		v.order = append(v.order, field)
	}
	v.reasons[field] = append(v.reasons[field], reason)
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

// Enum accepts any case variant of an allowed value. Empty values pass so
// Required stays the only presence check.
func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToLower(strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, reason)
}

func (v *Validator) Email(field, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 || !strings.Contains(trimmed[at:], ".") {
		v.Add(field, "must be a valid email address")
	}
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) Range(field string, value, min, max float64, reason string) {
	if value < min || value > max {
		v.Add(field, reason)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.reasons) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if !v.HasIssues() {
		return nil
	}
	var out []ValidationIssue
	for _, field := range v.order {
		for _, reason := range v.reasons[field] {
			out = append(out, ValidationIssue{Field: field, Reason: reason})
		}
	}
	return out
}

// Reject writes the validation failure and reports whether it did.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

package shared

import "time"

// Date formats clients send, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a full RFC3339 timestamp or a bare YYYY-MM-DD day. An
// empty input parses to the zero time so optional fields stay unset.
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

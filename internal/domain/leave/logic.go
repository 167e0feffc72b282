package leave

import (
	"time"

	"hrms/internal/domain/errs"
)

// CalculateDays returns the inclusive day count between start and end.
// Rejects end before start instead of producing a negative count.
func CalculateDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errs.New(errs.Validation, "end date must be on or after start date")
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

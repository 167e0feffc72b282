package attendance

import (
	"math"
	"time"
)

// WorkHours returns elapsed hours between check-in and check-out rounded to
// two decimals, or nil when either time is missing. Never zero-filled: an
// open attendance record has no work hours yet.
func WorkHours(checkIn, checkOut *time.Time) *float64 {
	if checkIn == nil || checkOut == nil {
		return nil
	}
	hours := math.Round(checkOut.Sub(*checkIn).Hours()*100) / 100
	return &hours
}

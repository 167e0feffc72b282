package core

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateEmployeeNumber builds EMP + last 9 digits of the current timestamp
// + a random 3-digit suffix. Collisions are possible under load; callers
// retry on the unique constraint rather than trusting the format.
func GenerateEmployeeNumber(now time.Time) string {
	ts := now.Format("20060102150405")
	return fmt.Sprintf("EMP%s%03d", ts[len(ts)-9:], 100+rand.Intn(900))
}

package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusLeave   = "leave"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusLeave}

type Record struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	Date           time.Time  `json:"date"`
	CheckIn        *time.Time `json:"check_in"`
	CheckOut       *time.Time `json:"check_out"`
	WorkHours      *float64   `json:"work_hours"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	EmployeeNumber string     `json:"employee_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Filter struct {
	EmployeeID int64
	StartDate  *time.Time
	EndDate    *time.Time
}

type Stats struct {
	TotalDays   int64   `json:"total_days"`
	PresentDays int64   `json:"present_days"`
	AbsentDays  int64   `json:"absent_days"`
	TotalHours  float64 `json:"total_hours"`
	AvgHours    float64 `json:"avg_hours"`
}

package training

import "time"

// Program statuses.
const (
	StatusScheduled = "scheduled"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Enrollment completion statuses.
const (
	CompletionEnrolled  = "enrolled"
	CompletionCompleted = "completed"
	CompletionFailed    = "failed"
	CompletionWithdrew  = "withdrew"
)

type Program struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Trainer       string     `json:"trainer,omitempty"`
	Location      string     `json:"location,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	DurationHours *int       `json:"duration_hours,omitempty"`
	Capacity      *int       `json:"capacity,omitempty"`
	EnrolledCount int        `json:"enrolled_count"`
	Cost          *float64   `json:"cost,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Enrollment struct {
	ID                int64      `json:"id"`
	TrainingProgramID int64      `json:"training_program_id"`
	EmployeeID        int64      `json:"employee_id"`
	EnrollmentDate    time.Time  `json:"enrollment_date"`
	CompletionStatus  string     `json:"completion_status"`
	CompletionDate    *time.Time `json:"completion_date,omitempty"`
	Score             *float64   `json:"score,omitempty"`
	Feedback          string     `json:"feedback,omitempty"`
	CertificateIssued bool       `json:"certificate_issued"`
	EmployeeName      string     `json:"employee_name,omitempty"`
	ProgramName       string     `json:"program_name,omitempty"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Stats struct {
	StatusCounts     []StatusCount `json:"statusCounts"`
	TotalEnrollments int64         `json:"totalEnrollments"`
	CompletionStats  []StatusCount `json:"completionStats"`
}

package performance

import "time"

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
)

// nextStatus maps each review status to its only legal successor.
var nextStatus = map[string]string{
	StatusDraft:     StatusSubmitted,
	StatusSubmitted: StatusApproved,
}

// CanTransition reports whether a review may move from one status to
// another.
func CanTransition(from, to string) bool {
	return nextStatus[from] == to
}

type Review struct {
	ID                  int64      `json:"id"`
	EmployeeID          int64      `json:"employee_id"`
	ReviewerID          int64      `json:"reviewer_id"`
	ReviewPeriod        string     `json:"review_period"`
	ReviewDate          *time.Time `json:"review_date,omitempty"`
	OverallRating       *float64   `json:"overall_rating,omitempty"`
	Strengths           string     `json:"strengths,omitempty"`
	AreasForImprovement string     `json:"areas_for_improvement,omitempty"`
	Goals               string     `json:"goals,omitempty"`
	Comments            string     `json:"comments,omitempty"`
	Status              string     `json:"status"`
	EmployeeName        string     `json:"employee_name,omitempty"`
	ReviewerName        string     `json:"reviewer_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type Filter struct {
	EmployeeID   int64
	Status       string
	ReviewPeriod string
}

package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID            int64      `json:"id"`
	EmployeeID    int64      `json:"employee_id"`
	LeaveType     string     `json:"leave_type"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	DaysCount     int        `json:"days_count"`
	Reason        string     `json:"reason,omitempty"`
	Status        string     `json:"status"`
	ApprovedBy    *int64     `json:"approved_by"`
	ApprovalDate  *time.Time `json:"approval_date,omitempty"`
	ApprovalNotes string     `json:"approval_notes,omitempty"`
	EmployeeName  string     `json:"employee_name,omitempty"`
	ApproverName  string     `json:"approver_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Filter struct {
	EmployeeID int64
	Status     string
}

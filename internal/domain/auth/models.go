package auth

import "time"

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleFinance  = "finance"
)

var validRoles = []string{RoleAdmin, RoleHR, RoleManager, RoleEmployee, RoleFinance}

func ValidRole(role string) bool {
	for _, candidate := range validRoles {
		if role == candidate {
			return true
		}
	}
	return false
}

// Actor is the authenticated identity behind a request. EmployeeID is 0 when
// the user account has no linked employee record.
type Actor struct {
	UserID     int64
	Role       string
	EmployeeID int64
}

type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	EmployeeID *int64     `json:"employee_id"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// EmployeeSummary carries the linked employee fields merged into /auth/me
// and login responses.
type EmployeeSummary struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	Phone          string `json:"phone,omitempty"`
	DepartmentID   *int64 `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	JobTitleID     *int64 `json:"job_title_id,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
}

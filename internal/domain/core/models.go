package core

import "time"

const (
	EmployeeStatusActive     = "active"
	EmployeeStatusInactive   = "inactive"
	EmployeeStatusTerminated = "terminated"
)

var EmployeeStatuses = []string{EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusTerminated}

type Employee struct {
	ID             int64      `json:"id"`
	EmployeeNumber string     `json:"employee_number"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	NationalID     string     `json:"national_id,omitempty"`
	MaritalStatus  string     `json:"marital_status,omitempty"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	Country        string     `json:"country,omitempty"`
	DepartmentID   *int64     `json:"department_id"`
	JobTitleID     *int64     `json:"job_title_id"`
	ManagerID      *int64     `json:"manager_id"`
	HireDate       *time.Time `json:"hire_date,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	WorkLocation   string     `json:"work_location,omitempty"`
	Salary         *float64   `json:"salary,omitempty"`
	Status         string     `json:"status"`
	DepartmentName string     `json:"department_name,omitempty"`
	JobTitleName   string     `json:"job_title_name,omitempty"`
	ManagerName    string     `json:"manager_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Department struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code,omitempty"`
	Description   string    `json:"description,omitempty"`
	ParentID      *int64    `json:"parent_id"`
	ManagerID     *int64    `json:"manager_id"`
	Budget        float64   `json:"budget"`
	EmployeeCount int       `json:"employee_count"`
	IsActive      bool      `json:"is_active"`
	ManagerName   string    `json:"manager_name,omitempty"`
	ParentName    string    `json:"parent_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type JobTitle struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Code             string    `json:"code,omitempty"`
	DepartmentID     *int64    `json:"department_id"`
	Level            string    `json:"level,omitempty"`
	Description      string    `json:"description,omitempty"`
	Responsibilities string    `json:"responsibilities,omitempty"`
	Requirements     string    `json:"requirements,omitempty"`
	MinSalary        *float64  `json:"min_salary,omitempty"`
	MaxSalary        *float64  `json:"max_salary,omitempty"`
	IsActive         bool      `json:"is_active"`
	DepartmentName   string    `json:"department_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EmployeeFilter drives the employee list query. Search applies a
// case-insensitive partial match across first name, last name, email and
// employee number (OR); the remaining fields combine with AND.
type EmployeeFilter struct {
	DepartmentID *int64
	Status       string
	Search       string
}

type EmployeeStats struct {
	TotalEmployees  int64         `json:"totalEmployees"`
	DepartmentStats []NamedCount  `json:"departmentStats"`
	GenderStats     []GenderCount `json:"genderStats"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type GenderCount struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

type DepartmentStats struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	EmployeeCount int     `json:"employee_count"`
	Budget        float64 `json:"budget"`
	JobPositions  int64   `json:"job_positions"`
	AvgSalary     float64 `json:"avg_salary"`
}

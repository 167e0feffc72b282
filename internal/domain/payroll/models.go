package payroll

import "time"

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

type Record struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	Month          int        `json:"month"`
	Year           int        `json:"year"`
	BasicSalary    float64    `json:"basic_salary"`
	Allowances     float64    `json:"allowances"`
	Bonuses        float64    `json:"bonuses"`
	Deductions     float64    `json:"deductions"`
	OvertimeHours  float64    `json:"overtime_hours"`
	OvertimeAmount float64    `json:"overtime_amount"`
	NetSalary      float64    `json:"net_salary"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	EmployeeNumber string     `json:"employee_number,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Filter struct {
	EmployeeID int64
	Month      int
	Year       int
	Status     string
}

type Totals struct {
	TotalRecords  int64   `json:"total_records"`
	TotalPayroll  float64 `json:"total_payroll"`
	PaidAmount    float64 `json:"paid_amount"`
	PendingAmount float64 `json:"pending_amount"`
}

type DepartmentTotal struct {
	Department    string  `json:"department"`
	EmployeeCount int64   `json:"employee_count"`
	TotalSalary   float64 `json:"total_salary"`
}

type Stats struct {
	Totals       Totals            `json:"totals"`
	ByDepartment []DepartmentTotal `json:"byDepartment"`
}

package auth

// Action names a guarded operation. Checks are explicit allow-lists per
// action, not a role ranking.
type Action string

const (
	ActionManageEmployees   Action = "employees.manage"
	ActionDeleteEmployee    Action = "employees.delete"
	ActionManageDepartments Action = "departments.manage"
	ActionDeleteDepartment  Action = "departments.delete"
	ActionManageJobTitles   Action = "job_titles.manage"
	ActionManageUsers       Action = "users.manage"
	ActionViewAttendance    Action = "attendance.view"
	ActionManageLeave       Action = "leave.decide"
	ActionViewPayroll       Action = "payroll.view"
	ActionManagePayroll     Action = "payroll.manage"
	ActionDeletePayroll     Action = "payroll.delete"
	ActionViewPerformance   Action = "performance.view"
	ActionManageReviews     Action = "performance.manage"
	ActionApproveReviews    Action = "performance.approve"
	ActionManageTraining    Action = "training.manage"
	ActionManagePostings    Action = "recruitment.manage"
	ActionViewMetrics       Action = "metrics.view"
)

var allowedRoles = map[Action][]string{
	ActionManageEmployees:   {RoleAdmin, RoleHR},
	ActionDeleteEmployee:    {RoleAdmin},
	ActionManageDepartments: {RoleAdmin, RoleHR},
	ActionDeleteDepartment:  {RoleAdmin},
	ActionManageJobTitles:   {RoleAdmin, RoleHR},
	ActionManageUsers:       {RoleAdmin, RoleHR},
	ActionViewAttendance:    {RoleAdmin, RoleHR},
	ActionManageLeave:       {RoleAdmin, RoleHR, RoleManager},
	ActionViewPayroll:       {RoleAdmin, RoleHR, RoleFinance},
	ActionManagePayroll:     {RoleAdmin, RoleHR, RoleFinance},
	ActionDeletePayroll:     {RoleAdmin},
	ActionViewPerformance:   {RoleAdmin, RoleHR},
	ActionManageReviews:     {RoleAdmin, RoleHR, RoleManager},
	ActionApproveReviews:    {RoleAdmin, RoleHR},
	ActionManageTraining:    {RoleAdmin, RoleHR},
	ActionManagePostings:    {RoleAdmin, RoleHR},
	ActionViewMetrics:       {RoleAdmin},
}

// selfScoped marks view actions any authenticated actor may perform against
// their own employee records.
var selfScoped = map[Action]bool{
	ActionViewAttendance:  true,
	ActionViewPayroll:     true,
	ActionViewPerformance: true,
}

// Can decides whether the actor may perform action. targetEmployeeID is the
// owning employee of the addressed record, or 0 when the action has no
// per-employee target (lists, creates).
func Can(actor Actor, action Action, targetEmployeeID int64) bool {
	for _, role := range allowedRoles[action] {
		if actor.Role == role {
			return true
		}
	}
	if selfScoped[action] && targetEmployeeID != 0 && actor.EmployeeID == targetEmployeeID {
		return true
	}
	return false
}

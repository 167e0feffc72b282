package auth

import "testing"

func TestCanRoleAllowLists(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action Action
		want   bool
	}{
		{"admin manages employees", RoleAdmin, ActionManageEmployees, true},
		{"hr manages employees", RoleHR, ActionManageEmployees, true},
		{"manager cannot manage employees", RoleManager, ActionManageEmployees, false},
		{"employee cannot manage employees", RoleEmployee, ActionManageEmployees, false},
		{"only admin deletes employees", RoleHR, ActionDeleteEmployee, false},
		{"admin deletes employees", RoleAdmin, ActionDeleteEmployee, true},
		{"only admin deletes departments", RoleHR, ActionDeleteDepartment, false},
		{"manager decides leave", RoleManager, ActionManageLeave, true},
		{"employee cannot decide leave", RoleEmployee, ActionManageLeave, false},
		{"finance views payroll", RoleFinance, ActionViewPayroll, true},
		{"finance manages payroll", RoleFinance, ActionManagePayroll, true},
		{"finance cannot delete payroll", RoleFinance, ActionDeletePayroll, false},
		{"manager manages reviews", RoleManager, ActionManageReviews, true},
		{"manager cannot approve reviews", RoleManager, ActionApproveReviews, false},
		{"hr approves reviews", RoleHR, ActionApproveReviews, true},
		{"only admin views metrics", RoleHR, ActionViewMetrics, false},
		{"admin views metrics", RoleAdmin, ActionViewMetrics, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{UserID: 1, Role: tt.role, EmployeeID: 10}
			if got := Can(actor, tt.action, 0); got != tt.want {
				t.Fatalf("Can(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}

func TestCanSelfScope(t *testing.T) {
	actor := Actor{UserID: 1, Role: RoleEmployee, EmployeeID: 42}

	if !Can(actor, ActionViewPayroll, 42) {
		t.Fatal("employee should view own payroll")
	}
	if Can(actor, ActionViewPayroll, 43) {
		t.Fatal("employee must not view another employee's payroll")
	}
	if Can(actor, ActionViewPayroll, 0) {
		t.Fatal("self scope must not apply without a target")
	}
	if Can(actor, ActionManagePayroll, 42) {
		t.Fatal("manage actions are never self scoped")
	}

	// Actors with no linked employee record never match the self scope.
	orphan := Actor{UserID: 2, Role: RoleEmployee, EmployeeID: 0}
	if Can(orphan, ActionViewAttendance, 0) {
		t.Fatal("actor without employee record should be denied")
	}
}

package core

import "context"

// EmployeeStatsOverview aggregates active headcount, per-department and
// per-gender distributions.
func (s *Store) EmployeeStatsOverview(ctx context.Context) (EmployeeStats, error) {
	var stats EmployeeStats

	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE status = $1", EmployeeStatusActive,
	).Scan(&stats.TotalEmployees)
	if err != nil {
		return EmployeeStats{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT d.name, COUNT(e.id)
    FROM departments d
    LEFT JOIN employees e ON d.id = e.department_id AND e.status = $1
    GROUP BY d.id, d.name
    ORDER BY d.name
  `, EmployeeStatusActive)
	if err != nil {
		return EmployeeStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c NamedCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return EmployeeStats{}, err
		}
		stats.DepartmentStats = append(stats.DepartmentStats, c)
	}
	if err := rows.Err(); err != nil {
		return EmployeeStats{}, err
	}

	genderRows, err := s.DB.Query(ctx, `
    SELECT COALESCE(gender, ''), COUNT(1)
    FROM employees
    WHERE status = $1
    GROUP BY gender
  `, EmployeeStatusActive)
	if err != nil {
		return EmployeeStats{}, err
	}
	defer genderRows.Close()
	for genderRows.Next() {
		var c GenderCount
		if err := genderRows.Scan(&c.Gender, &c.Count); err != nil {
			return EmployeeStats{}, err
		}
		stats.GenderStats = append(stats.GenderStats, c)
	}
	return stats, genderRows.Err()
}

// DepartmentStatsOverview reports headcount, distinct job positions and
// average salary per active department, largest first.
func (s *Store) DepartmentStatsOverview(ctx context.Context) ([]DepartmentStats, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name, d.employee_count, d.budget,
           COUNT(DISTINCT e.job_title_id), COALESCE(AVG(e.salary), 0)
    FROM departments d
    LEFT JOIN employees e ON d.id = e.department_id AND e.status = $1
    WHERE d.is_active
    GROUP BY d.id, d.name, d.employee_count, d.budget
    ORDER BY d.employee_count DESC
  `, EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentStats
	for rows.Next() {
		var s DepartmentStats
		if err := rows.Scan(&s.ID, &s.Name, &s.EmployeeCount, &s.Budget, &s.JobPositions, &s.AvgSalary); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

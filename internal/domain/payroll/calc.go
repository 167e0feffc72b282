package payroll

// NetSalary applies the additive payroll formula. Components other than the
// basic salary default to zero upstream.
func NetSalary(basic, allowances, bonuses, overtime, deductions float64) float64 {
	return basic + allowances + bonuses + overtime - deductions
}

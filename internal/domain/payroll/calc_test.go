package payroll

import "testing"

func TestNetSalary(t *testing.T) {
	tests := []struct {
		name                                            string
		basic, allowances, bonuses, overtime, deduction float64
		want                                            float64
	}{
		{"full breakdown", 10000, 500, 1000, 200, 1200, 10500},
		{"basic only", 5000, 0, 0, 0, 0, 5000},
		{"deductions exceed pay", 1000, 0, 0, 0, 1500, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetSalary(tt.basic, tt.allowances, tt.bonuses, tt.overtime, tt.deduction)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

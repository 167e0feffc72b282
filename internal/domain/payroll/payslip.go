package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePayslip renders a one-page payslip PDF for the record.
func WritePayslip(w io.Writer, r Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", r.EmployeeName, r.EmployeeNumber))
	pdf.Ln(7)
	if r.DepartmentName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", r.DepartmentName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", r.Month, r.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %.2f", r.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.2f", r.Allowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonuses: %.2f", r.Bonuses))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime: %.2f", r.OvertimeAmount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", r.Deductions))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %.2f", r.NetSalary))
	return pdf.Output(w)
}

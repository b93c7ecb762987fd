package payroll

import (
	"math"
	"sort"
	"strings"
)

const (
	bonusCaseThreshold = 3
	bonusRate          = 0.10
)

// Calculate derives one line per employee from a snapshot. Cases match on
// employee identity; unassigned cases earn nobody a commission. Amounts are
// accumulated as float64 and rounded once per reported figure.
func Calculate(snap Snapshot) ([]PayrollLine, PayrollTotals) {
	byEmployee := make(map[string][]CaseRow, len(snap.Employees))
	for _, c := range snap.Cases {
		if c.EmployeeID == nil {
			continue
		}
		key := c.EmployeeID.String()
		byEmployee[key] = append(byEmployee[key], c)
	}

	lines := make([]PayrollLine, 0, len(snap.Employees))
	totals := PayrollTotals{Employees: len(snap.Employees), Cases: len(snap.Cases)}

	for _, e := range snap.Employees {
		matched := byEmployee[e.ID.String()]

		var commission float64
		for _, c := range matched {
			commission += float64(c.Fee) * float64(e.CommissionRate) / 100
		}

		var bonus float64
		if len(matched) > bonusCaseThreshold {
			bonus = float64(e.BaseSalary) * bonusRate
		}

		line := PayrollLine{
			EmployeeID:        e.ID.String(),
			FullName:          e.FullName,
			Role:              e.Role,
			BaseSalary:        e.BaseSalary,
			CommissionRate:    e.CommissionRate,
			CaseCount:         len(matched),
			Commissions:       int64(math.Round(commission)),
			PerformanceBonus:  int64(math.Round(bonus)),
			TotalCompensation: int64(math.Round(float64(e.BaseSalary) + commission + bonus)),
		}
		lines = append(lines, line)

		totals.BaseSalary += line.BaseSalary
		totals.Commissions += line.Commissions
		totals.PerformanceBonus += line.PerformanceBonus
		totals.TotalCompensation += line.TotalCompensation
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := strings.ToLower(lines[i].FullName), strings.ToLower(lines[j].FullName)
		if a != b {
			return a < b
		}
		return lines[i].EmployeeID < lines[j].EmployeeID
	})

	return lines, totals
}

// Summarize aggregates the week's case statistics.
func Summarize(snap Snapshot, totals PayrollTotals) WeeklySummaryResponse {
	s := WeeklySummaryResponse{
		CaseCount:    len(snap.Cases),
		ByStatus:     make(map[string]int),
		PayrollTotal: totals.TotalCompensation,
	}
	for _, c := range snap.Cases {
		s.TotalFees += c.Fee
		s.TotalExpenses += c.Expense
		s.ByStatus[c.Status]++
		if c.EmployeeID == nil {
			s.UnassignedCases++
		}
	}
	s.NetRevenue = s.TotalFees - s.TotalExpenses
	return s
}

package payroll

type PayrollLine struct {
	EmployeeID        string `json:"employee_id"`
	FullName          string `json:"full_name"`
	Role              string `json:"role"`
	BaseSalary        int64  `json:"base_salary"`
	CommissionRate    int    `json:"commission_rate"`
	CaseCount         int    `json:"case_count"`
	Commissions       int64  `json:"commissions"`
	PerformanceBonus  int64  `json:"performance_bonus"`
	TotalCompensation int64  `json:"total_compensation"`
}

type PayrollTotals struct {
	Employees         int   `json:"employees"`
	Cases             int   `json:"cases"`
	BaseSalary        int64 `json:"base_salary"`
	Commissions       int64 `json:"commissions"`
	PerformanceBonus  int64 `json:"performance_bonus"`
	TotalCompensation int64 `json:"total_compensation"`
}

type WeeklyPayrollResponse struct {
	WeekKey   string        `json:"week_key"`
	WeekStart string        `json:"week_start"`
	WeekEnd   string        `json:"week_end"`
	Lines     []PayrollLine `json:"lines"`
	Totals    PayrollTotals `json:"totals"`
}

type WeeklySummaryResponse struct {
	WeekKey         string         `json:"week_key"`
	WeekStart       string         `json:"week_start"`
	WeekEnd         string         `json:"week_end"`
	CaseCount       int            `json:"case_count"`
	UnassignedCases int            `json:"unassigned_cases"`
	TotalFees       int64          `json:"total_fees"`
	TotalExpenses   int64          `json:"total_expenses"`
	NetRevenue      int64          `json:"net_revenue"`
	ByStatus        map[string]int `json:"by_status"`
	PayrollTotal    int64          `json:"payroll_total"`
}

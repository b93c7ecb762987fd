package payroll

import "github.com/google/uuid"

// EmployeeRow is the slice of an employee record payroll needs.
type EmployeeRow struct {
	ID             uuid.UUID
	FullName       string
	Role           string
	BaseSalary     int64
	CommissionRate int
}

type CaseRow struct {
	ID         uuid.UUID
	EmployeeID *uuid.UUID
	Fee        int64
	Expense    int64
	Status     string
}

// Snapshot holds the active staff and one week's cases read together.
type Snapshot struct {
	Employees []EmployeeRow
	Cases     []CaseRow
}

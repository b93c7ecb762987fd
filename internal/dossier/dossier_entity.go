package dossier

import (
	"time"

	"go-cabinet/internal/employee"

	"github.com/google/uuid"
)

const StatusOpen = "open"

// Case is a dossier handled by one employee. WeekKey is fixed at creation
// and selects the payroll week the fee counts toward.
type Case struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_cases_company_week,priority:1"`
	ClientName   string             `gorm:"type:varchar(255);not null"`
	CaseType     string             `gorm:"type:varchar(100);not null"`
	EmployeeID   *uuid.UUID         `gorm:"type:uuid;index"`
	Employee     *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL"`
	EmployeeName string             `gorm:"type:varchar(255);not null"`
	Fee          int64              `gorm:"not null;default:0;check:chk_cases_fee,fee >= 0"`
	Expense      int64              `gorm:"not null;default:0;check:chk_cases_expense,expense >= 0"`
	Status       string             `gorm:"type:varchar(50);not null;default:'open'"`
	Description  string             `gorm:"type:text"`
	WeekKey      string             `gorm:"type:varchar(8);not null;index:idx_cases_company_week,priority:2"`
	CreatedAt    time.Time          `gorm:"index"`
	UpdatedAt    time.Time
}

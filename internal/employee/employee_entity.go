package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Employee is a member of an office. Only active employees are paid.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_company_name,priority:1"`
	FullName       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_company_name,priority:2"`
	Role           string    `gorm:"type:varchar(100);not null"`
	BaseSalary     int64     `gorm:"not null;default:0;check:chk_employees_base_salary,base_salary >= 0"`
	CommissionRate int       `gorm:"not null;default:0;check:chk_employees_commission_rate,commission_rate BETWEEN 0 AND 100"`
	HireDate       time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

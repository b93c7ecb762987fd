package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required,max=255"`
	Role           string `json:"role" binding:"required,max=100"`
	BaseSalary     int64  `json:"base_salary" binding:"min=0"`
	CommissionRate int    `json:"commission_rate" binding:"min=0,max=100"`
	HireDate       string `json:"hire_date" binding:"required"`
	Status         string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateEmployeeRequest replaces every editable field.
type UpdateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required,max=255"`
	Role           string `json:"role" binding:"required,max=100"`
	BaseSalary     int64  `json:"base_salary" binding:"min=0"`
	CommissionRate int    `json:"commission_rate" binding:"min=0,max=100"`
	HireDate       string `json:"hire_date" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	BaseSalary     int64  `json:"base_salary"`
	CommissionRate int    `json:"commission_rate"`
	HireDate       string `json:"hire_date"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// EmployeeOptionResponse feeds the case assignment picker.
type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

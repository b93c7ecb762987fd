package dossier

type CreateCaseRequest struct {
	ClientName  string `json:"client_name" binding:"required,max=255"`
	CaseType    string `json:"case_type" binding:"required,max=100"`
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Fee         int64  `json:"fee" binding:"min=0"`
	Expense     int64  `json:"expense" binding:"min=0"`
	Status      string `json:"status" binding:"omitempty,max=50"`
	Description string `json:"description"`
}

type UpdateCaseStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}

type ListCasesQuery struct {
	Week string `form:"week" binding:"omitempty,weekkey"`
}

type CaseResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	ClientName   string `json:"client_name"`
	CaseType     string `json:"case_type"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name"`
	Fee          int64  `json:"fee"`
	Expense      int64  `json:"expense"`
	Status       string `json:"status"`
	Description  string `json:"description,omitempty"`
	WeekKey      string `json:"week_key"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// WeeksResponse lists the week buckets that hold at least one case.
type WeeksResponse struct {
	Current string   `json:"current"`
	Weeks   []string `json:"weeks"`
}

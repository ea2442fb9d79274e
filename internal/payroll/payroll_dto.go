package payroll

type GeneratePayrollRequest struct {
	Month       int      `json:"month" binding:"required,min=1,max=12"`
	Year        int      `json:"year" binding:"required,min=2000,max=2100"`
	EmployeeIDs []string `json:"employeeIds" binding:"omitempty,min=1,dive,uuid"`
}

type UpdatePayrollRequest struct {
	BaseSalary *int64  `json:"baseSalary" binding:"omitempty,gte=0"`
	Commission *int64  `json:"commission" binding:"omitempty,gte=0"`
	Bonus      *int64  `json:"bonus" binding:"omitempty,gte=0"`
	Deduction  *int64  `json:"deduction" binding:"omitempty,gte=0"`
	Status     *string `json:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
	Notes      *string `json:"notes" binding:"omitempty,max=2000"`
	PaidAt     *string `json:"paidAt"`
}

type PayrollResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	BaseSalary   int64   `json:"baseSalary"`
	Commission   int64   `json:"commission"`
	Bonus        int64   `json:"bonus"`
	Deduction    int64   `json:"deduction"`
	TotalSalary  int64   `json:"totalSalary"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paidAt,omitempty"`
	GenerationID *string `json:"generationId,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type GenerationResponse struct {
	ID            string `json:"id"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	Status        string `json:"status"`
	EmployeeCount int    `json:"employeeCount"`
	TotalAmount   int64  `json:"totalAmount"`
	GeneratedBy   string `json:"generatedBy"`
}

const (
	ResultCreated = "created"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// GenerationResultItem melaporkan nasib tiap karyawan dalam satu run,
// termasuk yang dilewati atau gagal, supaya partial run bisa diaudit.
type GenerationResultItem struct {
	EmployeeID   string           `json:"employeeId"`
	EmployeeName string           `json:"employeeName"`
	Status       string           `json:"status"`
	Reason       *string          `json:"reason,omitempty"`
	Payroll      *PayrollResponse `json:"payroll,omitempty"`
}

type GenerateResponse struct {
	Generation GenerationResponse     `json:"generation"`
	Results    []GenerationResultItem `json:"results"`
}

type GenerationDetailResponse struct {
	Generation GenerationResponse `json:"generation"`
	Payrolls   []PayrollResponse  `json:"payrolls"`
}

type PayAllResponse struct {
	Updated int64 `json:"updated"`
}

type GenerationFilter struct {
	Month *int
	Year  *int
}

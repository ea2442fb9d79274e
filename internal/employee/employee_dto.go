package employee

type CreateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Position string  `json:"position" binding:"required"`
	Salary   int64   `json:"salary" binding:"required,min=0"`
	HireDate string  `json:"hireDate" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Position *string `json:"position"`
	Salary   *int64  `json:"salary" binding:"omitempty,min=0"`
	IsActive *bool   `json:"isActive"`
	HireDate *string `json:"hireDate"`
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Position string  `json:"position"`
	Salary   int64   `json:"salary"`
	IsActive bool    `json:"isActive"`
	HireDate string  `json:"hireDate"`
}

// EmployeeOption adalah bentuk ringkas untuk dropdown booking di UI
type EmployeeOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

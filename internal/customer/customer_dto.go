package customer

type CreateCustomerRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Notes     *string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Notes     *string `json:"notes"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

package catalog

type CreateServiceRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"required,min=0"`
	Duration int    `json:"duration" binding:"required,min=1"`
	Category string `json:"category" binding:"required,oneof=HAIRCARE SKINCARE MASSAGE NAIL BODY_TREATMENT OTHER"`
}

type UpdateServiceRequest struct {
	Name     *string `json:"name"`
	Price    *int64  `json:"price" binding:"omitempty,min=0"`
	Duration *int    `json:"duration" binding:"omitempty,min=1"`
	Category *string `json:"category" binding:"omitempty,oneof=HAIRCARE SKINCARE MASSAGE NAIL BODY_TREATMENT OTHER"`
	IsActive *bool   `json:"isActive"`
}

type ServiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration int    `json:"duration"`
	Category string `json:"category"`
	IsActive bool   `json:"isActive"`
}

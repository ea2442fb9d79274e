package appointment

type CreateAppointmentRequest struct {
	CustomerID       string   `json:"customerId" binding:"required,uuid"`
	EmployeeID       string   `json:"employeeId" binding:"required,uuid"`
	Date             string   `json:"date" binding:"required"`
	StartTime        string   `json:"startTime" binding:"required"`
	EndTime          string   `json:"endTime" binding:"required"`
	ServiceIDs       []string `json:"serviceIds" binding:"required,min=1,dive,uuid"`
	Notes            *string  `json:"notes" binding:"omitempty,max=2000"`
	ServiceType      *string  `json:"serviceType" binding:"omitempty,max=50"`
	OvertimePay      *int64   `json:"overtimePay" binding:"omitempty,gte=0"`
	TransportFee     *int64   `json:"transportFee" binding:"omitempty,gte=0"`
	CommissionAmount *int64   `json:"commissionAmount" binding:"omitempty,gte=0"`
}

type UpdateAppointmentRequest struct {
	CustomerID       *string  `json:"customerId" binding:"omitempty,uuid"`
	EmployeeID       *string  `json:"employeeId" binding:"omitempty,uuid"`
	Date             *string  `json:"date"`
	StartTime        *string  `json:"startTime"`
	EndTime          *string  `json:"endTime"`
	ServiceIDs       []string `json:"serviceIds" binding:"omitempty,min=1,dive,uuid"`
	Status           *string  `json:"status" binding:"omitempty,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
	Notes            *string  `json:"notes" binding:"omitempty,max=2000"`
	ServiceType      *string  `json:"serviceType" binding:"omitempty,max=50"`
	OvertimePay      *int64   `json:"overtimePay" binding:"omitempty,gte=0"`
	TransportFee     *int64   `json:"transportFee" binding:"omitempty,gte=0"`
	CommissionAmount *int64   `json:"commissionAmount" binding:"omitempty,gte=0"`
}

type ListFilter struct {
	Date       *string
	CustomerID *string
	EmployeeID *string
}

type AppointmentLineResponse struct {
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Price       int64  `json:"price"`
}

type AppointmentResponse struct {
	ID               string                    `json:"id"`
	BookingNumber    string                    `json:"bookingNumber"`
	CustomerID       string                    `json:"customerId"`
	EmployeeID       string                    `json:"employeeId"`
	Date             string                    `json:"date"`
	StartTime        string                    `json:"startTime"`
	EndTime          string                    `json:"endTime"`
	Status           string                    `json:"status"`
	TotalPrice       int64                     `json:"totalPrice"`
	CommissionAmount int64                     `json:"commissionAmount"`
	ServiceType      *string                   `json:"serviceType,omitempty"`
	OvertimePay      int64                     `json:"overtimePay"`
	TransportFee     int64                     `json:"transportFee"`
	Notes            *string                   `json:"notes,omitempty"`
	Services         []AppointmentLineResponse `json:"services"`
}

package events

import "time"

const AppointmentLifecycleTopic = "salon.appointment.lifecycle.v1"

type AppointmentBookedEvent struct {
	EventType     string    `json:"event_type"`
	AppointmentID string    `json:"appointment_id"`
	BookingNumber string    `json:"booking_number"`
	CustomerID    string    `json:"customer_id"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalPrice    int64     `json:"total_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

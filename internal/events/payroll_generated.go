package events

import "time"

const PayrollGenerationTopic = "salon.payroll.generation.v1"

type PayrollGenerationCompletedEvent struct {
	EventType     string    `json:"event_type"`
	GenerationID  string    `json:"generation_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	EmployeeCount int       `json:"employee_count"`
	TotalAmount   int64     `json:"total_amount"`
	GeneratedBy   string    `json:"generated_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

package events

import "time"

const VacationRequestTopic = "hr.vacation_request.lifecycle.v1"

const (
	VacationRequestCreated = "vacation_request_created"
	VacationRequestUpdated = "vacation_request_updated"
	VacationRequestDeleted = "vacation_request_deleted"
)

type VacationRequestEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id"`
	VacationRequestID string    `json:"vacation_request_id"`
	EmployeeID        string    `json:"employee_id,omitempty"`
	Status            string    `json:"status"`
	OccurredAt        time.Time `json:"occurred_at"`
}

package employee

import (
	"time"

	"github.com/google/uuid"
)

type CreateEmployeeRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	VacationDays int     `json:"vacation_days"`
	Payroll      int     `json:"payroll"`
	UserID       *string `json:"user_id"`
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	VacationDays int       `json:"vacation_days"`
	Payroll      int       `json:"payroll"`
	UserID       *string   `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User             *UserRef              `json:"user,omitempty"`
	VacationRequests []VacationRequestRef `json:"vacation_requests,omitempty"`

	// VacationRequestCount is the derived aggregate over the relation; it is
	// populated only when the vacation_request relation was requested.
	VacationRequestCount *int64 `json:"vacation_request_count,omitempty"`
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID.String(),
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		VacationDays:     e.VacationDays,
		Payroll:          e.Payroll,
		UserID:           uuidPtrToString(e.UserID),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		User:             e.User,
		VacationRequests: e.VacationRequests,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}

func attachVacationRequestCount(resp *EmployeeResponse, e Employee) {
	n := int64(len(e.VacationRequests))
	resp.VacationRequestCount = &n
}

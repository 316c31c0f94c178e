package vacation

import (
	"time"

	"github.com/google/uuid"
)

type CreateVacationRequestRequest struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	EmployeeID *string `json:"employee_id"`
}

type VacationRequestResponse struct {
	ID         string    `json:"id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	EmployeeID *string   `json:"employee_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Employee *EmployeeRef `json:"employee,omitempty"`
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func mapToResponse(v VacationRequest) VacationRequestResponse {
	return VacationRequestResponse{
		ID:         v.ID.String(),
		StartDate:  v.StartDate,
		EndDate:    v.EndDate,
		Status:     v.Status,
		EmployeeID: uuidPtrToString(v.EmployeeID),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
		Employee:   v.Employee,
	}
}

func mapToListResponse(requests []VacationRequest) []VacationRequestResponse {
	resp := make([]VacationRequestResponse, len(requests))
	for i, v := range requests {
		resp[i] = mapToResponse(v)
	}
	return resp
}

package vacation

import (
	"time"

	"github.com/google/uuid"

	"hr-admin/internal/schema"
)

type VacationRequest struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StartDate  time.Time  `gorm:"not null" json:"start_date"`
	EndDate    time.Time  `gorm:"not null" json:"end_date"`
	Status     string     `gorm:"type:varchar(50);not null" json:"status"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employee_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (VacationRequest) TableName() string { return "vacation_requests" }

// EmployeeRef mirrors the employees table for eager loading; a local copy
// keeps this package from importing the employee package.
type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

func (EmployeeRef) TableName() string { return "employees" }

// Schema declares the writable fields. Status is an open enumeration, so
// any string passes; date ordering is left to the approval workflow.
func Schema() schema.Descriptor {
	return schema.Descriptor{
		Entity: "vacation_request",
		Fields: []schema.Field{
			{Name: "start_date", Type: schema.TypeDate, Required: true},
			{Name: "end_date", Type: schema.TypeDate, Required: true},
			{Name: "status", Type: schema.TypeString, Required: true},
			{Name: "employee_id", Type: schema.TypeRef, Nullable: true},
		},
	}
}

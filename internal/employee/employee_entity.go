package employee

import (
	"time"

	"github.com/google/uuid"

	"hr-admin/internal/schema"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName    string     `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(255);not null" json:"last_name"`
	VacationDays int        `gorm:"not null" json:"vacation_days"`
	Payroll      int        `gorm:"not null" json:"payroll"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	User             *UserRef              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	VacationRequests []VacationRequestRef `gorm:"foreignKey:EmployeeID" json:"vacation_requests,omitempty"`
}

// UserRef mirrors the users table for eager loading without importing the
// user package; keeping it local breaks the employee/user import cycle.
type UserRef struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func (UserRef) TableName() string { return "users" }

// VacationRequestRef mirrors the vacation_requests table the same way.
type VacationRequestRef struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Status     string     `json:"status"`
	EmployeeID *uuid.UUID `gorm:"type:uuid" json:"employee_id"`
}

func (VacationRequestRef) TableName() string { return "vacation_requests" }

// Schema declares the writable fields the validation layer checks before
// any payload reaches storage.
func Schema() schema.Descriptor {
	return schema.Descriptor{
		Entity: "employee",
		Fields: []schema.Field{
			{Name: "first_name", Type: schema.TypeString, Required: true},
			{Name: "last_name", Type: schema.TypeString, Required: true},
			{Name: "vacation_days", Type: schema.TypeInt, Required: true},
			{Name: "payroll", Type: schema.TypeInt, Required: true},
			{Name: "user_id", Type: schema.TypeRef, Nullable: true},
		},
	}
}

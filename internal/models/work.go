package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Work is a posted job. The employer owns every mutation; the employee
// slot is filled by the assignment operation and stays set for the rest
// of the lifecycle.
type Work struct {
	BaseModel
	EmployerID      string          `gorm:"type:uuid;not null;index" json:"employer_id"`
	EmployerName    string          `gorm:"not null" json:"employer_name"`
	EmployeeID      *string         `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Title           string          `gorm:"not null" json:"title"`
	Description     *string         `json:"description,omitempty"`
	Wage            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"wage"`
	PaymentType     PaymentType     `gorm:"type:varchar(20);not null" json:"payment_type"`
	Status          WorkStatus      `gorm:"type:varchar(30);not null;index" json:"status"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	EndedAt         *time.Time      `json:"ended_at,omitempty"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
	Progress        float64         `gorm:"not null;default:0" json:"progress"`
	Location        string          `json:"location"`
	Skills          datatypes.JSON  `gorm:"type:jsonb" json:"skills"`
	Category        *string         `json:"category,omitempty"`
}


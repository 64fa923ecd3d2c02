package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"munka_backend/internal/models"
)

type PublishWorkRequest struct {
	EmployerID      string          `json:"-"`
	Title           string          `json:"title" validate:"required,min=2,max=200"`
	Description     *string         `json:"description,omitempty" validate:"omitempty,max=5000"`
	Wage            decimal.Decimal `json:"wage" validate:"required"`
	PaymentType     string          `json:"payment_type" validate:"required,is-payment-type"`
	Location        string          `json:"location" validate:"max=300"`
	Skills          []string        `json:"skills,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Category        *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	DurationMinutes *int            `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
}

// UpdateWorkRequest carries the mutable field allow-list. Anything not
// listed here cannot be changed through the partial-update endpoint.
type UpdateWorkRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Wage        *decimal.Decimal `json:"wage,omitempty"`
	PaymentType *string          `json:"payment_type,omitempty" validate:"omitempty,is-payment-type"`
	Location    *string          `json:"location,omitempty" validate:"omitempty,max=300"`
	Skills      []string         `json:"skills,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
}

func (r *UpdateWorkRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Wage == nil &&
		r.PaymentType == nil && r.Location == nil && r.Skills == nil &&
		r.Category == nil
}

type UpdateWorkStatusRequest struct {
	Status string `json:"status" validate:"required,is-work-status"`
}

// AssignEmployeeRequest accepts either a plain employee id or a scanned
// QR payload; exactly one must be present.
type AssignEmployeeRequest struct {
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Payload    *string `json:"payload,omitempty"`
}

type UpdateProgressRequest struct {
	Progress float64 `json:"progress" validate:"min=0,max=1"`
}

type ListWorksQuery struct {
	EmployerID string `form:"employer_id" validate:"omitempty,uuid"`
	Status     string `form:"status" validate:"omitempty,is-work-status"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=200"`
}

type WorkResponse struct {
	ID              string             `json:"id"`
	EmployerID      string             `json:"employer_id"`
	EmployerName    string             `json:"employer_name"`
	EmployeeID      *string            `json:"employee_id,omitempty"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	Wage            decimal.Decimal    `json:"wage"`
	PaymentType     models.PaymentType `json:"payment_type"`
	Status          models.WorkStatus  `json:"status"`
	StartedAt       *time.Time         `json:"started_at,omitempty"`
	EndedAt         *time.Time         `json:"ended_at,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	Progress        float64            `json:"progress"`
	Location        string             `json:"location"`
	Skills          []string           `json:"skills"`
	Category        *string            `json:"category,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

package dto

import (
	"time"

	"munka_backend/internal/models"
)

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=accepted rejected"`
}

type CheckAppliedResponse struct {
	HasApplied bool       `json:"has_applied"`
	Date       *time.Time `json:"date,omitempty"`
}

type ApplicationSummary struct {
	ID            string                   `json:"id"`
	WorkID        string                   `json:"work_id"`
	ApplicantID   string                   `json:"applicant_id"`
	ApplicantName string                   `json:"applicant_name"`
	Status        models.ApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

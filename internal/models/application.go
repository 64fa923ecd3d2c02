package models

import "time"

// Application is a worker's candidacy for a work record. EmployerID is
// denormalized from the work so authorization checks don't need a join.
// The (work_id, applicant_id) unique index is what makes double-apply a
// conflict instead of a race.
type Application struct {
	ID            string            `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	WorkID        string            `gorm:"type:uuid;not null;uniqueIndex:idx_work_applicant" json:"work_id"`
	ApplicantID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_work_applicant" json:"applicant_id"`
	ApplicantName string            `gorm:"not null" json:"applicant_name"`
	EmployerID    string            `gorm:"type:uuid;not null;index" json:"employer_id"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt     time.Time         `gorm:"default:now()" json:"created_at"`
}

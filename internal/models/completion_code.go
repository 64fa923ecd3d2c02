package models

import "time"

// CompletionCode is the shared secret gating in_progress -> completed.
// One row per work; regenerating overwrites, verification deletes.
type CompletionCode struct {
	WorkID      string    `gorm:"type:uuid;primaryKey" json:"work_id"`
	Code        string    `gorm:"type:varchar(6);not null" json:"code"`
	GeneratedAt time.Time `gorm:"not null;default:now()" json:"generated_at"`
}

package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"munka_backend/internal/models"
)

var ErrCodeNotFound = errors.New("completion code not found")

type CompletionCodeRepository interface {
	Upsert(code *models.CompletionCode) error
	FindByWork(workID string) (*models.CompletionCode, error)
	Delete(workID string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type CompletionCodeRepositoryImpl struct {
	db *gorm.DB
}

func NewCompletionCodeRepository(db *gorm.DB) CompletionCodeRepository {
	return &CompletionCodeRepositoryImpl{db: db}
}

// Upsert stores the code for the work, replacing any previous one. The
// single-row-per-work primary key is what gives regeneration its
// overwrite semantics.
func (r *CompletionCodeRepositoryImpl) Upsert(code *models.CompletionCode) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "work_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "generated_at"}),
	}).Create(code).Error
}

func (r *CompletionCodeRepositoryImpl) FindByWork(workID string) (*models.CompletionCode, error) {
	var code models.CompletionCode
	if err := r.db.First(&code, "work_id = ?", workID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *CompletionCodeRepositoryImpl) Delete(workID string) error {
	return r.db.Where("work_id = ?", workID).Delete(&models.CompletionCode{}).Error
}

// DeleteOlderThan removes stale codes; used by the background sweep.
func (r *CompletionCodeRepositoryImpl) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("generated_at < ?", cutoff).Delete(&models.CompletionCode{})
	return result.RowsAffected, result.Error
}

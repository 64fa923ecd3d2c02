package repositories

import (
	"errors"

	"gorm.io/gorm"

	"munka_backend/internal/models"
)

var ErrWorkNotFound = errors.New("work not found")

// WorkFilter narrows the work listing.
type WorkFilter struct {
	EmployerID string
	Status     models.WorkStatus
	Limit      int
}

type WorkRepository interface {
	Create(work *models.Work) error
	FindByID(id string) (*models.Work, error)
	List(filter WorkFilter) ([]models.Work, int64, error)
	Update(work *models.Work) error
	UpdateFields(id string, fields map[string]interface{}) error
	DeleteCascade(id string) error
	FindActiveByEmployee(employeeID string) (*models.Work, error)
	FindByManualCode(prefix string) (*models.Work, error)
}

type WorkRepositoryImpl struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &WorkRepositoryImpl{db: db}
}

func (r *WorkRepositoryImpl) Create(work *models.Work) error {
	return r.db.Create(work).Error
}

func (r *WorkRepositoryImpl) FindByID(id string) (*models.Work, error) {
	var work models.Work
	if err := r.db.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return &work, nil
}

func (r *WorkRepositoryImpl) List(filter WorkFilter) ([]models.Work, int64, error) {
	query := r.db.Model(&models.Work{})

	if filter.EmployerID != "" {
		query = query.Where("employer_id = ?", filter.EmployerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var works []models.Work
	err := query.Order("created_at DESC").Limit(limit).Find(&works).Error
	if err != nil {
		return nil, 0, err
	}
	return works, total, nil
}

func (r *WorkRepositoryImpl) Update(work *models.Work) error {
	return r.db.Save(work).Error
}

// UpdateFields applies a pre-filtered column map. Callers are responsible
// for restricting the map to the mutable allow-list.
func (r *WorkRepositoryImpl) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Work{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return nil
}

// DeleteCascade removes the work, its applications and any completion
// code in one transaction.
func (r *WorkRepositoryImpl) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&models.CompletionCode{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Work{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWorkNotFound
		}
		return nil
	})
}

// FindActiveByEmployee returns the single in-progress work assigned to a
// worker.
func (r *WorkRepositoryImpl) FindActiveByEmployee(employeeID string) (*models.Work, error) {
	var work models.Work
	err := r.db.
		Where("employee_id = ? AND status IN ?", employeeID,
			[]models.WorkStatus{models.WorkStatusInProgress, models.WorkStatusAwaitingVerification}).
		Order("created_at DESC").
		First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return &work, nil
}

// FindByManualCode resolves an 8-char id prefix to a work record. Prefix
// matching is collision-prone; the newest match wins. Convenience lookup
// only, never an authorization input.
func (r *WorkRepositoryImpl) FindByManualCode(prefix string) (*models.Work, error) {
	var work models.Work
	err := r.db.
		Where("CAST(id AS text) LIKE ?", prefix+"%").
		Order("created_at DESC").
		First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return &work, nil
}

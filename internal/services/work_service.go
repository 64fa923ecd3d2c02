package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"munka_backend/internal/appErrors"
	"munka_backend/internal/logger"
	"munka_backend/internal/models"
	"munka_backend/internal/repositories"
	"munka_backend/internal/services/dto"
)

type WorkService interface {
	Publish(req *dto.PublishWorkRequest) (*dto.WorkResponse, error)
	Get(workID string) (*dto.WorkResponse, error)
	List(q dto.ListWorksQuery) ([]*dto.WorkResponse, int64, error)
	UpdateFields(workID, requesterID string, req *dto.UpdateWorkRequest) (*dto.WorkResponse, error)
	Delete(workID, requesterID string) error
	UpdateStatus(workID, requesterID string, status models.WorkStatus) (*dto.WorkResponse, error)
	AssignEmployee(workID, requesterID string, req *dto.AssignEmployeeRequest) (*dto.WorkResponse, error)
	UpdateProgress(workID, requesterID string, progress float64) (*dto.WorkResponse, error)
	GetActiveForEmployee(employeeID string) (*dto.WorkResponse, error)
	ResolveManualCode(code string) (*dto.WorkResponse, error)
}

type WorkServiceImpl struct {
	workRepo         repositories.WorkRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewWorkService(
	workRepo repositories.WorkRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) WorkService {
	return &WorkServiceImpl{
		workRepo:         workRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Work Operations

func (s *WorkServiceImpl) Publish(req *dto.PublishWorkRequest) (*dto.WorkResponse, error) {
	employer, err := s.userRepo.FindByID(req.EmployerID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if req.Wage.LessThanOrEqual(decimal.Zero) {
		return nil, appErrors.NewBadRequestError("Wage must be greater than zero")
	}

	skillsJSON, err := json.Marshal(orEmpty(req.Skills))
	if err != nil {
		return nil, appErrors.InternalError(fmt.Errorf("failed to marshal skills: %w", err))
	}

	work := &models.Work{
		EmployerID:      employer.ID,
		EmployerName:    employer.Name,
		Title:           req.Title,
		Description:     req.Description,
		Wage:            req.Wage,
		PaymentType:     models.PaymentType(req.PaymentType),
		Status:          models.WorkStatusPublished,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Skills:          datatypes.JSON(skillsJSON),
		Category:        req.Category,
	}

	if err := s.workRepo.Create(work); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return buildWorkResponse(work), nil
}

func (s *WorkServiceImpl) Get(workID string) (*dto.WorkResponse, error) {
	work, err := s.findWork(workID)
	if err != nil {
		return nil, err
	}
	return buildWorkResponse(work), nil
}

func (s *WorkServiceImpl) List(q dto.ListWorksQuery) ([]*dto.WorkResponse, int64, error) {
	works, total, err := s.workRepo.List(repositories.WorkFilter{
		EmployerID: q.EmployerID,
		Status:     models.WorkStatus(q.Status),
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}

	responses := lo.Map(works, func(w models.Work, _ int) *dto.WorkResponse {
		return buildWorkResponse(&w)
	})
	return responses, total, nil
}

func (s *WorkServiceImpl) UpdateFields(workID, requesterID string, req *dto.UpdateWorkRequest) (*dto.WorkResponse, error) {
	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Empty() {
		return nil, appErrors.ErrNoUpdatableFields
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Wage != nil {
		if req.Wage.LessThanOrEqual(decimal.Zero) {
			return nil, appErrors.NewBadRequestError("Wage must be greater than zero")
		}
		fields["wage"] = *req.Wage
	}
	if req.PaymentType != nil {
		fields["payment_type"] = *req.PaymentType
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Skills != nil {
		skillsJSON, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, appErrors.InternalError(fmt.Errorf("failed to marshal skills: %w", err))
		}
		fields["skills"] = datatypes.JSON(skillsJSON)
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}

	if err := s.workRepo.UpdateFields(work.ID, fields); err != nil {
		return nil, appErrors.InternalError(err)
	}

	updated, err := s.findWork(work.ID)
	if err != nil {
		return nil, err
	}
	return buildWorkResponse(updated), nil
}

func (s *WorkServiceImpl) Delete(workID, requesterID string) error {
	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return err
	}

	if err := s.workRepo.DeleteCascade(work.ID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// UpdateStatus is the generic employer-facing status change. It goes
// through the same transition table as everything else; completion is
// reserved for the verified code protocol.
func (s *WorkServiceImpl) UpdateStatus(workID, requesterID string, status models.WorkStatus) (*dto.WorkResponse, error) {
	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return nil, err
	}

	if status == models.WorkStatusCompleted && work.Status != models.WorkStatusCompleted {
		return nil, appErrors.ErrInvalidTransition.
			WithDetails("completion requires verification of the completion code")
	}

	if err := s.applyTransition(work, status); err != nil {
		return nil, err
	}

	if err := s.workRepo.Update(work); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return buildWorkResponse(work), nil
}

func (s *WorkServiceImpl) AssignEmployee(workID, requesterID string, req *dto.AssignEmployeeRequest) (*dto.WorkResponse, error) {
	employeeID, err := resolveEmployeeID(req)
	if err != nil {
		return nil, err
	}

	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return nil, err
	}

	if employeeID == work.EmployerID {
		return nil, appErrors.NewBadRequestError("Cannot assign the employer as the employee")
	}

	exists, err := s.userRepo.Exists(employeeID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if !exists {
		return nil, appErrors.ErrUserNotFound
	}

	// Retrying an assignment that already happened is a no-op.
	if work.Status == models.WorkStatusInProgress &&
		work.EmployeeID != nil && *work.EmployeeID == employeeID {
		return buildWorkResponse(work), nil
	}

	// Only a published work can take an employee; everything later in the
	// lifecycle already has one.
	if work.Status != models.WorkStatusPublished {
		return nil, appErrors.ErrInvalidTransition.
			WithDetails("work already has an assigned employee")
	}

	work.EmployeeID = &employeeID
	if err := s.applyTransition(work, models.WorkStatusInProgress); err != nil {
		return nil, err
	}
	if work.StartedAt == nil {
		now := time.Now()
		work.StartedAt = &now
	}

	if err := s.workRepo.Update(work); err != nil {
		return nil, appErrors.InternalError(err)
	}

	go s.notifyAssignment(work, employeeID)

	return buildWorkResponse(work), nil
}

func (s *WorkServiceImpl) UpdateProgress(workID, requesterID string, progress float64) (*dto.WorkResponse, error) {
	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return nil, err
	}

	if work.Status != models.WorkStatusInProgress {
		return nil, appErrors.ErrWorkNotInProgress
	}

	work.Progress = progress
	if err := s.workRepo.Update(work); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return buildWorkResponse(work), nil
}

func (s *WorkServiceImpl) GetActiveForEmployee(employeeID string) (*dto.WorkResponse, error) {
	work, err := s.workRepo.FindActiveByEmployee(employeeID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrWorkNotFound) {
			return nil, appErrors.ErrWorkNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return buildWorkResponse(work), nil
}

func (s *WorkServiceImpl) ResolveManualCode(code string) (*dto.WorkResponse, error) {
	if len(code) != 8 {
		return nil, appErrors.NewBadRequestError("Manual code must be 8 characters")
	}

	work, err := s.workRepo.FindByManualCode(code)
	if err != nil {
		if appErrors.Is(err, repositories.ErrWorkNotFound) {
			return nil, appErrors.ErrWorkNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return buildWorkResponse(work), nil
}

// Helper Methods

func (s *WorkServiceImpl) findWork(workID string) (*models.Work, error) {
	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrWorkNotFound) {
			return nil, appErrors.ErrWorkNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return work, nil
}

// findOwnedWork is the single ownership guard every employer mutation
// goes through.
func (s *WorkServiceImpl) findOwnedWork(workID, requesterID string) (*models.Work, error) {
	work, err := s.findWork(workID)
	if err != nil {
		return nil, err
	}
	if work.EmployerID != requesterID {
		return nil, appErrors.ErrNotWorkOwner
	}
	return work, nil
}

// applyTransition mutates the status after consulting the transition
// table and the employee invariant.
func (s *WorkServiceImpl) applyTransition(work *models.Work, to models.WorkStatus) error {
	if !models.CanTransition(work.Status, to) {
		return appErrors.ErrInvalidTransition.
			WithDetails(fmt.Sprintf("cannot move from %s to %s", work.Status, to))
	}
	if to.RequiresEmployee() && work.EmployeeID == nil {
		return appErrors.ErrInvalidTransition.
			WithDetails("work has no assigned employee")
	}
	work.Status = to
	return nil
}

func (s *WorkServiceImpl) notifyAssignment(work *models.Work, employeeID string) {
	err := s.notificationRepo.Create(&models.Notification{
		UserID:  employeeID,
		Type:    "work_assigned",
		Title:   "You were assigned to a job",
		Message: work.Title,
		WorkID:  &work.ID,
	})
	if err != nil {
		logger.Error("failed to create assignment notification", "work_id", work.ID, "error", err)
	}
}

func orEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

func buildWorkResponse(work *models.Work) *dto.WorkResponse {
	var skills []string
	if len(work.Skills) > 0 {
		_ = json.Unmarshal(work.Skills, &skills)
	}
	if skills == nil {
		skills = []string{}
	}

	return &dto.WorkResponse{
		ID:              work.ID,
		EmployerID:      work.EmployerID,
		EmployerName:    work.EmployerName,
		EmployeeID:      work.EmployeeID,
		Title:           work.Title,
		Description:     work.Description,
		Wage:            work.Wage,
		PaymentType:     work.PaymentType,
		Status:          work.Status,
		StartedAt:       work.StartedAt,
		EndedAt:         work.EndedAt,
		DurationMinutes: work.DurationMinutes,
		Progress:        work.Progress,
		Location:        work.Location,
		Skills:          skills,
		Category:        work.Category,
		CreatedAt:       work.CreatedAt,
		UpdatedAt:       work.UpdatedAt,
	}
}

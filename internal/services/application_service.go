package services

import (
	"github.com/samber/lo"

	"munka_backend/internal/appErrors"
	"munka_backend/internal/logger"
	"munka_backend/internal/models"
	"munka_backend/internal/repositories"
	"munka_backend/internal/services/dto"
)

type ApplicationService interface {
	Apply(workID, applicantID string) (*dto.ApplicationSummary, error)
	CheckApplied(workID, applicantID string) (*dto.CheckAppliedResponse, error)
	ListForWork(workID, requesterID string) ([]dto.ApplicationSummary, error)
	ListForApplicant(applicantID string) ([]dto.ApplicationSummary, error)
	UpdateStatus(applicationID, requesterID string, status models.ApplicationStatus) (*dto.ApplicationSummary, error)
	Withdraw(applicationID, requesterID string) (*dto.ApplicationSummary, error)
}

type ApplicationServiceImpl struct {
	applicationRepo  repositories.ApplicationRepository
	workRepo         repositories.WorkRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	workRepo repositories.WorkRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo:  applicationRepo,
		workRepo:         workRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *ApplicationServiceImpl) Apply(workID, applicantID string) (*dto.ApplicationSummary, error) {
	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrWorkNotFound) {
			return nil, appErrors.ErrWorkNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if work.EmployerID == applicantID {
		return nil, appErrors.ErrCannotApplyOwnWork
	}

	if work.Status != models.WorkStatusPublished {
		return nil, appErrors.ErrWorkNotOpen
	}

	application := &models.Application{
		WorkID:        work.ID,
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.Name,
		EmployerID:    work.EmployerID,
		Status:        models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(application); err != nil {
		if appErrors.Is(err, repositories.ErrApplicationAlreadyExists) {
			return nil, appErrors.ErrAlreadyApplied
		}
		return nil, appErrors.InternalError(err)
	}

	go s.notify(work.EmployerID, "new_application",
		"New application for your job", applicant.Name+" applied to "+work.Title, &work.ID)

	return buildApplicationSummary(application), nil
}

// CheckApplied is a read for any authenticated caller. Storage failures
// propagate as errors; only a genuine miss reads as "not applied".
func (s *ApplicationServiceImpl) CheckApplied(workID, applicantID string) (*dto.CheckAppliedResponse, error) {
	application, err := s.applicationRepo.FindByWorkAndApplicant(workID, applicantID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrApplicationNotFound) {
			return &dto.CheckAppliedResponse{HasApplied: false}, nil
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.CheckAppliedResponse{
		HasApplied: true,
		Date:       &application.CreatedAt,
	}, nil
}

func (s *ApplicationServiceImpl) ListForWork(workID, requesterID string) ([]dto.ApplicationSummary, error) {
	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrWorkNotFound) {
			return nil, appErrors.ErrWorkNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if work.EmployerID != requesterID {
		return nil, appErrors.ErrNotWorkOwner
	}

	applications, err := s.applicationRepo.ListByWork(workID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return lo.Map(applications, func(a models.Application, _ int) dto.ApplicationSummary {
		return *buildApplicationSummary(&a)
	}), nil
}

func (s *ApplicationServiceImpl) ListForApplicant(applicantID string) ([]dto.ApplicationSummary, error) {
	applications, err := s.applicationRepo.ListByApplicant(applicantID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return lo.Map(applications, func(a models.Application, _ int) dto.ApplicationSummary {
		return *buildApplicationSummary(&a)
	}), nil
}

// UpdateStatus is the employer's accept/reject decision. Decided
// applications are immutable.
func (s *ApplicationServiceImpl) UpdateStatus(applicationID, requesterID string, status models.ApplicationStatus) (*dto.ApplicationSummary, error) {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if application.EmployerID != requesterID {
		return nil, appErrors.ErrNotWorkOwner
	}

	if status != models.ApplicationStatusAccepted && status != models.ApplicationStatusRejected {
		return nil, appErrors.NewBadRequestError("Status must be accepted or rejected")
	}

	if application.Status.Terminal() {
		return nil, appErrors.ErrApplicationDecided
	}

	if err := s.applicationRepo.UpdateStatus(applicationID, status); err != nil {
		return nil, appErrors.InternalError(err)
	}
	application.Status = status

	go s.notify(application.ApplicantID, "application_"+string(status),
		"Your application was "+string(status), "", &application.WorkID)

	return buildApplicationSummary(application), nil
}

// Withdraw is the applicant-initiated exit from a pending application.
func (s *ApplicationServiceImpl) Withdraw(applicationID, requesterID string) (*dto.ApplicationSummary, error) {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if application.ApplicantID != requesterID {
		return nil, appErrors.ErrForbidden
	}

	if application.Status.Terminal() {
		return nil, appErrors.ErrApplicationDecided
	}

	if err := s.applicationRepo.UpdateStatus(applicationID, models.ApplicationStatusWithdrawn); err != nil {
		return nil, appErrors.InternalError(err)
	}
	application.Status = models.ApplicationStatusWithdrawn

	return buildApplicationSummary(application), nil
}

func (s *ApplicationServiceImpl) findApplication(applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, appErrors.ErrApplicationNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return application, nil
}

func (s *ApplicationServiceImpl) notify(userID, notifType, title, message string, workID *string) {
	err := s.notificationRepo.Create(&models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		WorkID:  workID,
	})
	if err != nil {
		logger.Error("failed to create notification", "type", notifType, "error", err)
	}
}

func buildApplicationSummary(a *models.Application) *dto.ApplicationSummary {
	return &dto.ApplicationSummary{
		ID:            a.ID,
		WorkID:        a.WorkID,
		ApplicantID:   a.ApplicantID,
		ApplicantName: a.ApplicantName,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}

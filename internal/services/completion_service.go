package services

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"munka_backend/internal/appErrors"
	"munka_backend/internal/logger"
	"munka_backend/internal/models"
	"munka_backend/internal/repositories"
	"munka_backend/internal/services/dto"
)

// codeSpace is the size of the completion-code space: every 6-digit
// string including ones with leading zeros.
const codeSpace = 1000000

type CompletionService interface {
	GenerateCode(workID, requesterID string) (*dto.CompletionCodeResponse, error)
	GetCode(workID, requesterID string) (*dto.CompletionCodeResponse, error)
	VerifyAndComplete(workID, requesterID, submittedCode string) (*dto.WorkResponse, error)
}

// CompletionConfig bounds the brute-force exposure of the 10^6 code
// space: after MaxAttempts failures, verification for the work is locked
// for LockoutWindow.
type CompletionConfig struct {
	MaxAttempts   int
	LockoutWindow time.Duration
}

type CompletionServiceImpl struct {
	codeRepo         repositories.CompletionCodeRepository
	workRepo         repositories.WorkRepository
	notificationRepo repositories.NotificationRepository
	paymentService   PaymentService
	attempts         *gocache.Cache
	config           CompletionConfig
}

func NewCompletionService(
	codeRepo repositories.CompletionCodeRepository,
	workRepo repositories.WorkRepository,
	notificationRepo repositories.NotificationRepository,
	paymentService PaymentService,
	config CompletionConfig,
) CompletionService {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.LockoutWindow <= 0 {
		config.LockoutWindow = 15 * time.Minute
	}
	return &CompletionServiceImpl{
		codeRepo:         codeRepo,
		workRepo:         workRepo,
		notificationRepo: notificationRepo,
		paymentService:   paymentService,
		attempts:         gocache.New(config.LockoutWindow, 2*config.LockoutWindow),
		config:           config,
	}
}

// GenerateCode issues a fresh code for an in-progress work, replacing any
// previous one. The code is returned to the employer only; handing it to
// the worker happens out of band.
func (s *CompletionServiceImpl) GenerateCode(workID, requesterID string) (*dto.CompletionCodeResponse, error) {
	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return nil, err
	}

	if work.Status != models.WorkStatusInProgress &&
		work.Status != models.WorkStatusAwaitingVerification {
		return nil, appErrors.ErrWorkNotInProgress
	}

	codeValue, err := generateCompletionCode()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	code := &models.CompletionCode{
		WorkID:      work.ID,
		Code:        codeValue,
		GeneratedAt: time.Now(),
	}
	if err := s.codeRepo.Upsert(code); err != nil {
		return nil, appErrors.InternalError(err)
	}

	// Generating a code is what moves the work into the waiting state.
	if work.Status == models.WorkStatusInProgress {
		work.Status = models.WorkStatusAwaitingVerification
		if err := s.workRepo.Update(work); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}

	// A regenerated code invalidates old guesses too.
	s.attempts.Delete(work.ID)

	return buildCodeResponse(code), nil
}

// GetCode re-displays the active code to the employer.
func (s *CompletionServiceImpl) GetCode(workID, requesterID string) (*dto.CompletionCodeResponse, error) {
	if _, err := s.findOwnedWork(workID, requesterID); err != nil {
		return nil, err
	}

	code, err := s.codeRepo.FindByWork(workID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCodeNotFound) {
			return nil, appErrors.ErrCodeNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return buildCodeResponse(code), nil
}

// VerifyAndComplete checks the submitted code against the stored one and
// completes the work on an exact match. The comparison is string
// equality so leading zeros survive; the code is consumed on success.
func (s *CompletionServiceImpl) VerifyAndComplete(workID, requesterID, submittedCode string) (*dto.WorkResponse, error) {
	work, err := s.findOwnedWork(workID, requesterID)
	if err != nil {
		return nil, err
	}

	if locked := s.isLocked(work.ID); locked {
		return nil, appErrors.ErrTooManyAttempts
	}

	code, err := s.codeRepo.FindByWork(work.ID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCodeNotFound) {
			return nil, appErrors.ErrCodeNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if subtle.ConstantTimeCompare([]byte(code.Code), []byte(submittedCode)) != 1 {
		s.recordFailure(work.ID)
		return nil, appErrors.ErrIncorrectCode
	}

	if !models.CanTransition(work.Status, models.WorkStatusCompleted) {
		return nil, appErrors.ErrInvalidTransition.
			WithDetails(fmt.Sprintf("cannot complete work in status %s", work.Status))
	}

	now := time.Now()
	work.Status = models.WorkStatusCompleted
	work.EndedAt = &now
	work.Progress = 1.0

	if err := s.workRepo.Update(work); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := s.codeRepo.Delete(work.ID); err != nil {
		logger.Error("failed to consume completion code", "work_id", work.ID, "error", err)
	}
	s.attempts.Delete(work.ID)

	s.paymentService.RecordPayout(work)
	go s.notifyCompletion(work)

	return buildWorkResponse(work), nil
}

func (s *CompletionServiceImpl) findOwnedWork(workID, requesterID string) (*models.Work, error) {
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
	return work, nil
}

func (s *CompletionServiceImpl) isLocked(workID string) bool {
	if count, found := s.attempts.Get(workID); found {
		return count.(int) >= s.config.MaxAttempts
	}
	return false
}

func (s *CompletionServiceImpl) recordFailure(workID string) {
	if _, found := s.attempts.Get(workID); found {
		if _, err := s.attempts.IncrementInt(workID, 1); err != nil {
			// Entry expired between Get and Increment; start over.
			s.attempts.Set(workID, 1, gocache.DefaultExpiration)
		}
		return
	}
	s.attempts.Set(workID, 1, gocache.DefaultExpiration)
}

func (s *CompletionServiceImpl) notifyCompletion(work *models.Work) {
	if work.EmployeeID == nil {
		return
	}
	err := s.notificationRepo.Create(&models.Notification{
		UserID:  *work.EmployeeID,
		Type:    "work_completed",
		Title:   "Job marked as completed",
		Message: work.Title,
		WorkID:  &work.ID,
	})
	if err != nil {
		logger.Error("failed to create completion notification", "work_id", work.ID, "error", err)
	}
}

// generateCompletionCode draws a uniform 6-digit decimal string from
// crypto/rand. Leading zeros are preserved; the value is a secret, so
// math/rand is not good enough here.
func generateCompletionCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate completion code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func buildCodeResponse(code *models.CompletionCode) *dto.CompletionCodeResponse {
	return &dto.CompletionCodeResponse{
		WorkID:      code.WorkID,
		Code:        code.Code,
		GeneratedAt: code.GeneratedAt,
	}
}

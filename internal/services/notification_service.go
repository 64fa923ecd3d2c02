package services

import (
	"munka_backend/internal/appErrors"
	"munka_backend/internal/models"
	"munka_backend/internal/repositories"
)

type NotificationService interface {
	ListForUser(userID string, limit int) ([]models.Notification, error)
	MarkRead(id, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) ListForUser(userID string, limit int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return notifications, nil
}

func (s *NotificationServiceImpl) MarkRead(id, userID string) error {
	if err := s.notificationRepo.MarkRead(id, userID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

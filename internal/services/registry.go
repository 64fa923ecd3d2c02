package services

import (
	"time"

	"gorm.io/gorm"

	"munka_backend/internal/config"
	"munka_backend/internal/repositories"
)

// ServiceContainer wires repositories into services once at startup.
type ServiceContainer struct {
	Auth         AuthService
	Work         WorkService
	Application  ApplicationService
	Completion   CompletionService
	Notification NotificationService
	Payment      PaymentService
}

func NewServiceContainer(db *gorm.DB) *ServiceContainer {
	cfg := config.GetConfig()

	userRepo := repositories.NewUserRepository(db)
	workRepo := repositories.NewWorkRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	codeRepo := repositories.NewCompletionCodeRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	paymentService := NewPaymentService()

	return &ServiceContainer{
		Auth:        NewAuthService(userRepo),
		Work:        NewWorkService(workRepo, userRepo, notificationRepo),
		Application: NewApplicationService(applicationRepo, workRepo, userRepo, notificationRepo),
		Completion: NewCompletionService(codeRepo, workRepo, notificationRepo, paymentService, CompletionConfig{
			MaxAttempts:   cfg.Completion.MaxAttempts,
			LockoutWindow: time.Duration(cfg.Completion.LockoutMinutes) * time.Minute,
		}),
		Notification: NewNotificationService(notificationRepo),
		Payment:      paymentService,
	}
}

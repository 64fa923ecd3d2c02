package handlers

import (
	"munka_backend/internal/services"
	"munka_backend/internal/validator"
)

// AppHandlers groups every HTTP handler behind a single wiring point.
type AppHandlers struct {
	Auth         *AuthHandler
	Work         *WorkHandler
	Application  *ApplicationHandler
	Completion   *CompletionHandler
	Notification *NotificationHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.Auth),
		Work:         NewWorkHandler(base, sc.Work),
		Application:  NewApplicationHandler(base, sc.Application),
		Completion:   NewCompletionHandler(base, sc.Completion),
		Notification: NewNotificationHandler(base, sc.Notification),
	}
}

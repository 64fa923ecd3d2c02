package models

type UserStatus string
type UserRole string
type WorkStatus string
type ApplicationStatus string
type PaymentType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleWorker   UserRole = "worker"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	WorkStatusPublished            WorkStatus = "published"
	WorkStatusInProgress           WorkStatus = "in_progress"
	WorkStatusAwaitingVerification WorkStatus = "awaiting_verification"
	WorkStatusCompleted            WorkStatus = "completed"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	PaymentTypeCard     PaymentType = "card"
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeTransfer PaymentType = "transfer"
)

// workTransitions is the authoritative transition table for a work record.
// Completion may skip awaiting_verification when the code is verified
// while the work is still in progress.
var workTransitions = map[WorkStatus][]WorkStatus{
	WorkStatusPublished:            {WorkStatusInProgress},
	WorkStatusInProgress:           {WorkStatusAwaitingVerification, WorkStatusCompleted},
	WorkStatusAwaitingVerification: {WorkStatusInProgress, WorkStatusCompleted},
	WorkStatusCompleted:            {},
}

func (s WorkStatus) Valid() bool {
	_, ok := workTransitions[s]
	return ok
}

// CanTransition reports whether moving a work record from one status to
// another is a legal business transition. Same-status updates are allowed
// so that retries stay idempotent.
func CanTransition(from, to WorkStatus) bool {
	if from == to {
		return from.Valid()
	}
	for _, next := range workTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RequiresEmployee reports whether a work record in this status must have
// an assigned employee.
func (s WorkStatus) RequiresEmployee() bool {
	switch s {
	case WorkStatusInProgress, WorkStatusAwaitingVerification, WorkStatusCompleted:
		return true
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// Terminal application statuses cannot be changed again.
func (s ApplicationStatus) Terminal() bool {
	return s != ApplicationStatusPending
}

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentTypeCard, PaymentTypeCash, PaymentTypeTransfer:
		return true
	}
	return false
}

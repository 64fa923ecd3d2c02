package services

import (
	"munka_backend/internal/logger"
	"munka_backend/internal/models"
)

// PaymentService records payouts owed after a completed work. Payouts are
// settled outside the platform for now, so this only produces an audit
// trail; a real provider integration would slot in behind the interface.
type PaymentService interface {
	RecordPayout(work *models.Work)
}

type PaymentServiceImpl struct{}

func NewPaymentService() PaymentService {
	return &PaymentServiceImpl{}
}

func (s *PaymentServiceImpl) RecordPayout(work *models.Work) {
	employeeID := ""
	if work.EmployeeID != nil {
		employeeID = *work.EmployeeID
	}
	logger.Info("payout due for completed work",
		"work_id", work.ID,
		"employer_id", work.EmployerID,
		"employee_id", employeeID,
		"wage", work.Wage.String(),
		"payment_type", work.PaymentType,
	)
}

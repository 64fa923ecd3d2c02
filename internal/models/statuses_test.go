package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    WorkStatus
		to      WorkStatus
		allowed bool
	}{
		{"published to in_progress", WorkStatusPublished, WorkStatusInProgress, true},
		{"in_progress to awaiting", WorkStatusInProgress, WorkStatusAwaitingVerification, true},
		{"in_progress to completed", WorkStatusInProgress, WorkStatusCompleted, true},
		{"awaiting back to in_progress", WorkStatusAwaitingVerification, WorkStatusInProgress, true},
		{"awaiting to completed", WorkStatusAwaitingVerification, WorkStatusCompleted, true},

		{"published to completed skips the protocol", WorkStatusPublished, WorkStatusCompleted, false},
		{"published to awaiting", WorkStatusPublished, WorkStatusAwaitingVerification, false},
		{"in_progress back to published", WorkStatusInProgress, WorkStatusPublished, false},
		{"completed is terminal", WorkStatusCompleted, WorkStatusInProgress, false},
		{"completed back to published", WorkStatusCompleted, WorkStatusPublished, false},

		{"same status is idempotent", WorkStatusInProgress, WorkStatusInProgress, true},
		{"same terminal status is idempotent", WorkStatusCompleted, WorkStatusCompleted, true},
		{"unknown status never transitions", WorkStatus("archived"), WorkStatus("archived"), false},
		{"unknown target", WorkStatusPublished, WorkStatus("archived"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestWorkStatusRequiresEmployee(t *testing.T) {
	assert.False(t, WorkStatusPublished.RequiresEmployee())
	assert.True(t, WorkStatusInProgress.RequiresEmployee())
	assert.True(t, WorkStatusAwaitingVerification.RequiresEmployee())
	assert.True(t, WorkStatusCompleted.RequiresEmployee())
}

func TestApplicationStatusTerminal(t *testing.T) {
	assert.False(t, ApplicationStatusPending.Terminal())
	assert.True(t, ApplicationStatusAccepted.Terminal())
	assert.True(t, ApplicationStatusRejected.Terminal())
	assert.True(t, ApplicationStatusWithdrawn.Terminal())
}

func TestPaymentTypeValid(t *testing.T) {
	assert.True(t, PaymentTypeCash.Valid())
	assert.True(t, PaymentTypeCard.Valid())
	assert.True(t, PaymentTypeTransfer.Valid())
	assert.False(t, PaymentType("crypto").Valid())
}

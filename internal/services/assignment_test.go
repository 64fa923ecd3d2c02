package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"munka_backend/internal/appErrors"
	"munka_backend/internal/services/dto"
)

func TestParseAssignmentPayload(t *testing.T) {
	const id = "3f6f3f9e-7e83-4a3e-9a0f-2f1f4df1b2a3"

	cases := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{"prefixed payload", "munka:user:" + id, id, false},
		{"bare uuid", id, id, false},
		{"surrounding whitespace", "  munka:user:" + id + "\n", id, false},
		{"uppercase uuid is normalized", "munka:user:3F6F3F9E-7E83-4A3E-9A0F-2F1F4DF1B2A3", id, false},
		{"wrong prefix", "other:user:" + id, "", true},
		{"truncated uuid", "munka:user:3f6f3f9e-7e83", "", true},
		{"empty", "", "", true},
		{"garbage", "not a payload at all", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAssignmentPayload(tc.payload)
			if tc.wantErr {
				assert.ErrorIs(t, err, appErrors.ErrInvalidScanFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveEmployeeID(t *testing.T) {
	const id = "3f6f3f9e-7e83-4a3e-9a0f-2f1f4df1b2a3"
	payload := "munka:user:" + id
	employeeID := id

	got, err := resolveEmployeeID(&dto.AssignEmployeeRequest{EmployeeID: &employeeID})
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = resolveEmployeeID(&dto.AssignEmployeeRequest{Payload: &payload})
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	// Explicit id wins when both are present
	otherPayload := "munka:user:00000000-0000-0000-0000-000000000000"
	got, err = resolveEmployeeID(&dto.AssignEmployeeRequest{EmployeeID: &employeeID, Payload: &otherPayload})
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = resolveEmployeeID(&dto.AssignEmployeeRequest{})
	assert.Error(t, err)
}

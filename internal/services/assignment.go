package services

import (
	"strings"

	"github.com/google/uuid"

	"munka_backend/internal/appErrors"
	"munka_backend/internal/services/dto"
)

// qrPayloadPrefix is what the client app encodes into the worker's QR
// badge. A bare uuid is accepted too so that manually typed ids work.
const qrPayloadPrefix = "munka:user:"

// ParseAssignmentPayload extracts the employee id from a scanned QR
// payload. Malformed payloads fail before any state is touched.
func ParseAssignmentPayload(payload string) (string, error) {
	trimmed := strings.TrimSpace(payload)
	trimmed = strings.TrimPrefix(trimmed, qrPayloadPrefix)

	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", appErrors.ErrInvalidScanFormat
	}
	return id.String(), nil
}

func resolveEmployeeID(req *dto.AssignEmployeeRequest) (string, error) {
	switch {
	case req.EmployeeID != nil && *req.EmployeeID != "":
		return *req.EmployeeID, nil
	case req.Payload != nil && *req.Payload != "":
		return ParseAssignmentPayload(*req.Payload)
	default:
		return "", appErrors.NewBadRequestError("Either employee_id or payload is required")
	}
}

package appErrors

// Error codes grouped by domain
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeWorkNotFound        ErrorCode = "WORK_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	CodeCodeNotFound        ErrorCode = "COMPLETION_CODE_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists  ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAlreadyApplied      ErrorCode = "ALREADY_APPLIED"
	CodeInvalidTransition   ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeIncorrectCode       ErrorCode = "INCORRECT_COMPLETION_CODE"
	CodeTooManyAttempts     ErrorCode = "TOO_MANY_ATTEMPTS"
	CodeInvalidScanPayload  ErrorCode = "INVALID_CODE_FORMAT"
	CodeApplicationFinal    ErrorCode = "APPLICATION_ALREADY_DECIDED"
	CodeWorkNotInProgress   ErrorCode = "WORK_NOT_IN_PROGRESS"
	CodeCannotApplyOwnWork  ErrorCode = "CANNOT_APPLY_TO_OWN_WORK"
	CodeWorkNotOpen         ErrorCode = "WORK_NOT_OPEN"
	CodeNoUpdatableFields   ErrorCode = "NO_UPDATABLE_FIELDS"

	// System errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

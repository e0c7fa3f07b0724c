package services

// Machine-readable error codes surfaced to clients alongside the HTTP status.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInternal          = "INTERNAL_ERROR"
)

// ServiceError is a business-logic failure carrying its HTTP mapping.
type ServiceError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

func newValidationError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 400, Code: CodeValidation, Message: msg}
}

func newNotFoundError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 404, Code: CodeNotFound, Message: msg}
}

func newInsufficientStockError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 400, Code: CodeInsufficientStock, Message: msg}
}

func newUnauthorizedError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 401, Code: CodeUnauthorized, Message: msg}
}

func newForbiddenError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 403, Code: CodeForbidden, Message: msg}
}

func newInvalidTransitionError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 400, Code: CodeInvalidTransition, Message: msg}
}

func newInternalError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 500, Code: CodeInternal, Message: msg}
}

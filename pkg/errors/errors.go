package errors

// Response codes

const (
	CodeSuccess = 200
)

// HTTP layer error codes (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// AppError is a domain error carrying the response code it maps to.
// Services return these for failures the caller can act on; handlers
// translate them onto the response envelope without string matching.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidation reports a user-correctable input problem (overpayment,
// occupied unit, password mismatch). No state change has occurred.
func NewValidation(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message}
}

// NewPermission reports a missing ownership/management relationship or role.
func NewPermission(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewNotFound reports a referenced entity that does not exist.
func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewConflict reports a uniqueness violation surfaced by the store.
func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

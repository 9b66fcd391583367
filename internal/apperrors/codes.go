package apperrors

type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeDuplicateEmail     Code = "DUPLICATE_EMAIL"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeForbidden          Code = "FORBIDDEN"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL"
)

package apperrors

var (
	// Shared sentinels, used by services and matched with errors.Is in callers.
	ErrEmailTaken         = New(CodeDuplicateEmail, "an account with that email already exists")
	ErrAccountNotFound    = New(CodeNotFound, "account not found")
	ErrInvalidCredentials = New(CodeInvalidCredentials, "invalid email or password")
	ErrPostNotFound       = New(CodeNotFound, "post not found")
	ErrRequestNotFound    = New(CodeNotFound, "request not found or already resolved")
	ErrChatNotFound       = New(CodeNotFound, "chat not found")
	ErrEmptyText          = New(CodeInvalidInput, "text must not be empty")
	ErrDuplicateOffer     = New(CodeConflict, "an offer for this post already exists")
)

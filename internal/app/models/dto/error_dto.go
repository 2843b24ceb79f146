// Package dto defines the request shapes and error envelope of the
// HTTP API.
package dto

// Error codes grouped by concern. The code travels alongside the
// human-readable message so clients can branch without string matching.
const (
	CodeInvalidCredentials = "AUTH_001"
	CodeEmailExists        = "AUTH_002"
	CodeEmailNotVerified   = "AUTH_003"
	CodeInvalidOTP         = "AUTH_004"
	CodeOTPExpired         = "AUTH_005"
	CodeInvalidResetToken  = "AUTH_006"
	CodeUnauthorized       = "AUTH_007"
	CodeForbidden          = "AUTH_008"

	CodeBookNotFound  = "BOOK_001"
	CodeNotBookOwner  = "BOOK_002"
	CodeInvalidStatus = "BOOK_003"

	CodeConversationNotFound = "CHAT_001"
	CodeNotParticipant       = "CHAT_002"
	CodeSelfConversation     = "CHAT_003"

	CodeNotificationNotFound = "NOTIF_001"

	CodeValidationFailed = "GEN_001"
	CodeResourceNotFound = "GEN_002"
	CodeInternalError    = "GEN_003"
)

// ErrorDetail carries the machine-readable error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the standard failure envelope.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   ErrorDetail{Code: code, Message: message, Details: details},
	}
}

package api

// Internal failure codes attached to 500 responses. They classify which
// stage failed without carrying any diagnostic detail to the caller.
const (
	CodeClaudeAPIError = "CLAUDE_API_ERROR"
	CodeParseError     = "PARSE_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

var (
	errorClaudeAPI = ErrorResponse{
		Error: "Unable to analyze symptoms at this time. Please try again.",
		Code:  CodeClaudeAPIError,
	}
	errorParse = ErrorResponse{
		Error: "Error processing analysis results. Please try again.",
		Code:  CodeParseError,
	}
	errorInternalServer = ErrorResponse{
		Error: "An unexpected error occurred. Please try again.",
		Code:  CodeInternalError,
	}
	errorTooManyRequests = ErrorResponse{
		Error: "Too many requests, please try again in a minute.",
	}
	errorInvalidParameters = ErrorResponse{
		Error: "invalid parameters",
	}
	errorUnknownLocation = ErrorResponse{
		Error: "unknown location",
	}
	errorStaleLocation = ErrorResponse{
		Error: "location superseded by a newer request",
	}
)

// errorValidation reports the violated request fields with a 400
func errorValidation(details []string) ErrorResponse {
	return ErrorResponse{
		Error:   "Validation failed",
		Details: details,
	}
}

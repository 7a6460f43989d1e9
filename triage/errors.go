package triage

import (
	"fmt"
	"strings"
)

// ValidationError - the submitted request is malformed. Always surfaced,
// never replaced by the fallback classifier.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, "; "))
}

// SchemaReason tags which validation step rejected an upstream reply
type SchemaReason string

const (
	SchemaReasonParse         SchemaReason = "parse"
	SchemaReasonMissingFields SchemaReason = "missing-fields"
	SchemaReasonInvalidEnum   SchemaReason = "invalid-enum"
	SchemaReasonInvalidType   SchemaReason = "invalid-type"
)

// SchemaError - the upstream model's reply failed parsing or schema checks.
// A malformed upstream answer is a service bug, not a connectivity problem:
// it is surfaced as a processing failure and never triggers the fallback.
type SchemaError struct {
	Reason SchemaReason

	// Fields holds the missing field names for SchemaReasonMissingFields
	Fields []string

	// Field and Value describe the offending member for invalid-enum and
	// invalid-type rejections
	Field string
	Value string
}

func (e *SchemaError) Error() string {
	switch e.Reason {
	case SchemaReasonParse:
		return "failed to parse model response as JSON"
	case SchemaReasonMissingFields:
		return fmt.Sprintf("missing required fields in response: %s", strings.Join(e.Fields, ", "))
	case SchemaReasonInvalidEnum:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Value)
	case SchemaReasonInvalidType:
		return fmt.Sprintf("%s has the wrong type", e.Field)
	}
	return fmt.Sprintf("invalid model response: %s", e.Reason)
}

// ConnectivityCause tags why the upstream model could not be reached
type ConnectivityCause string

const (
	CauseTimeout        ConnectivityCause = "timeout"
	CauseNoResponse     ConnectivityCause = "no-response"
	CauseUpstreamStatus ConnectivityCause = "upstream-status"
)

// ConnectivityError - the upstream model was unreachable or failing.
// Recoverable: the caller may answer with the fallback classifier instead.
type ConnectivityError struct {
	Cause      ConnectivityCause
	StatusCode int
	Err        error
}

func (e *ConnectivityError) Error() string {
	switch e.Cause {
	case CauseUpstreamStatus:
		return fmt.Sprintf("upstream model returned status %d", e.StatusCode)
	case CauseTimeout:
		return "upstream model call timed out"
	}
	if e.Err != nil {
		return fmt.Sprintf("no response from upstream model: %s", e.Err)
	}
	return "no response from upstream model"
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// RateLimitError - the triage service itself throttled the request. Surfaced
// verbatim as a wait-and-retry condition, never replaced by the fallback.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "too many requests"
}

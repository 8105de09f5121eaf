package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

var (
	// ErrHostedZoneNotFound is returned when no hosted zone matches a name.
	ErrHostedZoneNotFound = errors.New("hosted zone not found")

	// ErrStackNotFound is returned when a stack does not exist.
	ErrStackNotFound = errors.New("stack not found")

	// ErrStackFailed is returned when a stack settles in a failed status.
	ErrStackFailed = errors.New("stack operation failed")
)

// throttlingCodes are API error codes AWS services return when rate limiting.
var throttlingCodes = []string{
	"Throttling",
	"ThrottlingException",
	"ThrottledException",
	"RequestThrottled",
	"RequestThrottledException",
	"RequestLimitExceeded",
	"TooManyRequestsException",
	"PriorRequestNotComplete",
	"SlowDown",
}

// IsThrottled checks if an error indicates rate limiting.
func IsThrottled(err error) bool {
	return isAPIErrorCode(err, throttlingCodes...)
}

// IsNotFound reports whether err is one of the package's not-found errors
// or an API error with a NotFound code.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrHostedZoneNotFound) || errors.Is(err, ErrStackNotFound) {
		return true
	}
	code := ErrorCode(err)
	return code != "" && (strings.HasSuffix(code, ".NotFound") || code == "NotFound" || code == "NoSuchBucket")
}

// ErrorCode returns the API error code of err, or "" if err is not an API error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// isAPIErrorCode checks if the error is an API error with one of the given codes.
func isAPIErrorCode(err error, codes ...string) bool {
	code := ErrorCode(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}

// isValidationMessage matches CloudFormation ValidationError responses by
// message, which is the only way the API distinguishes them.
func isValidationMessage(err error, substr string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "ValidationError" {
		return false
	}
	return strings.Contains(apiErr.ErrorMessage(), substr)
}

func isStackMissing(err error) bool {
	return isValidationMessage(err, "does not exist")
}

func isNoUpdates(err error) bool {
	return isValidationMessage(err, "No updates are to be performed")
}

package ec2

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// EC2 reports most failures via API error codes rather than typed
// exceptions, so classification here is code-based.

// isNotFoundError checks if the error indicates a missing resource.
func isNotFoundError(err error) bool {
	return hasErrorCodeSuffix(err, ".NotFound")
}

// isDependencyViolation checks if the error indicates a resource still has
// dependents (ENIs draining during teardown). These are retryable.
func isDependencyViolation(err error) bool {
	return hasErrorCode(err, "DependencyViolation")
}

// isDuplicatePermission checks if the error indicates the security group
// rule already exists.
func isDuplicatePermission(err error) bool {
	return hasErrorCode(err, "InvalidPermission.Duplicate")
}

func hasErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}

func hasErrorCodeSuffix(err error, suffix string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && strings.HasSuffix(apiErr.ErrorCode(), suffix)
}

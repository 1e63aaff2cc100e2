package cloudhsm

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2/types"
	"github.com/aws/smithy-go"
)

// ErrClusterNotFound indicates the control plane reported no cluster
// matching the requested identifier. This is terminal: the waiter fails
// immediately without retrying.
var ErrClusterNotFound = errors.New("cluster not found")

// TimeoutError indicates the retry budget was exhausted before the cluster
// reached any of the target states.
type TimeoutError struct {
	ClusterID string
	Targets   StateSet
	Attempts  int
	LastState string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("cluster %s did not reach state %s after %d attempts (last state: %s)",
		e.ClusterID, e.Targets, e.Attempts, e.LastState)
}

// IsNotFound checks if an error indicates a missing cluster, either from
// our own empty-result detection or from the provider's typed error.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrClusterNotFound) {
		return true
	}

	var nf *types.CloudHsmResourceNotFoundException
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for responses the SDK does not
	// map to a typed exception.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "CloudHsmResourceNotFoundException"
	}

	return false
}

// IsTimeout checks if an error is a waiter retry-budget exhaustion.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsCancelled checks if an error stems from caller-initiated cancellation
// rather than from the retry budget.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// isInvalidRequest checks if an error indicates a malformed or conflicting
// request. These errors are fatal and must not be retried.
func isInvalidRequest(err error) bool {
	var ir *types.CloudHsmInvalidRequestException
	if errors.As(err, &ir) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "CloudHsmInvalidRequestException"
	}

	return false
}

// isRetryableServiceError checks if an error is a transient provider-side
// failure worth retrying during delete operations.
func isRetryableServiceError(err error) bool {
	var internal *types.CloudHsmInternalFailureException
	if errors.As(err, &internal) {
		return true
	}

	var svc *types.CloudHsmServiceException
	if errors.As(err, &svc) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "CloudHsmInternalFailureException" ||
			code == "CloudHsmServiceException" ||
			code == "ThrottlingException"
	}

	return false
}

package hcloud

import (
	"context"
	"errors"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/snapimage/internal/snapshot"
)

// isResourceLocked checks if an error indicates a resource is locked.
// Locked resources typically occur while a snapshot is still being created.
func isResourceLocked(err error) bool {
	return isHCloudErrorCode(err,
		hcloud.ErrorCodeLocked,           // Item is locked (action running)
		hcloud.ErrorCodeConflict,         // Resource changed during request
		hcloud.ErrorCodeResourceLocked,   // Resource locked (contact support)
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// isInvalidParameter checks if an error indicates invalid parameters.
func isInvalidParameter(err error) bool {
	return isHCloudErrorCode(err,
		hcloud.ErrorCodeInvalidInput,
		hcloud.ErrorCodeJSONError,
	)
}

// isPermissionDenied checks if the token is missing, invalid or lacks rights.
func isPermissionDenied(err error) bool {
	return isHCloudErrorCode(err,
		hcloud.ErrorCodeUnauthorized,
		hcloud.ErrorCodeForbidden,
	)
}

// isTransient checks if an error is a network failure or a temporary API condition.
func isTransient(err error) bool {
	if isHCloudErrorCode(err,
		hcloud.ErrorCodeServiceError,
		hcloud.ErrorCodeTimeout,
		hcloud.ErrorCodeMaintenance,
	) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeNotFound)
}

// IsConflict checks if an error indicates a conflict occurred.
func IsConflict(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeConflict)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeRateLimitExceeded)
}

// ErrorKind classifies an API error for the reconciler.
func ErrorKind(err error) snapshot.ErrorKind {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return snapshot.KindNotFound
	case isPermissionDenied(err):
		return snapshot.KindPermission
	case IsRateLimited(err):
		return snapshot.KindRateLimited
	case isResourceLocked(err):
		return snapshot.KindConflict
	case isInvalidParameter(err):
		return snapshot.KindInvalid
	case isTransient(err):
		return snapshot.KindTransient
	default:
		return snapshot.KindUnknown
	}
}

// wrapError turns an API error into a *snapshot.BackendError.
func wrapError(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &snapshot.BackendError{Op: op, ID: id, Kind: ErrorKind(err), Err: err}
}

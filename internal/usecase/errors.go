package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrorNotFound      ErrorCode = "NOT_FOUND"
	ErrorConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrorRateLimited   ErrorCode = "RATE_LIMITED"
	ErrorUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal      ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var ue *Error
	if !errors.As(err, &ue) {
		return "", false
	}
	return ue.Code, true
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type configurationError interface {
	ConfigurationError() bool
}

type timeoutError interface {
	Timeout() bool
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}

// modelError classifies a model client failure. prefix names the operation
// in the reason, e.g. "generate_model_error".
func modelError(prefix string, err error) *Error {
	var cfgErr configurationError
	if errors.As(err, &cfgErr) && cfgErr.ConfigurationError() {
		return newError(ErrorConfiguration, "model_credential_missing", err)
	}
	if status, ok := upstreamStatusCode(err); ok && status == http.StatusTooManyRequests {
		return newError(ErrorRateLimited, prefix+"_rate_limited", err)
	}
	var toErr timeoutError
	if errors.As(err, &toErr) && toErr.Timeout() {
		return newError(ErrorUpstream, prefix+"_timeout", err)
	}
	return newError(ErrorUpstream, prefix+"_model_error", err)
}

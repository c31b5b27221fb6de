package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/facility-heatmap/pkg/errors"
)

const (
	codeInternal          = "internal_error"
	codeRateLimitExceeded = "rate_limit_exceeded"
)

// HTTPError is an error already resolved to its response status and body.
type HTTPError struct {
	Status     int
	Code       string
	Message    string
	RetryAfter time.Duration
	Err        error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// asHTTPError resolves err to a response. Domain errors carry their code and
// message through; anything unclassified becomes an opaque 500.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if code := apperrors.CodeOf(err); code != "" {
		resolved := &HTTPError{Status: statusForCode(code), Code: code, Message: apperrors.MessageOf(err), Err: err}
		if resolved.Status == http.StatusServiceUnavailable {
			resolved.RetryAfter = time.Second
		}
		return resolved
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    codeInternal,
		Message: "something went wrong",
		Err:     err,
	}
}

func statusForCode(code string) int {
	switch code {
	case apperrors.CodeInvalidInput,
		apperrors.CodeInvalidFormat,
		apperrors.CodeUnknownZone,
		apperrors.CodeInvalidStationNumber,
		apperrors.CodeNoSelection:
		return http.StatusBadRequest
	case apperrors.CodeNoData, apperrors.CodeEmptyInput:
		return http.StatusNotFound
	case apperrors.CodeDatasetUnavailable, apperrors.CodeStoreError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// retryAfterSeconds rounds up so clients never retry early.
func retryAfterSeconds(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}

// abortWithError records err for errorHandlingMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

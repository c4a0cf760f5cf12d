package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx answer from the ledger.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ledger: HTTP %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("ledger: HTTP %d: %s", e.Code, e.Message)
}

// IsTransient reports failures worth retrying or hiding behind a cached snapshot:
// transport errors, rate limiting and 5xx answers.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= http.StatusInternalServerError
	}
	return true
}

func statusError(code int, body []byte) *StatusError {
	se := &StatusError{Code: code}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		se.Message = payload.Error
		if se.Message == "" {
			se.Message = payload.Message
		}
	}
	return se
}

package platinium

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a non-JSON body on an otherwise successful call.
var ErrInvalidResponse = errors.New("invalid response from Platinium API")

// APIError is a non-2xx response from the club API. The API reports errors
// as {"code": ..., "msg": ...}; anything else is kept verbatim in Message
// with Code 0.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	var payload struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = fmt.Sprintf("invalid JSON error message from Platinium: %s", truncate(body, 200))
		return apiErr
	}
	apiErr.Code = payload.Code
	apiErr.Message = payload.Msg
	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError(code=%d, status=%d): %s", e.Code, e.StatusCode, e.Message)
}

package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoDigest is returned by ManifestDigest when none of the attempted
// manifest media types yields a Docker-Content-Digest header.
var ErrNoDigest = errors.New("no digest found for any manifest media type")

// StatusError is returned for registry responses with status >= 400.
// Callers branch on Code instead of parsing error strings.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Status + ": " + e.Message
	}
	return e.Status
}

// IsNotFound reports whether err is a registry 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}

// errorResponse is the error envelope defined by the distribution API.
type errorResponse struct {
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// newStatusError builds a StatusError from a failed response, folding in the
// first code/message pair when the body carries an API error envelope.
func newStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || !bytes.HasPrefix(data, []byte(`{"errors"`)) {
		return statusErr
	}

	var apiErr errorResponse
	if err := json.Unmarshal(data, &apiErr); err != nil || len(apiErr.Errors) == 0 {
		return statusErr
	}
	statusErr.Message = apiErr.Errors[0].Code
	if apiErr.Errors[0].Message != "" {
		statusErr.Message = fmt.Sprintf("%s: %s", apiErr.Errors[0].Code, apiErr.Errors[0].Message)
	}

	return statusErr
}

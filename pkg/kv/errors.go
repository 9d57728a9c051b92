package kv

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError reports a Vault HTTP request that returned a non-success
// status. Readers return it (or wrap it) so callers can branch on the
// status code, notably to recognize permission denials.
type RequestError struct {
	StatusCode int
	Path       string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("vault returned status %d for %s", e.StatusCode, e.Path)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResolutionError reports a failed mount metadata lookup. It identifies the
// requested path and the metadata endpoint so the caller can tell a
// resolution failure apart from a failed secret read.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot determine mount info for path %q using %q: %v", e.Path, mountMetadataPath, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsForbidden reports whether err, anywhere in its chain, is a RequestError
// carrying an HTTP 403 status.
func IsForbidden(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusForbidden
}

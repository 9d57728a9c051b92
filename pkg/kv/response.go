package kv

import "context"

// Response is the common envelope returned by the Vault HTTP API for read
// operations. Data carries the secret fields; for versioned KV reads the
// engine nests the actual secret under Data["data"] until Client unwraps it.
type Response struct {
	RequestID     string                 `json:"request_id"`
	LeaseID       string                 `json:"lease_id"`
	LeaseDuration int                    `json:"lease_duration"`
	Renewable     bool                   `json:"renewable"`
	Data          map[string]interface{} `json:"data"`
	Warnings      []string               `json:"warnings"`
}

// Reader reads a single path from Vault. Implementations return (nil, nil)
// when nothing exists at the path, and a *RequestError (possibly wrapped)
// when the server answers with a non-success status.
//
// Client uses the same Reader for secret reads and for mount metadata
// lookups, so one implementation covers both.
type Reader interface {
	Read(ctx context.Context, path string) (*Response, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context, path string) (*Response, error)

// Read calls f.
func (f ReaderFunc) Read(ctx context.Context, path string) (*Response, error) {
	return f(ctx, path)
}

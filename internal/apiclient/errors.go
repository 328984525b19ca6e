package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed fetch. Callers show Error() to users; Kind exists
// for logging and metrics.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindMalformed Kind = "malformed"
)

// Error is returned by every fetch that does not produce a value.
type Error struct {
	Kind    Kind
	Status  int
	URL     string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or "" when err did not come from this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func statusMessage(status int, url string) string {
	return fmt.Sprintf("Erro %d ao acessar %s", status, url)
}

package portal

import (
	"errors"
	"fmt"
)

// StatusError is returned when the portal answers with a non-success status.
type StatusError struct {
	Method string
	Url    string
	Status int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Url, e.Status)
}

// ErrMissingToken is wrapped by every error about a token that could not be
// found in a response.
var ErrMissingToken = errors.New("token not found in response")

type MissingTokenError struct {
	Token string
}

func (e MissingTokenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Token, ErrMissingToken.Error())
}

func (e MissingTokenError) Unwrap() error {
	return ErrMissingToken
}

// DeltaError describes a partial page response that does not follow the
// length|type|id|content| framing.
type DeltaError struct {
	Offset int
	Reason string
}

func (e DeltaError) Error() string {
	return fmt.Sprintf("malformed partial page response at %d: %s", e.Offset, e.Reason)
}

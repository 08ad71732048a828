package catalogapi

import (
	"errors"
	"fmt"
)

// Kind classifies a failed catalog API call.
type Kind int

const (
	// KindNetwork covers transport failures and a tripped circuit breaker.
	KindNetwork Kind = iota
	// KindNotFound is a 404 from the API.
	KindNotFound
	// KindServer is any other non-2xx response or an envelope with status false.
	KindServer
	// KindMalformed is a 2xx response whose body cannot be decoded into the
	// expected envelope. Callers treat it as a server error.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is returned by every Client operation that fails.
type FetchError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("catalog api %s error: status=%d: %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("catalog api %s error: %s", e.Kind, msg)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFound reports whether the requested entity does not exist.
func (e *FetchError) NotFound() bool { return e.Kind == KindNotFound }

// AsFetchError extracts a *FetchError from err's chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsNotFound reports whether err is a catalog API 404.
func IsNotFound(err error) bool {
	fe, ok := AsFetchError(err)
	return ok && fe.NotFound()
}

// countsAsSuccess tells the circuit breaker which failures are the caller's
// problem rather than the API's.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	fe, ok := AsFetchError(err)
	if !ok {
		return false
	}
	return fe.Kind == KindNotFound || (fe.Status >= 400 && fe.Status < 500)
}

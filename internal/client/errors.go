package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed ledger call.
type Kind int

const (
	// KindNetwork means no response was received at all.
	KindNetwork Kind = iota + 1
	// KindInvalidRequest means the ledger rejected the request (HTTP 400).
	KindInvalidRequest
	// KindAuthExpired means the credential is gone or refused: HTTP 401, or
	// an envelope that could not be decrypted. The secret slot has been
	// purged by the time the caller sees this.
	KindAuthExpired
	// KindNotFound means the requested resource does not exist (HTTP 404).
	KindNotFound
	// KindUnsupportedMedia means the ledger refused the request format (HTTP 415).
	KindUnsupportedMedia
	// KindServer means the ledger itself failed (HTTP 5xx).
	KindServer
	// KindRequest means the call failed before or outside dispatch.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindInvalidRequest:
		return "invalid request"
	case KindAuthExpired:
		return "authentication expired"
	case KindNotFound:
		return "not found"
	case KindUnsupportedMedia:
		return "unsupported media type"
	case KindServer:
		return "server error"
	case KindRequest:
		return "request error"
	default:
		return "unknown error"
	}
}

// Error is the classified form of a failed ledger call. Message is safe to
// surface to the user; Err keeps the original failure so callers can still
// branch with errors.Is and errors.As.
type Error struct {
	Kind    Kind
	Status  int // HTTP status when a response was received, else 0
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is (or wraps) a classified ledger error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

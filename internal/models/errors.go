package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a workflow failure. Every kind is fatal.
type ErrorKind int

const (
	// ConfigurationError: a required environment value is missing or malformed.
	ConfigurationError ErrorKind = iota + 1
	// ConnectivityError: the RPC endpoint is unreachable or fails at the transport level.
	ConnectivityError
	// ContractCallError: a read-only call reverted or hit a missing token or function.
	ContractCallError
	// TransactionError: the mint was rejected, reverted or could not be confirmed.
	TransactionError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "ConfigurationError"
	case ConnectivityError:
		return "ConnectivityError"
	case ContractCallError:
		return "ContractCallError"
	case TransactionError:
		return "TransactionError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a classified failure of one workflow step.
type Error struct {
	Kind ErrorKind
	// Op names the step or call that failed, e.g. "ownerOf".
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and the operation that produced it.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

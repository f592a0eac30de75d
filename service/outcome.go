package service

import (
	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/ajson"
)

// Kind discriminates the result of a service operation.
type Kind int

const (
	// Success carries the resulting record.
	Success Kind = iota
	// NotFound means a well formed lookup had no match. It is not an error.
	NotFound
	// Invalid means the caller's input failed a precondition. Err holds a
	// *ValidationError.
	Invalid
	// PersistenceFailure means the store failed. Err holds a *PersistenceError.
	PersistenceFailure
)

var kindNames = map[Kind]string{
	Success:            "success",
	NotFound:           "not found",
	Invalid:            "invalid",
	PersistenceFailure: "persistence failure",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Outcome is what every service operation returns. Routes must handle
// all four kinds.
type Outcome struct {
	Kind   Kind
	Record *ajson.Record
	Err    error
}

func succeeded(rec *ajson.Record) Outcome {
	return Outcome{Kind: Success, Record: rec}
}

func notFound() Outcome {
	return Outcome{Kind: NotFound}
}

func invalid(err *ValidationError) Outcome {
	return Outcome{Kind: Invalid, Err: err}
}

func failed(cause error, msg string) Outcome {
	return Outcome{Kind: PersistenceFailure, Err: &PersistenceError{msg: msg, cause: errors.WithStack(cause)}}
}

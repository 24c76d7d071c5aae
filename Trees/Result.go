package Trees

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateKey is reported by Insert when the key is already present.
	ErrDuplicateKey = errors.New("key already exists")
	// ErrKeyNotFound is reported by Remove and Search when the key is absent.
	ErrKeyNotFound = errors.New("key not found")
	// ErrUnknownKind is returned when an engine name can't be resolved.
	ErrUnknownKind = errors.New("unknown tree kind")
)

const (
	MsgInserted = "inserted"
	MsgRemoved  = "removed"
	MsgFound    = "found"
	MsgCleared  = "tree cleared"
)

// Result is the outcome of one public operation. Height and Nodes describe
// the tree after the operation. Elapsed is only filled in by Timed.
type Result struct {
	Success bool
	Elapsed time.Duration
	Height  int
	Nodes   int
	Message string
	Err     error
}

// Measurable is the part of Tree a Result is computed from.
type Measurable interface {
	Height() int
	NodeCount() int
}

// Outcome builds the Result of an operation on t that finished with err,
// using msg as the message on success.
func Outcome(t Measurable, err error, msg string) Result {
	r := Result{Success: err == nil, Height: t.Height(), Nodes: t.NodeCount(), Message: msg, Err: err}
	if err != nil {
		r.Message = err.Error()
	}
	return r
}

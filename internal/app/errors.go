package app

import (
	"errors"
	"fmt"
)

// ErrNoSelectedQuestion is returned when an action needs a current question
// and none is selected.
var ErrNoSelectedQuestion = errors.New("no question selected")

// ErrNoSession is returned when the session has not been started.
var ErrNoSession = errors.New("no questionnaire session started")

// RemoteFailure wraps a gateway error that has already been reported to the
// Notifier. Callers should not report it a second time.
type RemoteFailure struct {
	Op  string
	Err error
}

func (e *RemoteFailure) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RemoteFailure) Unwrap() error {
	return e.Err
}

// IsRemoteFailure reports whether err carries an already-notified remote failure.
func IsRemoteFailure(err error) bool {
	var rf *RemoteFailure
	return errors.As(err, &rf)
}

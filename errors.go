package mq

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig indicates a configuration error raised at construction or
	// call time: a missing store client, a missing or empty collection
	// name, or an empty payload batch passed to Add.
	ErrConfig = errors.New("mq: configuration error")

	// ErrBadRetryPolicy indicates an invalid RetryPolicy, such as a
	// bounded limit of zero.
	ErrBadRetryPolicy = errors.New("mq: bad retry policy")
)

// AckError is returned by Ping and Ack when the supplied token does not
// match a currently live lease — the token is unknown, its lease has
// expired, or the message has already been acked. The queue has no way
// to distinguish between these three cases, since all three leave no
// document matching the atomic filter.
type AckError struct {
	Token string
}

func (e *AckError) Error() string {
	return fmt.Sprintf("mq: unidentified ack: %s", e.Token)
}

// IsAckError reports whether err is an *AckError, optionally via
// errors.As-style unwrapping.
func IsAckError(err error) bool {
	var ackErr *AckError
	return errors.As(err, &ackErr)
}

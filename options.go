package mq

import "time"

// DefaultVisibility is the lease duration Get and Ping apply when no
// per-call visibility is given and no queue-level default was
// configured.
const DefaultVisibility = 30 * time.Second

// DefaultDeadQueueMaxRetries is the retry ceiling applied when a dead
// queue is configured but no explicit MaxRetries option was given.
const DefaultDeadQueueMaxRetries = 5

// Options holds the resolved, immutable configuration of a Queue.
// Options is assembled by New from a list of Option values; it is never
// mutated after construction.
type Options struct {
	Visibility    time.Duration
	Delay         time.Duration
	DeadQueue     Pusher
	RetryPolicy   RetryPolicy
	CleanAfter    *time.Duration
	maxRetriesSet bool
}

// Option configures a Queue at construction time. Recognized options are
// applied in order; unlike the configuration bag this protocol was
// distilled from, there is no "unknown option" to ignore — the Go type
// system makes one unrepresentable.
type Option func(*Options)

// WithVisibility sets the default lease duration for Get and Ping.
func WithVisibility(d time.Duration) Option {
	return func(o *Options) { o.Visibility = d }
}

// WithDelay sets the default initial delay Add applies when a call does
// not specify its own delay.
func WithDelay(d time.Duration) Option {
	return func(o *Options) { o.Delay = d }
}

// WithDeadQueue sets the destination Pusher for messages that exceed the
// retry ceiling. If no explicit WithMaxRetries is also given, the
// ceiling defaults to DefaultDeadQueueMaxRetries.
func WithDeadQueue(q Pusher) Option {
	return func(o *Options) { o.DeadQueue = q }
}

// WithMaxRetries sets an explicit retry ceiling. Without WithDeadQueue,
// messages that exceed it are simply acked and dropped.
func WithMaxRetries(max uint32) Option {
	return func(o *Options) {
		o.RetryPolicy = Limited(max)
		o.maxRetriesSet = true
	}
}

// WithCleanAfter requests a TTL index on the deleted field with the
// given expiry. A zero duration is valid and means "expire immediately
// once deleted".
func WithCleanAfter(d time.Duration) Option {
	return func(o *Options) { o.CleanAfter = &d }
}

// Resolve applies opts over the documented defaults and returns the
// final Options. Resolve is exported so storage backends other than
// mongo can reuse the same option-resolution rules.
func Resolve(opts ...Option) Options {
	o := Options{
		Visibility:  DefaultVisibility,
		RetryPolicy: Unbounded,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.DeadQueue != nil && !o.maxRetriesSet {
		o.RetryPolicy = Limited(DefaultDeadQueueMaxRetries)
	}
	return o
}

// Validate reports ErrBadRetryPolicy if o.RetryPolicy is bounded at
// zero. A zero ceiling would dead-letter every message on its first
// claim, which is never the intended configuration. Storage backends
// call Validate after Resolve, as part of constructing a Queue.
func (o Options) Validate() error {
	if o.RetryPolicy.Bounded && o.RetryPolicy.Max == 0 {
		return ErrBadRetryPolicy
	}
	return nil
}

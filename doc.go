// Package mq provides a durable, multi-consumer work queue layered on top
// of a document store.
//
// # Overview
//
// mq models a message queue with explicit, field-derived lifecycle
// states rather than a stored status enum. It separates the producer-side
// payload wrapper (message.Message) from the consumer-facing claim
// (Claim) and defines a small set of storage-agnostic interfaces for
// pushing, pulling, observing, cleaning and migrating records. The only
// storage implementation is package mongo, backed by
// go.mongodb.org/mongo-driver, but the interfaces exist independently of
// it so that Worker and CleanWorker do not need to know about MongoDB.
//
// # Delivery Semantics
//
// mq provides at-least-once delivery. A message may be delivered more
// than once if a consumer crashes, fails to Ack before its visibility
// timeout elapses, or loses its lease to a concurrent claim after
// expiry. Handlers must be idempotent.
//
// # Lifecycle
//
// A document is in exactly one of four states, derived from its fields
// rather than stored explicitly:
//
//	Pending   — deleted absent, ack absent, visible <= now
//	Delayed   — deleted absent, ack absent, visible > now
//	Leased    — deleted absent, ack present, visible > now
//	Done      — deleted present
//
// A lease that elapses without Ack collapses an otherwise-Leased document
// back to Pending with no write — the claim query treats it identically
// to a never-claimed document.
//
// # Retry / Dead-Letter Policy
//
// Get increments tries on every claim, including claims that are
// immediately dead-lettered. When tries exceeds the configured
// RetryPolicy's limit, Get either forwards the message to a configured
// dead queue (via its Pusher) and acks the original, or simply acks the
// original if no dead queue is configured, then tries to deliver a fresh
// message to the caller. This repeats in a loop, not recursion, so a
// pathologically failing queue cannot grow the call stack.
//
// # Worker
//
// Worker coordinates polling, dispatching and lease extension for
// callers who want an automatic consumption loop instead of calling Get
// directly. It does not add backoff-on-failure scheduling: this
// protocol has no "return with delay" operation, only Ack and the
// passive expiry of the lease, so Worker simply leaves a failed message
// unacked and lets its lease run out.
//
// # Concurrency Model
//
// Worker uses a bounded internal queue and a fixed-size worker pool,
// decoupling polling from handler dispatch. Shutdown is graceful:
// in-flight handlers are allowed to finish, subject to a configurable
// timeout.
//
// # Storage Expectations
//
// The storage backend must provide atomic find-and-modify with a sort
// specifier and returned post-update document, bulk writes mixing insert
// and conditional upsert, a unique-sparse index on the ack token, a
// compound index supporting the claim query, and optionally a TTL index
// for automatic removal of deleted documents.
package mq

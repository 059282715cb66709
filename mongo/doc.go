// Package mongo is the concrete storage backend for mq, implemented on
// top of the official MongoDB Go driver.
//
// A single collection holds every document for a queue. A document's
// lifecycle state is never stored directly; it is derived from four
// fields:
//
//	visible  time the document becomes (or becomes again) claimable
//	ack      the live lease token, absent when the document is not leased
//	deleted  set once the document has been acked
//	tries    number of times the document has been claimed
//
// Pending, Delayed, Leased and Done are projections of those fields, not
// a stored enum — see the mq package doc for the derivation rules.
//
// Package mongo mirrors the file layout of a typical SQL-backed queue
// package: model.go describes the wire document, init.go establishes
// indexes, pusher.go/puller.go/observer.go/cleaner.go/migrate.go each
// implement one piece of the mq.Queue interface, and queue.go wires them
// together behind a single constructor.
package mongo

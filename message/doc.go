// Package message defines the transport-level payload wrapper used on the
// producer side of mq.
//
// A Message carries nothing but the user's opaque payload. It does not
// carry delivery state, an identifier, or scheduling metadata — those are
// assigned by the store when the message is added (see package mongo) and
// returned to callers as mq.Claim once a consumer claims the message.
// Producers that enqueue a single payload construct one with New and pass
// it to Pusher.AddOne; batch producers skip Message entirely and call
// Pusher.Add with a raw slice.
//
// Message is intentionally the thinnest possible wrapper: the payload must
// round-trip through the store's document encoding unchanged, so Message
// imposes no schema of its own and accepts any value the underlying driver
// can marshal.
package message

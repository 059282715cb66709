package message

// Message wraps a single opaque payload destined for a queue.
//
// Message carries no identifier and no scheduling metadata: those belong
// to the storage record created once the message is added. Debounce keys
// and delays are add-time options, not part of the message itself, since
// the same payload may be added with different options on different
// calls.
type Message struct {
	Payload any
}

// New wraps payload in a Message.
func New(payload any) *Message {
	return &Message{Payload: payload}
}

package mq

// RetryPolicy governs how many times Get may claim a message before it
// is dead-lettered (or simply dropped, if no dead queue is configured).
//
// The source this protocol was distilled from represents "never
// dead-letter" as MaxRetries = Infinity. Go has no numeric infinity
// sentinel worth relying on, so RetryPolicy represents that state as
// its own variant instead: Bounded is false and Max is meaningless.
type RetryPolicy struct {
	Bounded bool
	Max     uint32
}

// Unbounded is the default retry policy when no dead queue and no
// explicit retry limit are configured: messages are never dead-lettered.
var Unbounded = RetryPolicy{Bounded: false}

// Limited returns a RetryPolicy that dead-letters (or drops) a message
// once it has been claimed more than max times.
func Limited(max uint32) RetryPolicy {
	return RetryPolicy{Bounded: true, Max: max}
}

// Exceeds reports whether tries has exceeded the policy's limit.
func (p RetryPolicy) Exceeds(tries int64) bool {
	return p.Bounded && tries > int64(p.Max)
}

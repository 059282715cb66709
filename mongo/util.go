package mongo

import (
	"strings"

	"github.com/google/uuid"
)

// newAckToken mints a fresh 128-bit lease token rendered as 32 lowercase
// hex characters. uuid.NewString already draws from crypto/rand; we
// only strip the dashes to match the token shape consumers expect.
func newAckToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

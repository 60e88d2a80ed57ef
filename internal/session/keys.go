package session

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxKeyFragmentLen = 20

// newStorageKey builds an opaque storage key from a type prefix, a sanitized
// human-readable fragment, a millisecond timestamp, and 4 random bytes.
// Uniqueness within a session comes from the timestamp plus randomness; there
// is no collision check.
func newStorageKey(prefix, identifier string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s_%d_%s",
		prefix,
		sanitizeFragment(identifier),
		time.Now().UnixMilli(),
		hex.EncodeToString(id[:4]),
	)
}

// sanitizeFragment reduces an identifier to lowercase alphanumerics capped at
// 20 characters. Empty results fall back to "untitled".
func sanitizeFragment(identifier string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(identifier) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= maxKeyFragmentLen {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

// Package ordernumber derives the human-readable order identifiers printed
// on confirmations, e.g. ORD-20250301-8K3QZ1.
package ordernumber

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	prefix      = "ORD"
	suffixLen   = 6
	suffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate produces a new order number for the given creation time:
// prefix, compact date, and a random 6-character uppercase suffix.
// Uniqueness is not guaranteed here; the store's unique index is the
// arbiter and callers retry on collision.
func Generate(now time.Time) string {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process has bigger problems;
		// fall back to a time-derived suffix rather than panic.
		for i := range buf {
			buf[i] = suffixChars[(now.UnixNano()>>uint(i*6))%int64(len(suffixChars))]
		}
	}
	for i := range buf {
		buf[i] = suffixChars[int(buf[i])%len(suffixChars)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), string(buf))
}

// Package keycodec generates human-typeable tenant access keys and
// normalizes and hashes submitted plaintext for storage lookup.
package keycodec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	randRead = rand.Read
	nowFunc  = time.Now
)

// Generate builds a new plaintext access key for a tenant:
// {first 6 chars of tenantId, upper}-{4-char base-36 timestamp, upper}-{4 random bytes, hex, upper}.
// The tenant prefix makes a key visually traceable without revealing the
// whole identifier; the random tail carries the actual entropy.
func Generate(tenantID string) (string, error) {
	prefix := tenantID
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}

	stamp := strconv.FormatInt(nowFunc().UnixMilli(), 36)
	if len(stamp) > 4 {
		stamp = stamp[len(stamp)-4:]
	}

	tail := make([]byte, 4)
	if _, err := randRead(tail); err != nil {
		return "", fmt.Errorf("failed to generate key entropy: %w", err)
	}

	return strings.ToUpper(prefix) + "-" + strings.ToUpper(stamp) + "-" + strings.ToUpper(hex.EncodeToString(tail)), nil
}

// Normalize trims surrounding whitespace, uppercases, and strips internal
// whitespace so copy/paste artifacts never cause a false rejection. It is
// applied identically at issuance and at every redemption attempt.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.TrimSpace(input) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Hash returns the SHA-256 hex digest of a normalized key. The digest is the
// storage identity; plaintext is never persisted.
func Hash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// HashRaw normalizes and hashes in one step.
func HashRaw(input string) string {
	return Hash(Normalize(input))
}

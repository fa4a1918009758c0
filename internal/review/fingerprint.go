package review

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// FingerprintScheme names the digest layout produced by Fingerprint.
// Stores record it so that keys from different schemes are never mixed.
const FingerprintScheme = "sha256-title-body-v1"

const fingerprintSeparator = "\x1f"

// Fingerprint returns the hex SHA-256 of title and body joined by a unit
// separator, or "" when both are blank.
func Fingerprint(title, body string) string {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" && body == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(title + fingerprintSeparator + body))
	return hex.EncodeToString(sum[:])
}

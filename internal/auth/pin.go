package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// PINLength is the fixed manager PIN length.
const PINLength = 4

// HashPIN returns the hex SHA-256 of a PIN. Unsalted: the stored
// hashes were created the same way, and verification must keep
// matching them. Acceptable only for a single trusted LAN terminal.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// DigitsOnly reports whether s consists solely of ASCII digits.
func DigitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

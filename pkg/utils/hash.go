package utils

import (
	"crypto/sha256"
	"fmt"
)

// HashString returns a short hex digest, used for catalog fingerprints.
func HashString(input string) string {
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:16])
}

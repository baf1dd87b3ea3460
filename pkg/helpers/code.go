package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenVerificationCode generates the one-time code sent to a contact point
// during registration: 6 uppercase hex characters from a CSPRNG.
func GenVerificationCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

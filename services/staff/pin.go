package staff

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const pinLength = 4

// generatePIN returns a random numeric PIN, zero-padded to pinLength digits.
func generatePIN() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < pinLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%0*d", pinLength, n), nil
}

func hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

func checkPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// initials returns the upper-cased first letters of the name's words,
// capped at two characters.
func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// fallbackAvatarURL builds a generated-avatar URL for staff without an upload.
func fallbackAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"
)

const MinPasswordLength = 6

func IsPasswordAcceptable(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// GenerateOrderID returns "ORD-<unix millis>-<0..999999>".
func GenerateOrderID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), n.Int64()), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

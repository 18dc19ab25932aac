package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// receiptMaxAttempts bounds the retry loop. A collision needs two equal
// 24-bit random draws, so hitting the cap means the store is lying, not
// that we are unlucky.
const receiptMaxAttempts = 10

var receiptNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

var errReceiptAttemptsExhausted = errors.New("exhausted attempts to generate a unique receipt id")

// receiptPrefix derives the 3-letter event prefix: alphanumeric
// characters only, uppercased, padded with X when the name is short.
func receiptPrefix(eventName string) string {
	clean := strings.ToUpper(receiptNonAlnum.ReplaceAllString(eventName, ""))
	if len(clean) > 3 {
		clean = clean[:3]
	}
	for len(clean) < 3 {
		clean += "X"
	}
	return clean
}

// newReceiptID generates PREFIX-XXXXXX receipt ids from a
// cryptographically random source, retrying on the rare collision
// against already-issued receipts.
func (c *RegistrationController) newReceiptID(ctx context.Context, eventName string) (string, error) {
	prefix := receiptPrefix(eventName)

	for attempt := 0; attempt < receiptMaxAttempts; attempt++ {
		raw := make([]byte, 3)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		id := fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(raw)))

		exists, err := c.storage.ReceiptExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errReceiptAttemptsExhausted
}

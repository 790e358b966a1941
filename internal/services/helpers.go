package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// NormalizePhone strips the local "09" dialing prefix so every flow stores
// and looks up the same canonical number.
func NormalizePhone(phone string) string {
	if len(phone) > 2 && phone[:2] == "09" {
		return phone[2:]
	}
	return phone
}

// sameCalendarDate compares local calendar dates. Daily counters reset at
// midnight, not on a rolling 24h window.
func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// generateOtp returns a random 6-digit code.
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// generateToken returns an opaque single-use bearer token.
func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

package utils

import (
	"math/rand"
	"time"
)

const referenceLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingReference returns a short human-readable reference printed
// on booking confirmations.
func GenerateBookingReference() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, referenceLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}
	return "ENG-" + string(b)
}

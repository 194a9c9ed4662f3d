// Package util contains small helpers shared across the application
package util

import (
	"crypto/rand"
	"encoding/hex"
)

// RandStr returns a random hex string of length 2n.
func RandStr(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}

package id

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Opaque returns an 8-character base36 string. Marker IDs use this shape; it
// matches the IDs already persisted by earlier clients, so restored answers
// and fresh ones are indistinguishable on the wire.
func Opaque() string {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(base36)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken;
			// fall back to a uuid-derived character.
			return uuid.NewString()[:8]
		}
		buf[i] = base36[n.Int64()]
	}
	return string(buf)
}

// Participant returns a new UUID string for participant identities.
func Participant() string {
	return uuid.NewString()
}

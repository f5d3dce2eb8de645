package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
)

// GenerateRandomString returns 32 bytes of crypto/rand entropy encoded as
// base64, suitable for one-off secrets.
func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// RandFloat64 returns a uniform random value in [0, 1). The value is drawn
// from crypto/rand, so it cannot be predicted by a caller.
func RandFloat64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}

	// 53 bits of entropy, the full precision of a float64 mantissa.
	return float64(binary.BigEndian.Uint64(b[:])>>11) / float64(1<<53)
}

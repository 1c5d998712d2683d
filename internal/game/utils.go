package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// GenerateSessionCode creates a random session join code
func GenerateSessionCode() string {
	code := make([]byte, SessionCodeLength)
	for i := 0; i < SessionCodeLength; i++ {
		code[i] = SessionCodeChars[randIntn(len(SessionCodeChars))]
	}
	return string(code)
}

// randIntn picks uniformly in [0, n) from a cryptographically strong source.
// Imposter selection goes through this so repeated plays stay unpredictable.
func randIntn(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// fallback to math/rand if crypto fails
		return rand.Intn(n)
	}
	return int(v.Int64())
}

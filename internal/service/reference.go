package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const referenceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewReference builds a donation reference: <prefix>_<unix-millis>_<9 lowercase alnum>.
func NewReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), randomSuffix(9))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand failed: %v", err))
		}
		b[i] = referenceAlphabet[idx.Int64()]
	}
	return string(b)
}

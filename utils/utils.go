package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// codeAlphabet excludes visually confusable symbols (0, 1, I, O).
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// codePrefix is the fixed prefix of every verification code.
const codePrefix = "TFOC"

// codeRng is shared across request goroutines and rand.Rand carries no
// internal lock, so every draw goes through codeRngMu.
var (
	codeRngMu sync.Mutex
	codeRng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateVerificationCode generates a certificate verification code in the
// form TFOC-XXXX-XXXX. Codes are random, not guaranteed unique; the issuer
// relies on the storage-layer unique constraint plus a retry loop.
func GenerateVerificationCode() string {
	codeRngMu.Lock()
	defer codeRngMu.Unlock()

	group := func() string {
		b := make([]byte, 4)
		for i := range b {
			b[i] = codeAlphabet[codeRng.Intn(len(codeAlphabet))]
		}
		return string(b)
	}
	return fmt.Sprintf("%s-%s-%s", codePrefix, group(), group())
}

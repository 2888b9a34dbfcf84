package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomCode returns a human-typeable room code of n upper-case
// alphanumerics. Ambiguous characters (I, O, 0, 1) are excluded.
func RandomCode(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			idx = big.NewInt(int64(i % len(codeAlphabet)))
		}
		sb.WriteByte(codeAlphabet[idx.Int64()])
	}
	return sb.String()
}

// MaskWord converts a word to underscores for guessers, preserving spaces
// so word length and shape stay visible.
func MaskWord(word string) string {
	if word == "" {
		return ""
	}
	masked := make([]string, 0, len(word))
	for _, r := range word {
		if r == ' ' {
			masked = append(masked, " ")
		} else {
			masked = append(masked, "_")
		}
	}
	return strings.Join(masked, " ")
}

// NormalizeGuess lower-cases and trims a guess for comparison. Matching is
// equals-compare, never substring.
func NormalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

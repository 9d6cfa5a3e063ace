package utils

import (
	"crypto/rand"
	"math/big"
)

// Rand16BytesToBase62 returns 16 random bytes encoded in base62,
// suitable for unguessable file names and share tokens.
func Rand16BytesToBase62() string {
	buf := make([]byte, 16)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	var i big.Int
	return i.SetBytes(buf).Text(62)
}

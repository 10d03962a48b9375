/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"crypto/rand"
)

// Ambiguous characters (0/O, 1/I) are left out so codes can be read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const DefaultCodeLength = 4

// NewCodes returns a generator of random room codes of the given length,
// using crypto/rand. The alphabet has 32 symbols, so taking each byte modulo
// its length is unbiased.
func NewCodes(length int) func() string {
	if length < 1 {
		length = DefaultCodeLength
	}

	return func() string {
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		for i := range buf {
			buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
		}
		return string(buf)
	}
}

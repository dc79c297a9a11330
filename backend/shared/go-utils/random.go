// go-utils/random.go

package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomString returns `length` lowercase hex characters.
func RandomString(length int) string {
	bytes := make([]byte, (length+1)/2)
	_, err := rand.Read(bytes)
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}

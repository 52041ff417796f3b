/*
Package randx provides functions for generating cryptographically secure random numbers and unique identifiers.

It is primarily used to generate fixed-length Base62 encoded token components and standard UUID user IDs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))
)

// Base62String generates a Base62 encoded string of the given length using a
// cryptographically secure random number generator (crypto/rand).
func Base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// UserID generates a standard UUID v4 string to serve as a unique identifier for a user account.
func UserID() string {
	return uuid.New().String()
}

// IsBase62 checks whether every character of the given string belongs to the Base62 character set.
func IsBase62(s string) bool {
	for _, char := range s {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

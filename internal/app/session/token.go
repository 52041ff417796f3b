package session

import (
	"strconv"
	"time"

	"msgboard/internal/pkg/randx"
)

const (
	// TokenPrefix marks every issued session token. Verification rejects
	// strings without it before touching storage.
	TokenPrefix = "s_"

	// tokenRandomLength is the number of random Base62 characters in a token.
	tokenRandomLength = 9
)

// TokenSource produces opaque session tokens. It is injected into the Manager
// so the generation scheme can be replaced without changing the token's
// external shape.
type TokenSource interface {
	NewToken() (string, error)
}

// randomTokenSource generates tokens of the form s_<random><unix ms> using
// crypto/rand for the random component.
type randomTokenSource struct {
	now func() time.Time
}

func (s randomTokenSource) NewToken() (string, error) {
	random, err := randx.Base62String(tokenRandomLength)
	if err != nil {
		return "", err
	}

	return TokenPrefix + random + strconv.FormatInt(s.now().UnixMilli(), 10), nil
}

package registry

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier abstracts how account credentials are persisted and
// checked, so the storage scheme can change without touching the Registry's
// contract.
type CredentialVerifier interface {
	// Store returns the form of the credential that is persisted with the account.
	Store(password string) (string, error)

	// Verify reports whether the presented credential matches the stored form.
	Verify(stored, presented string) bool
}

// PlainVerifier persists credentials verbatim and compares them byte for byte.
// This matches the behavior existing deployments rely on; it is the default
// scheme but deliberately replaceable.
type PlainVerifier struct{}

func (PlainVerifier) Store(password string) (string, error) {
	return password, nil
}

func (PlainVerifier) Verify(stored, presented string) bool {
	return stored == presented
}

// BcryptVerifier persists bcrypt hashes instead of raw credentials.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Store(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (v BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// VerifierForScheme maps a configured credential scheme name to its verifier.
func VerifierForScheme(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

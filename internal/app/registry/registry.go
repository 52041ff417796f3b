/*
Package registry implements account creation and credential verification on top
of the persistent collection store.

Accounts are keyed by email: the email is the unique identity key, and the
username field mirrors it in every persisted record and payload. Accounts are
never mutated or deleted once created.
*/
package registry

import (
	"context"
	"sync"
	"unicode/utf8"

	"msgboard/internal/app/store"
	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/randx"
)

// MinPasswordLength is the minimum accepted password length, in runes.
const MinPasswordLength = 6

// User is one persisted account record.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DOB      string `json:"dob"`
	Email    string `json:"email"`
	Username string `json:"username"`

	// Password holds the verifier's stored form of the credential.
	Password string `json:"password"`
}

// Registry manages the users collection.
type Registry struct {
	store    store.Store
	verifier CredentialVerifier

	// mu serializes every read-modify-write cycle against the users
	// collection, so concurrent registrations cannot lose updates.
	mu sync.Mutex
}

// New constructs a Registry over the given store. A nil verifier defaults to
// verbatim comparison.
func New(s store.Store, v CredentialVerifier) *Registry {
	if v == nil {
		v = PlainVerifier{}
	}

	return &Registry{store: s, verifier: v}
}

// Register validates the input, checks email uniqueness, and durably appends a
// new account. Validation failures are reported before any storage access.
func (r *Registry) Register(ctx context.Context, name, dob, email, password string) (*User, *errs.CustomError) {
	if name == "" || dob == "" || email == "" || password == "" {
		return nil, errs.NewError(errs.ErrMissingFields)
	}

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, errs.NewError(errs.ErrPasswordTooShort)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var users []User
	if err := r.store.Load(ctx, store.Users, &users); err != nil {
		logx.Error(err, "register: failed to load users collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	for _, u := range users {
		if u.Email == email {
			logx.Warn("registration conflict: email already registered", "email", email)
			return nil, errs.NewError(errs.ErrEmailAlreadyRegistered)
		}
	}

	stored, err := r.verifier.Store(password)
	if err != nil {
		logx.Error(err, "register: failed to prepare credential for storage")
		return nil, errs.NewError(errs.ErrUnknown)
	}

	user := User{
		ID:       randx.UserID(),
		Name:     name,
		DOB:      dob,
		Email:    email,
		Username: email,
		Password: stored,
	}

	users = append(users, user)

	if err := r.store.Save(ctx, store.Users, users); err != nil {
		logx.Error(err, "register: failed to save users collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	return &user, nil
}

// Authenticate finds the account matching the email and credential. Unknown
// email and wrong credential return the same error so the endpoint cannot be
// used to probe which accounts exist.
func (r *Registry) Authenticate(ctx context.Context, email, password string) (*User, *errs.CustomError) {
	var users []User
	if err := r.store.Load(ctx, store.Users, &users); err != nil {
		logx.Error(err, "authenticate: failed to load users collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	for _, u := range users {
		if u.Email == email && r.verifier.Verify(u.Password, password) {
			return &u, nil
		}
	}

	logx.Warn("authentication failed", "email", email)
	return nil, errs.NewError(errs.ErrInvalidCredentials)
}

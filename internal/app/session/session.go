/*
Package session implements issuance, verification, and revocation of opaque
session tokens on top of the persistent collection store.

A session captures a snapshot of the owner's display identity at issue time;
later account changes are never re-read. Validity is computed at verification
time from the stored creation timestamp, not enforced by deletion: an expired
session record still physically exists (and still matches Resolve's exact-token
lookup) until a logout removes it.
*/
package session

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"msgboard/internal/app/registry"
	"msgboard/internal/app/store"
	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/logx"
)

// TTL is how long a session stays valid after issuance.
const TTL = time.Hour

// guestIDPrefix prefixes the synthesized user id of sessions not backed by an
// account record.
const guestIDPrefix = "guest_"

// Guest identity snapshot values.
const (
	guestUsername = "Guest"
	guestName     = "Guest User"
	guestEmail    = "guest@example.com"
	guestDOB      = "N/A"
)

// Session is one persisted session record: the token plus the identity
// snapshot captured when it was issued.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	DOB      string `json:"dob"`
	IsGuest  bool   `json:"isGuest"`

	// Created is the issuance time in unix milliseconds.
	Created int64 `json:"created"`
}

// ExpiresAt returns the instant after which the session no longer verifies.
func (s *Session) ExpiresAt() time.Time {
	return time.UnixMilli(s.Created).Add(TTL)
}

// Manager manages the sessions collection.
type Manager struct {
	store  store.Store
	tokens TokenSource

	// mu serializes every read-modify-write cycle against the sessions
	// collection (issue and revoke). Verification is read-only.
	mu sync.Mutex

	// now is the clock used for issuance and expiry checks.
	now func() time.Time
}

// NewManager constructs a Manager over the given store. A nil tokens source
// defaults to crypto/rand-backed generation.
func NewManager(s store.Store, tokens TokenSource) *Manager {
	m := &Manager{
		store: s,
		now:   time.Now,
	}

	if tokens == nil {
		tokens = randomTokenSource{now: m.clock}
	}
	m.tokens = tokens

	return m
}

func (m *Manager) clock() time.Time {
	return m.now()
}

// Issue creates and persists a session for the given account, capturing its
// identity snapshot.
func (m *Manager) Issue(ctx context.Context, u *registry.User) (*Session, *errs.CustomError) {
	return m.issue(ctx, Session{
		UserID:   u.ID,
		Username: u.Email,
		Name:     u.Name,
		Email:    u.Email,
		DOB:      u.DOB,
		IsGuest:  false,
	})
}

// IssueGuest creates and persists a session with a synthesized guest identity
// not backed by any account record.
func (m *Manager) IssueGuest(ctx context.Context) (*Session, *errs.CustomError) {
	return m.issue(ctx, Session{
		UserID:   guestIDPrefix + strconv.FormatInt(m.now().UnixMilli(), 10),
		Username: guestUsername,
		Name:     guestName,
		Email:    guestEmail,
		DOB:      guestDOB,
		IsGuest:  true,
	})
}

func (m *Manager) issue(ctx context.Context, sess Session) (*Session, *errs.CustomError) {
	token, err := m.tokens.NewToken()
	if err != nil {
		logx.Error(err, "issue: failed to generate session token")
		return nil, errs.NewError(errs.ErrUnknown)
	}

	sess.Token = token
	sess.Created = m.now().UnixMilli()

	m.mu.Lock()
	defer m.mu.Unlock()

	var sessions []Session
	if err := m.store.Load(ctx, store.Sessions, &sessions); err != nil {
		logx.Error(err, "issue: failed to load sessions collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	sessions = append(sessions, sess)

	if err := m.store.Save(ctx, store.Sessions, sessions); err != nil {
		logx.Error(err, "issue: failed to save sessions collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	return &sess, nil
}

// Verify returns the owning user id for a live session token. Tokens that are
// empty or lack the expected prefix are rejected without a storage read.
// Expired sessions fail verification exactly like unknown ones; Verify never
// evicts them.
func (m *Manager) Verify(ctx context.Context, token string) (string, *errs.CustomError) {
	if token == "" || !strings.HasPrefix(token, TokenPrefix) {
		return "", errs.NewError(errs.ErrUnauthorized)
	}

	var sessions []Session
	if err := m.store.Load(ctx, store.Sessions, &sessions); err != nil {
		logx.Error(err, "verify: failed to load sessions collection")
		return "", errs.NewError(errs.ErrStorageFailure)
	}

	now := m.now()

	for i := range sessions {
		s := &sessions[i]
		if s.Token == token && now.Sub(time.UnixMilli(s.Created)) < TTL {
			return s.UserID, nil
		}
	}

	return "", errs.NewError(errs.ErrUnauthorized)
}

// Resolve returns the full session record for an exact token match, regardless
// of expiry. Callers needing the identity snapshot of an already-verified
// token use this; the expired-but-present window between Verify and Resolve is
// deliberate.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, *errs.CustomError) {
	var sessions []Session
	if err := m.store.Load(ctx, store.Sessions, &sessions); err != nil {
		logx.Error(err, "resolve: failed to load sessions collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	for i := range sessions {
		if sessions[i].Token == token {
			return &sessions[i], nil
		}
	}

	return nil, errs.NewError(errs.ErrSessionNotFound)
}

// Revoke removes every session with an exact token match. Revoking an unknown,
// already-revoked, or empty token is a no-op, never an error.
func (m *Manager) Revoke(ctx context.Context, token string) *errs.CustomError {
	if token == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var sessions []Session
	if err := m.store.Load(ctx, store.Sessions, &sessions); err != nil {
		logx.Error(err, "revoke: failed to load sessions collection")
		return errs.NewError(errs.ErrStorageFailure)
	}

	remaining := sessions[:0]
	for _, s := range sessions {
		if s.Token != token {
			remaining = append(remaining, s)
		}
	}

	if err := m.store.Save(ctx, store.Sessions, remaining); err != nil {
		logx.Error(err, "revoke: failed to save sessions collection")
		return errs.NewError(errs.ErrStorageFailure)
	}

	return nil
}

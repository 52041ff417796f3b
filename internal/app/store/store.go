/*
Package store implements the persistent collection store backing the message board.

Every collection is a flat ordered sequence of records that is loaded and
rewritten wholesale per operation. Implementations exist for local JSON files
(the default), PostgreSQL, and S3-compatible object storage, all with identical
observable semantics: a collection that has never been written loads as an
empty sequence, and unreadable or corrupt storage is always surfaced as an
error rather than an empty result.
*/
package store

import "context"

// Collection names used by the application. Each name maps to one logically
// independent record sequence.
const (
	Users    = "users"
	Sessions = "sessions"
	Messages = "messages"
)

// Store is the contract shared by all collection store backends.
//
// Store implementations do not serialize the read-modify-write cycles built on
// top of them; callers that mutate a collection must hold their own exclusive
// lock across Load and Save.
type Store interface {
	// Load reads the named collection into dst, which must be a pointer to a
	// slice. A missing collection is initialized as an empty sequence.
	Load(ctx context.Context, name string, dst any) error

	// Save replaces the named collection with the given records wholesale.
	Save(ctx context.Context, name string, records any) error
}

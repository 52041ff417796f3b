/*
Package board implements the shared, size-bounded message history.

Messages are append-only: they are never individually edited or removed, only
aged out by the history cap. Ordering is insertion order, which is also
chronological under a single writer.
*/
package board

import (
	"context"
	"sync"
	"time"

	"msgboard/internal/app/store"
	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/logx"
)

const (
	// MaxHistory is the maximum number of messages retained in storage. Every
	// write keeps only the most recent MaxHistory entries.
	MaxHistory = 100

	// MachineAuthorName is the fixed attribution for machine-authored entries,
	// regardless of the posting session's identity.
	MachineAuthorName = "AI Assistant"

	// MaxContentBytes is the maximum allowed size (in bytes) for message text.
	MaxContentBytes = 5000

	// UnknownAuthorName attributes a post whose session snapshot could not be
	// resolved between verification and posting.
	UnknownAuthorName = "Unknown"
)

// Message is one unit of board content.
type Message struct {
	// ID is the creation timestamp in unix milliseconds. It is used for
	// display and ordering only and is not guaranteed unique under
	// concurrent writers.
	ID int64 `json:"id"`

	Username string `json:"username"`
	Text     string `json:"text"`
	IsAI     bool   `json:"isAI"`

	// Timestamp is the creation time in RFC 3339.
	Timestamp string `json:"timestamp"`
}

// Board manages the messages collection.
type Board struct {
	store store.Store

	// mu serializes every read-modify-write cycle against the messages
	// collection, so concurrent posts cannot lose each other's entries.
	mu sync.Mutex

	// now is the clock used for message ids and timestamps.
	now func() time.Time
}

// New constructs a Board over the given store.
func New(s store.Store) *Board {
	return &Board{store: s, now: time.Now}
}

// List returns the full persisted history, unmodified, in stored order.
// Authentication is enforced at the handler boundary, not here.
func (b *Board) List(ctx context.Context) ([]Message, *errs.CustomError) {
	var messages []Message
	if err := b.store.Load(ctx, store.Messages, &messages); err != nil {
		logx.Error(err, "list: failed to load messages collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	return messages, nil
}

// Post appends a new message attributed to author, truncates the history to
// the most recent MaxHistory entries, persists it, and returns the created
// message. Machine-authored entries are always attributed MachineAuthorName.
func (b *Board) Post(ctx context.Context, author, text string, isAI bool) (*Message, *errs.CustomError) {
	if len(text) > MaxContentBytes {
		return nil, errs.NewError(errs.ErrMessageContentTooLong)
	}

	if isAI {
		author = MachineAuthorName
	} else if author == "" {
		author = UnknownAuthorName
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var messages []Message
	if err := b.store.Load(ctx, store.Messages, &messages); err != nil {
		logx.Error(err, "post: failed to load messages collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	now := b.now()

	message := Message{
		ID:        now.UnixMilli(),
		Username:  author,
		Text:      text,
		IsAI:      isAI,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	messages = append(messages, message)

	if len(messages) > MaxHistory {
		messages = messages[len(messages)-MaxHistory:]
	}

	if err := b.store.Save(ctx, store.Messages, messages); err != nil {
		logx.Error(err, "post: failed to save messages collection")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	return &message, nil
}

package board

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"msgboard/internal/app/store"
	"msgboard/internal/pkg/errs"
)

func newTestBoard(t *testing.T) (*Board, *store.MemStore) {
	t.Helper()

	s := store.NewMemStore()
	b := New(s)

	// Deterministic clock that advances one millisecond per message, so ids
	// are distinct and ordering is observable.
	current := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}

	return b, s
}

func TestListEmptyBoard(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t)

	messages, customErr := b.List(context.Background())
	require.Nil(t, customErr)
	require.Empty(t, messages)
}

func TestPostAndList(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t)
	ctx := context.Background()

	posted, customErr := b.Post(ctx, "ann@x.com", "hello", false)
	require.Nil(t, customErr)
	require.Equal(t, "ann@x.com", posted.Username)
	require.Equal(t, "hello", posted.Text)
	require.False(t, posted.IsAI)
	require.NotZero(t, posted.ID)

	_, err := time.Parse(time.RFC3339, posted.Timestamp)
	require.NoError(t, err)

	messages, customErr := b.List(ctx)
	require.Nil(t, customErr)
	require.Len(t, messages, 1)
	require.Equal(t, *posted, messages[0])
}

func TestPostCapsHistoryAtHundred(t *testing.T) {
	t.Parallel()

	b, s := newTestBoard(t)
	ctx := context.Background()

	for i := 0; i < 105; i++ {
		_, customErr := b.Post(ctx, "ann@x.com", fmt.Sprintf("msg-%d", i), false)
		require.Nil(t, customErr)
	}

	// Exactly the last 100 survive, in original relative order.
	var persisted []Message
	require.NoError(t, s.Load(ctx, store.Messages, &persisted))
	require.Len(t, persisted, MaxHistory)
	require.Equal(t, "msg-5", persisted[0].Text)
	require.Equal(t, "msg-104", persisted[MaxHistory-1].Text)

	for i := 1; i < len(persisted); i++ {
		require.Less(t, persisted[i-1].ID, persisted[i].ID)
	}
}

func TestPostMachineAuthoredAttribution(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t)

	// Machine-authored entries always get the fixed label, regardless of the
	// session identity behind the request.
	posted, customErr := b.Post(context.Background(), "ann@x.com", "generated reply", true)
	require.Nil(t, customErr)
	require.Equal(t, MachineAuthorName, posted.Username)
	require.True(t, posted.IsAI)
}

func TestPostUnknownAuthorFallback(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t)

	posted, customErr := b.Post(context.Background(), "", "orphaned", false)
	require.Nil(t, customErr)
	require.Equal(t, UnknownAuthorName, posted.Username)
}

func TestPostRejectsOversizedText(t *testing.T) {
	t.Parallel()

	b, s := newTestBoard(t)
	ctx := context.Background()

	_, customErr := b.Post(ctx, "ann@x.com", strings.Repeat("a", MaxContentBytes+1), false)
	require.NotNil(t, customErr)
	require.Equal(t, errs.ErrMessageContentTooLong, customErr.Code)

	var persisted []Message
	require.NoError(t, s.Load(ctx, store.Messages, &persisted))
	require.Empty(t, persisted)
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func TestFileStoreInitializesMissingCollection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	var records []record
	err = s.Load(context.Background(), Messages, &records)
	require.NoError(t, err)
	require.Empty(t, records)

	// The backing file must exist as an empty array after first use.
	raw, err := os.ReadFile(filepath.Join(dir, "messages.json"))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	saved := []record{
		{ID: "1", Text: "first"},
		{ID: "2", Text: "second"},
		{ID: "3", Text: "third"},
	}
	require.NoError(t, s.Save(ctx, Messages, saved))

	var loaded []record
	require.NoError(t, s.Load(ctx, Messages, &loaded))
	require.Equal(t, saved, loaded)
}

func TestFileStoreSaveReplacesWholesale(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Users, []record{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, s.Save(ctx, Users, []record{{ID: "3"}}))

	var loaded []record
	require.NoError(t, s.Load(ctx, Users, &loaded))
	require.Equal(t, []record{{ID: "3"}}, loaded)
}

func TestFileStoreCorruptCollectionIsAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.json"), []byte("{not json"), 0o644))

	var records []record
	err = s.Load(context.Background(), Sessions, &records)
	require.Error(t, err)
	require.Contains(t, err.Error(), "corrupt")
}

func TestFileStoreCollectionsAreIndependent(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Users, []record{{ID: "u1"}}))
	require.NoError(t, s.Save(ctx, Messages, []record{{ID: "m1"}, {ID: "m2"}}))

	var users, messages []record
	require.NoError(t, s.Load(ctx, Users, &users))
	require.NoError(t, s.Load(ctx, Messages, &messages))

	require.Len(t, users, 1)
	require.Len(t, messages, 2)
}

func TestMemStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	var empty []record
	require.NoError(t, s.Load(ctx, Messages, &empty))
	require.Empty(t, empty)

	saved := []record{{ID: "1", Text: "hello"}}
	require.NoError(t, s.Save(ctx, Messages, saved))

	var loaded []record
	require.NoError(t, s.Load(ctx, Messages, &loaded))
	require.Equal(t, saved, loaded)
}

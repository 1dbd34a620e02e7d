package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-locker/models"
)

func memRecord(id, owner, website, username string, createdAt time.Time) models.Record {
	return models.Record{
		ID:        id,
		OwnerID:   owner,
		Website:   website,
		Username:  username,
		Envelope:  testEnvelope(),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryVaultStore_CreateGet(t *testing.T) {
	s := NewMemoryVaultStore()
	ctx := context.Background()
	rec := memRecord("r1", "alice", "GitHub", "alice", time.Now())

	require.NoError(t, s.Create(ctx, rec))
	require.ErrorIs(t, s.Create(ctx, rec), ErrDuplicateID)

	got, err := s.Get(ctx, "alice", "r1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = s.Get(ctx, "bob", "r1")
	require.ErrorIs(t, err, ErrNotFound, "foreign records look missing")
}

func TestMemoryVaultStore_ReturnedRecordsAreCopies(t *testing.T) {
	s := NewMemoryVaultStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, memRecord("r1", "alice", "GitHub", "alice", time.Now())))

	got, err := s.Get(ctx, "alice", "r1")
	require.NoError(t, err)
	got.Envelope.Ciphertext[0] ^= 0xFF

	again, err := s.Get(ctx, "alice", "r1")
	require.NoError(t, err)
	assert.Equal(t, testEnvelope().Ciphertext, again.Envelope.Ciphertext)
}

func TestMemoryVaultStore_UpdateDelete(t *testing.T) {
	s := NewMemoryVaultStore()
	ctx := context.Background()
	created := time.Now()
	require.NoError(t, s.Create(ctx, memRecord("r1", "alice", "GitHub", "alice", created)))

	update := memRecord("r1", "alice", "GitLab", "al", created)
	update.UpdatedAt = created.Add(time.Minute)
	update.CreatedAt = time.Time{}
	require.NoError(t, s.Update(ctx, update))

	got, err := s.Get(ctx, "alice", "r1")
	require.NoError(t, err)
	assert.Equal(t, "GitLab", got.Website)
	assert.Equal(t, "al", got.Username)
	assert.Equal(t, created, got.CreatedAt, "created_at is immutable")
	assert.Equal(t, update.UpdatedAt, got.UpdatedAt)

	foreign := update
	foreign.OwnerID = "bob"
	require.ErrorIs(t, s.Update(ctx, foreign), ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "bob", "r1"), ErrNotFound)

	require.NoError(t, s.Delete(ctx, "alice", "r1"))
	_, err = s.Get(ctx, "alice", "r1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "alice", "r1"), ErrNotFound)
}

func TestMemoryVaultStore_SearchOrderAndScope(t *testing.T) {
	s := NewMemoryVaultStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(ctx, memRecord("c", "alice", "GitLab", "alice", base.Add(2*time.Hour))))
	require.NoError(t, s.Create(ctx, memRecord("b", "alice", "GitHub", "alice", base)))
	require.NoError(t, s.Create(ctx, memRecord("a", "alice", "Example", "git-user", base)))
	require.NoError(t, s.Create(ctx, memRecord("d", "alice", "Bank", "alice", base.Add(time.Hour))))
	require.NoError(t, s.Create(ctx, memRecord("e", "bob", "GitHub", "bob", base)))

	views, err := s.Search(ctx, "alice", "GIT")
	require.NoError(t, err)
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids, "ordered by created_at then id, username matches too")

	views, err = s.Search(ctx, "alice", "zzz")
	require.NoError(t, err)
	assert.Empty(t, views)

	all, err := s.ListAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.ListAll(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryVaultStore_ContextCancelled(t *testing.T) {
	s := NewMemoryVaultStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Create(ctx, memRecord("r1", "alice", "x", "y", time.Now())), context.Canceled)
	require.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestMemoryVaultStore_ConcurrentCreates(t *testing.T) {
	s := NewMemoryVaultStore()
	ctx := context.Background()

	errs := make(chan error, 50)
	for i := range 50 {
		go func() {
			errs <- s.Create(ctx, memRecord(fmt.Sprintf("r%d", i), "alice", "site", "user", time.Now()))
		}()
	}
	for range 50 {
		require.NoError(t, <-errs)
	}

	all, err := s.ListAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

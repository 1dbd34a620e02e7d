package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
)

func newSQLiteRepo(t *testing.T) VaultStore {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: filepath.Join(t.TempDir(), "vault.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewVaultRepository(db)
}

func TestSQLiteVaultRepository_SearchFoldsUnicode(t *testing.T) {
	ctx := testContext()
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stores := map[string]VaultStore{
		"sqlite": newSQLiteRepo(t),
		"memory": NewMemoryVaultStore(),
	}
	for _, s := range stores {
		require.NoError(t, s.Create(ctx, memRecord("r1", "alice", "ÄPFEL.de", "ÉLODIE", createdAt)))
		require.NoError(t, s.Create(ctx, memRecord("r2", "alice", "GitHub", "alice", createdAt.Add(time.Second))))
		require.NoError(t, s.Create(ctx, memRecord("r3", "bob", "äpfel.at", "bob", createdAt)))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "äpfel", want: []string{"r1"}},
		{query: "ÄPF", want: []string{"r1"}},
		{query: "ÄPFEL.de", want: []string{"r1"}},
		{query: "élodie", want: []string{"r1"}},
		{query: "Élo", want: []string{"r1"}},
		{query: "HUB", want: []string{"r2"}},
		{query: "e", want: []string{"r1", "r2"}},
		{query: "100%", want: []string{}},
	}

	for name, s := range stores {
		for _, tt := range tests {
			t.Run(name+"/"+tt.query, func(t *testing.T) {
				views, err := s.Search(ctx, "alice", tt.query)
				require.NoError(t, err)

				ids := make([]string, 0, len(views))
				for _, v := range views {
					ids = append(ids, v.ID)
				}
				assert.Equal(t, tt.want, ids)
			})
		}
	}
}

func TestSQLiteVaultRepository_RoundTrip(t *testing.T) {
	ctx := testContext()
	repo := newSQLiteRepo(t)
	record := testRecord()

	require.NoError(t, repo.Create(ctx, record))
	require.ErrorIs(t, repo.Create(ctx, record), ErrDuplicateID)

	got, err := repo.Get(ctx, record.OwnerID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Envelope, got.Envelope)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "mallory", record.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, record.OwnerID, record.ID))
	require.ErrorIs(t, repo.Delete(ctx, record.OwnerID, record.ID), ErrNotFound)
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
)

func TestNewStorages_Memory(t *testing.T) {
	ctx := context.Background()
	storages, err := NewStorages(ctx, config.Storage{Driver: config.DriverMemory, RetryAttempts: 1}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, storages.VaultStore)

	require.NoError(t, storages.VaultStore.Create(testContext(), testRecord()))
	got, err := storages.VaultStore.Get(testContext(), "alice", testRecord().ID)
	require.NoError(t, err)
	assert.Equal(t, testRecord(), got)

	require.NoError(t, storages.VaultStore.Ping(ctx))
	require.NoError(t, storages.Close(ctx))
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{Driver: "cassandra"}, logger.Nop())
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestStorages_CloseJoinsErrors(t *testing.T) {
	closed := 0
	s := &Storages{closers: []func(ctx context.Context) error{
		func(context.Context) error { closed++; return nil },
		func(context.Context) error { closed++; return assert.AnError },
	}}

	require.ErrorIs(t, s.Close(context.Background()), assert.AnError)
	assert.Equal(t, 2, closed)
	require.NoError(t, s.Close(context.Background()))
}

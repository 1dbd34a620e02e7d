package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-locker/internal/store"
)

type healthService struct {
	store store.VaultStore
}

func NewHealthService(vaultStore store.VaultStore) HealthService {
	return &healthService{store: vaultStore}
}

// Check pings the vault store. Any failure is reported as ErrUnavailable.
func (h *healthService) Check(ctx context.Context) error {
	if err := h.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/crypto"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/store"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
	"github.com/MKhiriev/go-pass-locker/internal/workers"
)

type Services struct {
	VaultService    VaultService
	IdentityService IdentityService
	AppInfoService  AppInfoService
	HealthService   HealthService
}

// NewServices builds the service layer over storages. The vault is wrapped
// with input validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	kdfPool := workers.NewKDFPool(crypto.NewKeyDeriver(), cfg.Vault.KDFWorkers)
	logger.Info().Str("func", "NewServices").Int("kdf_workers", kdfPool.Size()).Msg("key derivation pool ready")

	vault, err := NewVaultService(
		storages.VaultStore,
		kdfPool,
		crypto.NewEnvelopeCodec(),
		utils.NewUUIDGenerator(),
		cfg.Vault,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating vault service: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		VaultService:    NewVaultValidationService().Wrap(vault),
		IdentityService: NewIdentityService(cfg.App, logger),
		AppInfoService:  appInfo,
		HealthService:   NewHealthService(storages.VaultStore),
	}, nil
}

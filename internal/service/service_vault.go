package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/crypto"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/store"
	"github.com/MKhiriev/go-pass-locker/internal/workers"
	"github.com/MKhiriev/go-pass-locker/models"
)

// maxIDAttempts bounds how often AddPassword re-mints an id that collided.
const maxIDAttempts = 3

// vaultService is the concrete implementation of VaultService.
//
// Sensitive calls follow the same path: the owned record is loaded, a key
// is derived from the master password through the KDF pool, and the
// payload is sealed or opened by the envelope codec. Keys and password
// bytes are zeroed before the call returns.
type vaultService struct {
	store store.VaultStore
	kdf   workers.KDFPool
	codec crypto.EnvelopeCodec
	ids   idGenerator

	// params is the Argon2id cost applied to newly sealed envelopes.
	// Existing envelopes are opened with the params they carry.
	params models.KDFParams

	locks *recordLocks
	now   func() time.Time

	logger *logger.Logger
}

// NewVaultService wires the vault from its collaborators. It returns
// ErrInvalidParams when the configured key derivation cost is unusable.
func NewVaultService(
	vaultStore store.VaultStore,
	kdf workers.KDFPool,
	codec crypto.EnvelopeCodec,
	ids idGenerator,
	cfg config.Vault,
	logger *logger.Logger,
) (VaultService, error) {
	params := crypto.NewKDFParams(cfg.ArgonTime, cfg.ArgonMemoryKiB, cfg.ArgonThreads)
	if err := crypto.ValidateKDFParams(params, make([]byte, crypto.SaltSize)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return &vaultService{
		store:  vaultStore,
		kdf:    kdf,
		codec:  codec,
		ids:    ids,
		params: params,
		locks:  newRecordLocks(),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		logger: logger,
	}, nil
}

func (s *vaultService) AddPassword(ctx context.Context, ownerID string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	log := logger.ForRecord(ctx, ownerID, "")

	envelope, err := s.seal(ctx, masterPassword, fields)
	if err != nil {
		log.Err(err).Str("func", "vaultService.AddPassword").Msg("error sealing new record")
		return models.RecordView{}, err
	}

	now := s.now()
	record := models.Record{
		OwnerID:   ownerID,
		Website:   fields.Website,
		Username:  fields.Username,
		Envelope:  envelope,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 1; ; attempt++ {
		record.ID = s.ids.Generate()
		err = s.store.Create(ctx, record)
		if !errors.Is(err, store.ErrDuplicateID) || attempt == maxIDAttempts {
			break
		}
		log.Warn().Str("func", "vaultService.AddPassword").Int("attempt", attempt).Msg("record id collision, minting a new one")
	}
	if err != nil {
		log.Err(err).Str("func", "vaultService.AddPassword").Msg("error storing new record")
		return models.RecordView{}, mapStoreError(err)
	}

	log.Info().Str("func", "vaultService.AddPassword").Str("record_id", record.ID).Msg("record added")
	return record.View(), nil
}

func (s *vaultService) GetPassword(ctx context.Context, ownerID, id, masterPassword string) (models.DecryptedRecord, error) {
	log := logger.ForRecord(ctx, ownerID, id)

	record, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "vaultService.GetPassword").Msg("error loading record")
		return models.DecryptedRecord{}, mapStoreError(err)
	}

	payload, err := s.open(ctx, masterPassword, record.Envelope)
	if err != nil {
		log.Warn().Err(err).Str("func", "vaultService.GetPassword").Msg("error opening record")
		return models.DecryptedRecord{}, err
	}

	return models.DecryptedRecord{
		ID:        record.ID,
		Website:   record.Website,
		Username:  record.Username,
		Password:  payload.Password,
		Notes:     payload.Notes,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *vaultService) UpdatePassword(ctx context.Context, ownerID, id string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	log := logger.ForRecord(ctx, ownerID, id)

	unlock, err := s.locks.lock(ctx, id)
	if err != nil {
		return models.RecordView{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer unlock()

	record, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "vaultService.UpdatePassword").Msg("error loading record")
		return models.RecordView{}, mapStoreError(err)
	}

	// the current envelope must open with the supplied master password
	if _, err = s.open(ctx, masterPassword, record.Envelope); err != nil {
		log.Warn().Err(err).Str("func", "vaultService.UpdatePassword").Msg("master password verification failed")
		return models.RecordView{}, err
	}

	envelope, err := s.seal(ctx, masterPassword, fields)
	if err != nil {
		log.Err(err).Str("func", "vaultService.UpdatePassword").Msg("error sealing updated record")
		return models.RecordView{}, err
	}

	record.Website = fields.Website
	record.Username = fields.Username
	record.Envelope = envelope
	record.UpdatedAt = s.now()
	if record.UpdatedAt.Before(record.CreatedAt) {
		record.UpdatedAt = record.CreatedAt
	}

	if err = s.store.Update(ctx, record); err != nil {
		log.Err(err).Str("func", "vaultService.UpdatePassword").Msg("error storing updated record")
		return models.RecordView{}, mapStoreError(err)
	}

	log.Info().Str("func", "vaultService.UpdatePassword").Msg("record updated")
	return record.View(), nil
}

func (s *vaultService) DeletePassword(ctx context.Context, ownerID, id string) error {
	log := logger.ForRecord(ctx, ownerID, id)

	unlock, err := s.locks.lock(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer unlock()

	if err = s.store.Delete(ctx, ownerID, id); err != nil {
		log.Err(err).Str("func", "vaultService.DeletePassword").Msg("error deleting record")
		return mapStoreError(err)
	}

	log.Info().Str("func", "vaultService.DeletePassword").Msg("record deleted")
	return nil
}

func (s *vaultService) Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error) {
	if query == "" {
		return s.ListAll(ctx, ownerID)
	}

	views, err := s.store.Search(ctx, ownerID, query)
	if err != nil {
		logger.ForRecord(ctx, ownerID, "").Err(err).Str("func", "vaultService.Search").Msg("error searching records")
		return nil, mapStoreError(err)
	}
	return views, nil
}

func (s *vaultService) ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error) {
	views, err := s.store.ListAll(ctx, ownerID)
	if err != nil {
		logger.ForRecord(ctx, ownerID, "").Err(err).Str("func", "vaultService.ListAll").Msg("error listing records")
		return nil, mapStoreError(err)
	}
	return views, nil
}

// seal encrypts the secret part of fields under a key derived from
// masterPassword with a fresh salt and the configured params.
func (s *vaultService) seal(ctx context.Context, masterPassword string, fields models.PasswordFields) (models.Envelope, error) {
	salt, err := crypto.NewSalt()
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	key, err := s.deriveKey(ctx, masterPassword, salt, s.params)
	if err != nil {
		if isContextError(err) {
			return models.Envelope{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	defer crypto.Zero(key)

	plaintext, err := crypto.MarshalPayload(models.SecretPayload{Password: fields.Password, Notes: fields.Notes})
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	defer crypto.Zero(plaintext)

	envelope, err := s.codec.Seal(key, salt, s.params, plaintext)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return envelope, nil
}

// open decrypts envelope with a key derived from masterPassword and the
// salt and params the envelope carries. A wrong password and a damaged
// envelope both end in ErrAuthenticationFailed.
func (s *vaultService) open(ctx context.Context, masterPassword string, envelope models.Envelope) (models.SecretPayload, error) {
	key, err := s.deriveKey(ctx, masterPassword, envelope.Salt, envelope.KDFParams)
	if err != nil {
		if isContextError(err) {
			return models.SecretPayload{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return models.SecretPayload{}, ErrAuthenticationFailed
	}
	defer crypto.Zero(key)

	plaintext, err := s.codec.Open(key, envelope)
	if err != nil {
		return models.SecretPayload{}, ErrAuthenticationFailed
	}
	defer crypto.Zero(plaintext)

	payload, err := crypto.UnmarshalPayload(plaintext)
	if err != nil {
		return models.SecretPayload{}, ErrAuthenticationFailed
	}
	return payload, nil
}

func (s *vaultService) deriveKey(ctx context.Context, masterPassword string, salt []byte, params models.KDFParams) ([]byte, error) {
	password := []byte(masterPassword)
	defer crypto.Zero(password)

	return s.kdf.Derive(ctx, password, salt, params)
}

// mapStoreError translates a store failure into the vault taxonomy.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrCorruptedRecord):
		return ErrAuthenticationFailed
	case errors.Is(err, store.ErrUnavailable), isContextError(err):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-locker/internal/crypto"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/models"
)

// vaultRepository is the database/sql implementation of [VaultStore] shared
// by the PostgreSQL and SQLite backends. Envelopes are stored as the CBOR
// blob produced by [crypto.MarshalEnvelope].
type vaultRepository struct {
	*DB
}

// NewVaultRepository constructs a [VaultStore] backed by db.
func NewVaultRepository(db *DB) VaultStore {
	return &vaultRepository{DB: db}
}

func (r *vaultRepository) Create(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	envelope, err := crypto.MarshalEnvelope(record.Envelope)
	if err != nil {
		return err
	}

	query, args, err := buildInsertRecordQuery(r.builder, record, envelope)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Create").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %w", ErrDuplicateID, err)
		}
		log.Err(err).
			Str("func", "vaultRepository.Create").
			Str("owner_id", record.OwnerID).
			Msg("failed to insert vault record")
		return r.wrapError(ErrExecutingStatement, err)
	}

	return nil
}

func (r *vaultRepository) Get(ctx context.Context, ownerID, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecordQuery(r.builder, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Get").Msg("failed to create query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		record   models.Record
		envelope []byte
	)
	err = r.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.OwnerID,
		&record.Website,
		&record.Username,
		&envelope,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Get").
			Str("owner_id", ownerID).
			Str("record_id", id).
			Msg("failed to scan vault record row")
		return models.Record{}, r.wrapError(ErrScanningRow, err)
	}

	record.Envelope, err = crypto.UnmarshalEnvelope(envelope)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Get").
			Str("owner_id", ownerID).
			Str("record_id", id).
			Msg("stored envelope cannot be decoded")
		return models.Record{}, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
	}

	return record, nil
}

func (r *vaultRepository) Update(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	envelope, err := crypto.MarshalEnvelope(record.Envelope)
	if err != nil {
		return err
	}

	query, args, err := buildUpdateRecordQuery(r.builder, record, envelope)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Update").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "vaultRepository.Update", record.OwnerID, record.ID, query, args)
}

func (r *vaultRepository) Delete(ctx context.Context, ownerID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(r.builder, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Delete").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "vaultRepository.Delete", ownerID, id, query, args)
}

func (r *vaultRepository) Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error) {
	return r.listViews(ctx, "vaultRepository.Search", ownerID, query)
}

func (r *vaultRepository) ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error) {
	return r.listViews(ctx, "vaultRepository.ListAll", ownerID, "")
}

func (r *vaultRepository) Ping(ctx context.Context) error {
	if err := r.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// execAffectingOne runs an owner-scoped UPDATE or DELETE and reports
// [ErrNotFound] when no row matched.
func (r *vaultRepository) execAffectingOne(ctx context.Context, funcName, ownerID, id, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("owner_id", ownerID).
			Str("record_id", id).
			Msg("failed to execute statement")
		return r.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.wrapError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *vaultRepository) listViews(ctx context.Context, funcName, ownerID, search string) ([]models.RecordView, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListViewsQuery(r.builder, ownerID, search)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("owner_id", ownerID).
			Msg("failed to execute query for listing vault records")
		return nil, r.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	views := make([]models.RecordView, 0, 16)
	for rows.Next() {
		var view models.RecordView
		if err = rows.Scan(&view.ID, &view.Website, &view.Username, &view.CreatedAt, &view.UpdatedAt); err != nil {
			log.Err(err).
				Str("func", funcName).
				Str("owner_id", ownerID).
				Msg("failed to scan vault record row")
			return nil, r.wrapError(ErrScanningRow, err)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, r.wrapError(ErrScanningRows, err)
	}

	return views, nil
}

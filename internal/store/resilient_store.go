// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/models"
)

const (
	defaultRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff     = 2 * time.Second
)

// resilientStore decorates a [VaultStore] with a per-call timeout and
// bounded exponential retries of [ErrUnavailable] failures. Other errors
// are returned immediately.
type resilientStore struct {
	next     VaultStore
	timeout  time.Duration
	attempts uint64
	backoff  time.Duration
}

// NewResilientStore wraps next using the timeout and retry settings of cfg.
func NewResilientStore(next VaultStore, cfg config.Storage) VaultStore {
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &resilientStore{
		next:     next,
		timeout:  cfg.OperationTimeout,
		attempts: cfg.RetryAttempts,
		backoff:  backoff,
	}
}

func (s *resilientStore) do(ctx context.Context, funcName string, fn func(ctx context.Context) error) error {
	b := retry.NewExponential(s.backoff)
	b = retry.WithCappedDuration(maxRetryBackoff, b)
	b = retry.WithMaxRetries(s.attempts, b)

	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		opCtx, cancel := s.withTimeout(ctx)
		defer cancel()

		err := fn(opCtx)
		if err != nil && !errors.Is(err, ErrUnavailable) &&
			errors.Is(opCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		if errors.Is(err, ErrUnavailable) {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", funcName).
				Int("attempt", attempt).
				Msg("vault store unavailable")
			return retry.RetryableError(err)
		}

		return err
	})

	if err != nil && ctx.Err() != nil && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return err
}

func (s *resilientStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Create keeps the record id across attempts. If an attempt failed as
// unavailable the insert may still have landed, so a later duplicate id is
// checked against the stored row: the same nonce means it is our own write.
func (s *resilientStore) Create(ctx context.Context, record models.Record) error {
	sawUnavailable := false
	err := s.do(ctx, "resilientStore.Create", func(ctx context.Context) error {
		err := s.next.Create(ctx, record)
		if errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
			sawUnavailable = true
		}
		return err
	})

	if sawUnavailable && errors.Is(err, ErrDuplicateID) {
		stored, getErr := s.Get(ctx, record.OwnerID, record.ID)
		if getErr == nil && bytes.Equal(stored.Envelope.Nonce, record.Envelope.Nonce) {
			return nil
		}
	}

	return err
}

func (s *resilientStore) Get(ctx context.Context, ownerID, id string) (models.Record, error) {
	var record models.Record
	err := s.do(ctx, "resilientStore.Get", func(ctx context.Context) error {
		var err error
		record, err = s.next.Get(ctx, ownerID, id)
		return err
	})
	return record, err
}

func (s *resilientStore) Update(ctx context.Context, record models.Record) error {
	return s.do(ctx, "resilientStore.Update", func(ctx context.Context) error {
		return s.next.Update(ctx, record)
	})
}

// Delete treats a missing row after an unavailable attempt as its own
// delete whose acknowledgement was lost.
func (s *resilientStore) Delete(ctx context.Context, ownerID, id string) error {
	sawUnavailable := false
	err := s.do(ctx, "resilientStore.Delete", func(ctx context.Context) error {
		err := s.next.Delete(ctx, ownerID, id)
		if errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
			sawUnavailable = true
		}
		return err
	})

	if sawUnavailable && errors.Is(err, ErrNotFound) {
		logger.FromContext(ctx).Info().
			Str("func", "resilientStore.Delete").
			Str("record_id", id).
			Msg("record gone after an unavailable attempt, delete assumed applied")
		return nil
	}

	return err
}

func (s *resilientStore) Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error) {
	var views []models.RecordView
	err := s.do(ctx, "resilientStore.Search", func(ctx context.Context) error {
		var err error
		views, err = s.next.Search(ctx, ownerID, query)
		return err
	})
	return views, err
}

func (s *resilientStore) ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error) {
	var views []models.RecordView
	err := s.do(ctx, "resilientStore.ListAll", func(ctx context.Context) error {
		var err error
		views, err = s.next.ListAll(ctx, ownerID)
		return err
	})
	return views, err
}

// Ping is not retried: health checks report the current state.
func (s *resilientStore) Ping(ctx context.Context) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.next.Ping(opCtx)
}

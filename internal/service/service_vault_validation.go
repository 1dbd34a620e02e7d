package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-locker/internal/validators"
	"github.com/MKhiriev/go-pass-locker/models"
)

// VaultValidationService rejects malformed calls with ErrInvalidInput
// before they reach the vault and its key derivation.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) AddPassword(ctx context.Context, ownerID string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	access := models.VaultAccess{OwnerID: ownerID, MasterPassword: masterPassword}
	if err := v.validate(ctx, access, fields, validators.FieldOwnerID, validators.FieldMasterPassword); err != nil {
		return models.RecordView{}, err
	}

	return v.inner.AddPassword(ctx, ownerID, fields, masterPassword)
}

func (v *VaultValidationService) GetPassword(ctx context.Context, ownerID, id, masterPassword string) (models.DecryptedRecord, error) {
	access := models.VaultAccess{OwnerID: ownerID, RecordID: id, MasterPassword: masterPassword}
	if err := v.validate(ctx, access, nil, validators.FieldOwnerID, validators.FieldRecordID, validators.FieldMasterPassword); err != nil {
		return models.DecryptedRecord{}, err
	}

	return v.inner.GetPassword(ctx, ownerID, id, masterPassword)
}

func (v *VaultValidationService) UpdatePassword(ctx context.Context, ownerID, id string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	access := models.VaultAccess{OwnerID: ownerID, RecordID: id, MasterPassword: masterPassword}
	if err := v.validate(ctx, access, fields, validators.FieldOwnerID, validators.FieldRecordID, validators.FieldMasterPassword); err != nil {
		return models.RecordView{}, err
	}

	return v.inner.UpdatePassword(ctx, ownerID, id, fields, masterPassword)
}

func (v *VaultValidationService) DeletePassword(ctx context.Context, ownerID, id string) error {
	access := models.VaultAccess{OwnerID: ownerID, RecordID: id}
	if err := v.validate(ctx, access, nil, validators.FieldOwnerID, validators.FieldRecordID); err != nil {
		return err
	}

	return v.inner.DeletePassword(ctx, ownerID, id)
}

func (v *VaultValidationService) Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error) {
	access := models.VaultAccess{OwnerID: ownerID, Query: query}
	if err := v.validate(ctx, access, nil, validators.FieldOwnerID, validators.FieldQuery); err != nil {
		return nil, err
	}

	return v.inner.Search(ctx, ownerID, query)
}

func (v *VaultValidationService) ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error) {
	if err := v.validate(ctx, models.VaultAccess{OwnerID: ownerID}, nil, validators.FieldOwnerID); err != nil {
		return nil, err
	}

	return v.inner.ListAll(ctx, ownerID)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}

// validate checks the given access fields and, when present, the record content.
func (v *VaultValidationService) validate(ctx context.Context, access models.VaultAccess, fields any, accessFields ...string) error {
	if err := v.validator.Validate(ctx, access, accessFields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if fields == nil {
		return nil
	}
	if err := v.validator.Validate(ctx, fields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

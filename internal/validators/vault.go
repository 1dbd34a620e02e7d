package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-locker/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldOwnerID targets the caller identity of a vault operation.
	FieldOwnerID = "owner_id"

	// FieldRecordID targets the id of an existing record.
	FieldRecordID = "record_id"

	// FieldMasterPassword targets the master password supplied per sensitive call.
	FieldMasterPassword = "master_password"

	// FieldQuery targets the search query. An empty query is allowed.
	FieldQuery = "query"

	FieldWebsite  = "website"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldNotes    = "notes"
)

// Length limits in characters.
const (
	MaxWebsiteLength        = 255
	MaxUsernameLength       = 255
	MaxPasswordLength       = 1024
	MaxNotesLength          = 10000
	MaxQueryLength          = 255
	MaxMasterPasswordLength = 1024
	MaxRecordIDLength       = 255
)

// VaultValidator implements [Validator] for vault call arguments:
// models.VaultAccess and models.PasswordFields, by value or pointer.
type VaultValidator struct {
}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches on the dynamic type of obj. When no fields are given
// every field of the type is checked.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultAccess:
		return v.validateAccess(ctx, value, fields...)
	case *models.VaultAccess:
		return v.validateAccess(ctx, *value, fields...)

	case models.PasswordFields:
		return v.validatePasswordFields(ctx, value, fields...)
	case *models.PasswordFields:
		return v.validatePasswordFields(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateAccess(ctx context.Context, access models.VaultAccess, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldRecordID, FieldMasterPassword, FieldQuery}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if access.OwnerID == "" {
				return ErrEmptyOwnerID
			}
		case FieldRecordID:
			if access.RecordID == "" {
				return ErrEmptyRecordID
			}
			if err := checkLength(f, access.RecordID, MaxRecordIDLength); err != nil {
				return err
			}
		case FieldMasterPassword:
			if access.MasterPassword == "" {
				return ErrEmptyMasterPassword
			}
			if err := checkLength(f, access.MasterPassword, MaxMasterPasswordLength); err != nil {
				return err
			}
		case FieldQuery:
			if err := checkLength(f, access.Query, MaxQueryLength); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validatePasswordFields(ctx context.Context, pf models.PasswordFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWebsite, FieldUsername, FieldPassword, FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldWebsite:
			if pf.Website == "" {
				return ErrEmptyWebsite
			}
			if err := checkLength(f, pf.Website, MaxWebsiteLength); err != nil {
				return err
			}
		case FieldUsername:
			if pf.Username == "" {
				return ErrEmptyUsername
			}
			if err := checkLength(f, pf.Username, MaxUsernameLength); err != nil {
				return err
			}
		case FieldPassword:
			if pf.Password == "" {
				return ErrEmptyPassword
			}
			if err := checkLength(f, pf.Password, MaxPasswordLength); err != nil {
				return err
			}
		case FieldNotes:
			if err := checkLength(f, pf.Notes, MaxNotesLength); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s is longer than %d characters", ErrFieldTooLong, field, limit)
	}
	return nil
}

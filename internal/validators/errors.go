package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyOwnerID        = errors.New("owner ID is required")
	ErrEmptyRecordID       = errors.New("record ID is required")
	ErrEmptyWebsite        = errors.New("website is required")
	ErrEmptyUsername       = errors.New("username is required")
	ErrEmptyPassword       = errors.New("password is required")
	ErrEmptyMasterPassword = errors.New("master password is required")
	ErrFieldTooLong        = errors.New("field exceeds maximum length")
)

package models

import "time"

// Record is a single stored credential entry.
//
// Website and Username are stored in plaintext so they stay searchable
// without the master password. The account password and notes live only
// inside Envelope.
type Record struct {
	ID        string
	OwnerID   string
	Website   string
	Username  string
	Envelope  Envelope
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View returns the non-sensitive projection of the record.
func (r Record) View() RecordView {
	return RecordView{
		ID:        r.ID,
		Website:   r.Website,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RecordView is the only record shape returned by add, update, search and list.
type RecordView struct {
	ID        string    `json:"id"`
	Website   string    `json:"website"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DecryptedRecord is returned by a successful get only.
type DecryptedRecord struct {
	ID        string    `json:"id"`
	Website   string    `json:"website"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PasswordFields is the caller-supplied content of a record.
type PasswordFields struct {
	Website  string
	Username string
	Password string
	Notes    string
}

// SecretPayload is the plaintext sealed inside an envelope.
type SecretPayload struct {
	Password string `cbor:"1,keyasint"`
	Notes    string `cbor:"2,keyasint,omitempty"`
}

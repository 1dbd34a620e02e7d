package models

// SavePasswordRequest is the body of POST /api/passwords and PUT /api/passwords/{id}.
type SavePasswordRequest struct {
	Website        string `json:"website"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Notes          string `json:"notes"`
	MasterPassword string `json:"masterPassword"`
}

// Fields returns the record content part of the request.
func (r SavePasswordRequest) Fields() PasswordFields {
	return PasswordFields{
		Website:  r.Website,
		Username: r.Username,
		Password: r.Password,
		Notes:    r.Notes,
	}
}

// MasterPasswordRequest is the body of POST /api/passwords/{id}.
type MasterPasswordRequest struct {
	MasterPassword string `json:"masterPassword"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VaultAccess carries the per-call arguments of a vault operation that are
// not record content. Validators scope their checks to the fields a given
// operation actually uses.
type VaultAccess struct {
	OwnerID        string
	RecordID       string
	MasterPassword string
	Query          string
}

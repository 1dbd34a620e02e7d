package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-locker/internal/app"
	"github.com/MKhiriev/go-pass-locker/internal/service"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
	"github.com/MKhiriev/go-pass-locker/models"
)

// ctxWithOwner returns a context carrying the given owner id.
func ctxWithOwner(ownerID string) context.Context {
	return context.WithValue(context.Background(), utils.OwnerIDCtxKey, ownerID)
}

// withURLParam attaches a chi route param to r so handlers can be called
// directly without the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListPasswords(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		views      []models.RecordView
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "empty vault renders an empty array",
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name: "views are rendered without secrets",
			views: []models.RecordView{
				{ID: "r1", Website: "GitHub", Username: "alice", CreatedAt: created, UpdatedAt: created},
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":"r1","website":"GitHub","username":"alice","createdAt":"2026-01-02T03:04:05Z","updatedAt":"2026-01-02T03:04:05Z"}]`,
		},
		{
			name:       "unavailable store",
			err:        service.ErrUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"` + app.MsgServiceUnavailable + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner string
			h := newTestHandlerWithVault(&mockVaultSvc{
				listFn: func(_ context.Context, ownerID string) ([]models.RecordView, error) {
					gotOwner = ownerID
					return tt.views, tt.err
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/api/passwords", nil).WithContext(ctxWithOwner(testOwner))
			rr := httptest.NewRecorder()
			h.listPasswords(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, testOwner, gotOwner)
		})
	}
}

func TestListPasswords_NoOwnerInContext(t *testing.T) {
	h := newTestHandlerWithVault(&mockVaultSvc{})

	req := httptest.NewRequest(http.MethodGet, "/api/passwords", nil)
	rr := httptest.NewRecorder()
	h.listPasswords(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSearchPasswords_PassesQuery(t *testing.T) {
	var gotQuery string
	h := newTestHandlerWithVault(&mockVaultSvc{
		searchFn: func(_ context.Context, _ string, query string) ([]models.RecordView, error) {
			gotQuery = query
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/passwords/search?query=git+hub", nil).WithContext(ctxWithOwner(testOwner))
	rr := httptest.NewRecorder()
	h.searchPasswords(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Equal(t, "git hub", gotQuery)
}

func TestAddPassword(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var gotFields models.PasswordFields
		var gotMaster string
		h := newTestHandlerWithVault(&mockVaultSvc{
			addFn: func(_ context.Context, _ string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
				gotFields, gotMaster = fields, masterPassword
				return models.RecordView{ID: "r1", Website: fields.Website, Username: fields.Username}, nil
			},
		})

		body := encodeBody(t, models.SavePasswordRequest{
			Website: "GitHub", Username: "alice", Password: "p", Notes: "n", MasterPassword: "m",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/passwords", body).WithContext(ctxWithOwner(testOwner))
		rr := httptest.NewRecorder()
		h.addPassword(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, models.PasswordFields{Website: "GitHub", Username: "alice", Password: "p", Notes: "n"}, gotFields)
		assert.Equal(t, "m", gotMaster)

		var view models.RecordView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Equal(t, "r1", view.ID)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		called := false
		h := newTestHandlerWithVault(&mockVaultSvc{
			addFn: func(context.Context, string, models.PasswordFields, string) (models.RecordView, error) {
				called = true
				return models.RecordView{}, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/passwords", strings.NewReader("{not json")).WithContext(ctxWithOwner(testOwner))
		rr := httptest.NewRecorder()
		h.addPassword(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, app.MsgInvalidInput, decodeErrorBody(t, rr))
		assert.False(t, called)
	})

	t.Run("oversized body", func(t *testing.T) {
		h := newTestHandlerWithVault(&mockVaultSvc{})

		huge := `{"website":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/passwords", strings.NewReader(huge)).WithContext(ctxWithOwner(testOwner))
		rr := httptest.NewRecorder()
		h.addPassword(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid input from the vault", func(t *testing.T) {
		h := newTestHandlerWithVault(&mockVaultSvc{
			addFn: func(context.Context, string, models.PasswordFields, string) (models.RecordView, error) {
				return models.RecordView{}, errors.Join(service.ErrInvalidInput, errors.New("website is empty"))
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/passwords", encodeBody(t, models.SavePasswordRequest{})).WithContext(ctxWithOwner(testOwner))
		rr := httptest.NewRecorder()
		h.addPassword(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NotContains(t, rr.Body.String(), "website is empty")
	})
}

func TestGetPassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound, wantMsg: app.MsgPasswordNotFound},
		{name: "wrong master password", err: service.ErrAuthenticationFailed, wantStatus: http.StatusUnauthorized, wantMsg: app.MsgAuthenticationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID, gotMaster string
			h := newTestHandlerWithVault(&mockVaultSvc{
				getFn: func(_ context.Context, _ string, id, masterPassword string) (models.DecryptedRecord, error) {
					gotID, gotMaster = id, masterPassword
					if tt.err != nil {
						return models.DecryptedRecord{}, tt.err
					}
					return models.DecryptedRecord{ID: id, Password: "secret"}, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/passwords/r1", encodeBody(t, models.MasterPasswordRequest{MasterPassword: "m"}))
			req = withURLParam(req.WithContext(ctxWithOwner(testOwner)), "id", "r1")
			rr := httptest.NewRecorder()
			h.getPassword(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "r1", gotID)
			assert.Equal(t, "m", gotMaster)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeErrorBody(t, rr))
				return
			}
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
			assert.Contains(t, rr.Body.String(), `"password":"secret"`)
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	var gotID string
	var gotFields models.PasswordFields
	h := newTestHandlerWithVault(&mockVaultSvc{
		updateFn: func(_ context.Context, _ string, id string, fields models.PasswordFields, _ string) (models.RecordView, error) {
			gotID, gotFields = id, fields
			return models.RecordView{ID: id, Website: fields.Website}, nil
		},
	})

	body := encodeBody(t, models.SavePasswordRequest{Website: "GitLab", Username: "alice", Password: "p", MasterPassword: "m"})
	req := httptest.NewRequest(http.MethodPut, "/api/passwords/r1", body)
	req = withURLParam(req.WithContext(ctxWithOwner(testOwner)), "id", "r1")
	rr := httptest.NewRecorder()
	h.updatePassword(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "r1", gotID)
	assert.Equal(t, "GitLab", gotFields.Website)
}

func TestDeletePassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: service.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlerWithVault(&mockVaultSvc{
				deleteFn: func(context.Context, string, string) error { return tt.err },
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/passwords/r1", nil)
			req = withURLParam(req.WithContext(ctxWithOwner(testOwner)), "id", "r1")
			rr := httptest.NewRecorder()
			h.deletePassword(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.err == nil {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

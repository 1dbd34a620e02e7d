package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-locker/internal/utils"
	"github.com/MKhiriev/go-pass-locker/models"
)

// maxBodyBytes caps vault request bodies; the largest valid one is a
// record with notes at their length limit.
const maxBodyBytes = 64 << 10

func (h *Handler) listPasswords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.listPasswords", ErrNoOwnerInContext)
		return
	}

	views, err := h.services.VaultService.ListAll(r.Context(), ownerID)
	if err != nil {
		writeError(w, r, "*Handler.listPasswords", err)
		return
	}

	writeViews(w, views)
}

func (h *Handler) searchPasswords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.searchPasswords", ErrNoOwnerInContext)
		return
	}

	views, err := h.services.VaultService.Search(r.Context(), ownerID, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, r, "*Handler.searchPasswords", err)
		return
	}

	writeViews(w, views)
}

func (h *Handler) addPassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.addPassword", ErrNoOwnerInContext)
		return
	}

	var body models.SavePasswordRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, "*Handler.addPassword", err)
		return
	}

	view, err := h.services.VaultService.AddPassword(r.Context(), ownerID, body.Fields(), body.MasterPassword)
	if err != nil {
		writeError(w, r, "*Handler.addPassword", err)
		return
	}

	_, _ = utils.WriteJSON(w, view, http.StatusCreated)
}

func (h *Handler) getPassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.getPassword", ErrNoOwnerInContext)
		return
	}

	var body models.MasterPasswordRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, "*Handler.getPassword", err)
		return
	}

	record, err := h.services.VaultService.GetPassword(r.Context(), ownerID, chi.URLParam(r, "id"), body.MasterPassword)
	if err != nil {
		writeError(w, r, "*Handler.getPassword", err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	_, _ = utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.updatePassword", ErrNoOwnerInContext)
		return
	}

	var body models.SavePasswordRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, "*Handler.updatePassword", err)
		return
	}

	view, err := h.services.VaultService.UpdatePassword(r.Context(), ownerID, chi.URLParam(r, "id"), body.Fields(), body.MasterPassword)
	if err != nil {
		writeError(w, r, "*Handler.updatePassword", err)
		return
	}

	_, _ = utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) deletePassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.deletePassword", ErrNoOwnerInContext)
		return
	}

	if err := h.services.VaultService.DeletePassword(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "*Handler.deletePassword", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return nil
}

// writeViews always renders a JSON array, never null.
func writeViews(w http.ResponseWriter, views []models.RecordView) {
	if views == nil {
		views = []models.RecordView{}
	}
	_, _ = utils.WriteJSON(w, views, http.StatusOK)
}

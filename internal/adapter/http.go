package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
	"github.com/MKhiriev/go-pass-locker/models"
)

// retryWait is the first pause before a 503 is retried; resty doubles it
// up to retryMaxWait.
const (
	retryWait    = 200 * time.Millisecond
	retryMaxWait = 2 * time.Second
)

type httpVaultAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPVaultAdapter constructs the HTTP implementation of [VaultAdapter].
// It normalises cfg.Address into a base URL, applies the request timeout and
// retries answers that carry 503 up to cfg.RetryAttempts times.
//
// Returns [ErrInvalidServerAddress] (wrapped) if cfg.Address is empty or
// cannot be parsed as a URL.
func NewHTTPVaultAdapter(cfg config.ClientConfig, logger *logger.Logger) (VaultAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServerAddress, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.RetryAttempts).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(retryServiceUnavailable)

	a := &httpVaultAdapter{client: client, logger: logger}
	a.SetToken(cfg.Token)
	return a, nil
}

// retryServiceUnavailable retries 503 answers except for record creation:
// the server may have stored the record before giving up, and a second POST
// would store it twice.
func retryServiceUnavailable(resp *resty.Response, err error) bool {
	if err != nil || resp == nil || resp.StatusCode() != http.StatusServiceUnavailable {
		return false
	}
	return !isCreateRequest(resp.Request)
}

func isCreateRequest(req *resty.Request) bool {
	if req == nil || req.Method != http.MethodPost {
		return false
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return false
	}
	return strings.TrimRight(u.Path, "/") == "/api/passwords"
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpVaultAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpVaultAdapter) Token() string {
	return h.token
}

func (h *httpVaultAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpVaultAdapter) ListAll(ctx context.Context) ([]models.RecordView, error) {
	var views []models.RecordView

	resp, err := h.authedRequest(ctx).
		SetResult(&views).
		Get("/api/passwords")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return views, nil
}

func (h *httpVaultAdapter) Search(ctx context.Context, query string) ([]models.RecordView, error) {
	var views []models.RecordView

	resp, err := h.authedRequest(ctx).
		SetQueryParam("query", query).
		SetResult(&views).
		Get("/api/passwords/search")
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return views, nil
}

func (h *httpVaultAdapter) Add(ctx context.Context, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	var view models.RecordView

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(saveRequest(fields, masterPassword)).
		SetResult(&view).
		Post("/api/passwords")
	if err != nil {
		return models.RecordView{}, fmt.Errorf("add request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RecordView{}, err
	}

	return view, nil
}

func (h *httpVaultAdapter) Get(ctx context.Context, id, masterPassword string) (models.DecryptedRecord, error) {
	var record models.DecryptedRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(models.MasterPasswordRequest{MasterPassword: masterPassword}).
		SetResult(&record).
		Post("/api/passwords/{id}")
	if err != nil {
		return models.DecryptedRecord{}, fmt.Errorf("get request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DecryptedRecord{}, err
	}

	return record, nil
}

func (h *httpVaultAdapter) Update(ctx context.Context, id string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	var view models.RecordView

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(saveRequest(fields, masterPassword)).
		SetResult(&view).
		Put("/api/passwords/{id}")
	if err != nil {
		return models.RecordView{}, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RecordView{}, err
	}

	return view, nil
}

func (h *httpVaultAdapter) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete("/api/passwords/{id}")
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpVaultAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func saveRequest(fields models.PasswordFields, masterPassword string) models.SavePasswordRequest {
	return models.SavePasswordRequest{
		Website:        fields.Website,
		Username:       fields.Username,
		Password:       fields.Password,
		Notes:          fields.Notes,
		MasterPassword: masterPassword,
	}
}

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	signer *utils.Signer

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. When appCfg.HashKey is set, resolve requests carry a HashSHA256
// header with the HMAC of the body.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	a := &httpServerAdapter{client: client, signer: utils.NewSigner(appCfg.HashKey), logger: logger}
	a.SetToken(adapterCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Resolve POSTs req to /api/resolve.
func (h *httpServerAdapter) Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.ResolveResult{}, fmt.Errorf("resolve marshal request: %w", err)
	}

	r := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.Token()).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.signer != nil {
		r.SetHeader("HashSHA256", h.signer.Sign(body))
	}

	var result models.ResolveResult
	resp, err := r.SetResult(&result).Post("/api/resolve")
	if err != nil {
		return models.ResolveResult{}, fmt.Errorf("resolve request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ResolveResult{}, err
	}

	h.logger.Debug().Str("variant", result.Variant).Str("plan_id", result.PlanID).Msg("remote resolve done")
	return result, nil
}

// GetPlan fetches GET /api/plans/{id}.
func (h *httpServerAdapter) GetPlan(ctx context.Context, id string) (models.BuildPlan, error) {
	var plan models.BuildPlan

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.Token()).
		SetPathParam("id", id).
		SetResult(&plan).
		Get("/api/plans/{id}")
	if err != nil {
		return models.BuildPlan{}, fmt.Errorf("get plan request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BuildPlan{}, err
	}

	return plan, nil
}

// ListPlans fetches GET /api/plans with the filter as query parameters.
func (h *httpServerAdapter) ListPlans(ctx context.Context, filter models.PlanFilter) ([]models.BuildPlan, error) {
	var plans []models.BuildPlan

	r := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.Token()).
		SetResult(&plans)
	if filter.Variant != "" {
		r.SetQueryParam("variant", filter.Variant)
	}
	if filter.Limit > 0 {
		r.SetQueryParam("limit", strconv.FormatUint(filter.Limit, 10))
	}

	resp, err := r.Get("/api/plans")
	if err != nil {
		return nil, fmt.Errorf("list plans request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return plans, nil
}

// Version fetches GET /api/version/.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) Close() error {
	return nil
}

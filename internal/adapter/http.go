package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"licensegate/internal/logger"
	"licensegate/models"

	"github.com/go-resty/resty/v2"
)

const adminKeyHeader = "X-Admin-Key"

type httpAdminClient struct {
	client *resty.Client

	logger *logger.Logger
}

// NewHTTPAdminClient constructs an HTTP/REST implementation of [AdminClient].
// It normalises and validates the base URL, configures the underlying client
// with the request timeout, and attaches the admin secret to every request.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAdminClient(address string, adminKey string, timeout time.Duration, logger *logger.Logger) (AdminClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader(adminKeyHeader, adminKey)

	return &httpAdminClient{client: client, logger: logger}, nil
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

// AddUser implements [AdminClient]. It POSTs the license payload to
// POST /admin/add_user.
func (h *httpAdminClient) AddUser(ctx context.Context, request models.AddLicenseRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/admin/add_user")
	if err != nil {
		return fmt.Errorf("add user request: %w", err)
	}

	return mapHTTPError(resp)
}

// SetStrategy implements [AdminClient]. It POSTs the strategy payload to
// POST /admin/set_strategy.
func (h *httpAdminClient) SetStrategy(ctx context.Context, request models.SetStrategyRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/admin/set_strategy")
	if err != nil {
		return fmt.Errorf("set strategy request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListUsers implements [AdminClient]. It GETs /admin/list_users and decodes
// the license list from the response body.
func (h *httpAdminClient) ListUsers(ctx context.Context) ([]models.License, error) {
	var response models.ListLicensesResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/admin/list_users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return response.Users, nil
}

// UserStats implements [AdminClient]. It GETs /admin/user_stats/{licenseKey}
// and decodes the aggregation from the response body.
func (h *httpAdminClient) UserStats(ctx context.Context, licenseKey string) ([]models.ActionStats, error) {
	var response models.LicenseStatsResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&response).
		SetPathParam("licenseKey", licenseKey).
		Get("/admin/user_stats/{licenseKey}")
	if err != nil {
		return nil, fmt.Errorf("user stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return response.Stats, nil
}

// DeleteUser implements [AdminClient]. It DELETEs
// /admin/delete_user/{licenseKey}.
func (h *httpAdminClient) DeleteUser(ctx context.Context, licenseKey string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("licenseKey", licenseKey).
		Delete("/admin/delete_user/{licenseKey}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

// Status implements [AdminClient]. It GETs the unauthenticated /status
// endpoint.
func (h *httpAdminClient) Status(ctx context.Context) (models.HealthResponse, error) {
	var response models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/status")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return response, nil
}

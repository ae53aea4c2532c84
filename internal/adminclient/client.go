package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"studentsites/internal/dto"
	apperrors "studentsites/internal/errors"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the service, decoded from its error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []apperrors.ValidationDetail
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to the StudentSites HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (string, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ListOrders(ctx context.Context, filter dto.OrderFilterQuery) ([]dto.OrderResponse, error) {
	values, err := query.Values(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding order filter: %w", err)
	}

	var orders []dto.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders/all", values, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string, expectedVersion *int64) (*dto.OrderResponse, error) {
	var order dto.OrderResponse
	body := dto.UpdateStatusRequest{Status: status, Version: expectedVersion}
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	var projects []dto.ProjectResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) ListOffers(ctx context.Context) ([]dto.OfferResponse, error) {
	var offers []dto.OfferResponse
	if err := c.do(ctx, http.MethodGet, "/api/offers", nil, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *Client) ListActiveOffers(ctx context.Context) ([]dto.OfferResponse, error) {
	var offers []dto.OfferResponse
	if err := c.do(ctx, http.MethodGet, "/api/offers/active", nil, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *Client) CreateOffer(ctx context.Context, req dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	var offer dto.OfferResponse
	if err := c.do(ctx, http.MethodPost, "/api/offers", nil, req, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (c *Client) SetOfferActive(ctx context.Context, id string, active bool) (*dto.OfferResponse, error) {
	var offer dto.OfferResponse
	body := dto.SetOfferActiveRequest{IsActive: &active}
	if err := c.do(ctx, http.MethodPatch, "/api/offers/"+url.PathEscape(id), nil, body, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (c *Client) DeleteOffer(ctx context.Context, id string) (string, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/offers/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ListPackages(ctx context.Context) ([]dto.PackageResponse, error) {
	var packages []dto.PackageResponse
	if err := c.do(ctx, http.MethodGet, "/api/packages", nil, nil, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

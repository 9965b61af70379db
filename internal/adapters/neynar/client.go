package neynar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

const DefaultBaseURL = "https://api.neynar.com/v2/farcaster"

type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client is a read-only Neynar v2 REST client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: neynar api key is empty", domain.ErrNotConfigured)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid neynar base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

func (c *Client) UserByFID(ctx context.Context, fid int64) (domain.Profile, error) {
	q := url.Values{}
	q.Set("fids", strconv.FormatInt(fid, 10))

	var resp bulkUsersResponse
	if err := c.get(ctx, "/user/bulk", q, &resp); err != nil {
		return domain.Profile{}, err
	}
	if len(resp.Users) == 0 || resp.Users[0] == nil {
		return domain.Profile{}, fmt.Errorf("%w: fid %d", domain.ErrNotFound, fid)
	}
	return resp.Users[0].toDomain(), nil
}

func (c *Client) UserByUsername(ctx context.Context, username string) (domain.Profile, error) {
	q := url.Values{}
	q.Set("username", username)

	var resp userByUsernameResponse
	if err := c.get(ctx, "/user/by_username", q, &resp); err != nil {
		return domain.Profile{}, err
	}
	if resp.User == nil {
		return domain.Profile{}, fmt.Errorf("%w: username %q", domain.ErrNotFound, username)
	}
	return resp.User.toDomain(), nil
}

func (c *Client) RecentCasts(ctx context.Context, fid int64, limit int) ([]domain.Cast, error) {
	q := url.Values{}
	q.Set("fid", strconv.FormatInt(fid, 10))
	q.Set("limit", strconv.Itoa(limit))

	var resp userCastsResponse
	if err := c.get(ctx, "/feed/user/casts", q, &resp); err != nil {
		return nil, err
	}
	casts := make([]domain.Cast, 0, len(resp.Casts))
	for _, raw := range resp.Casts {
		casts = append(casts, raw.toDomain())
	}
	return casts, nil
}

// get performs a single GET and decodes a 2xx JSON body into out. A 404 maps
// to domain.ErrNotFound; every other failure maps to domain.ErrUpstream.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: neynar %s: %v", domain.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: neynar %s", domain.ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: neynar %s status=%d body=%s", domain.ErrUpstream, path, resp.StatusCode, upstreamMessage(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode neynar %s: %v", domain.ErrUpstream, path, err)
	}
	return nil
}

func upstreamMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

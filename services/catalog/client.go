package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	maxBodyBytes   = 4 << 20
)

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	APIKey        string
	BaseURL       string
	ImageBaseURL  string
	Language      string
	HTTPClient    *http.Client
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Client is a minimal TMDB v3 client covering the listing, search and detail
// endpoints the front end renders.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	httpc    *http.Client

	attempts   uint
	retryDelay time.Duration

	// identical in-flight GETs share one upstream call
	group singleflight.Group

	Images Images
}

func NewClient(opts Options) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	attempts := opts.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		language:   normalizeLanguage(opts.Language),
		httpc:      httpc,
		attempts:   uint(attempts),
		retryDelay: delay,
		Images:     NewImages(opts.ImageBaseURL),
	}
}

// getJSON fetches path, validates the body against schema and decodes it into v.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, schema *jsonschema.Schema, v any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := validatePayload(schema, body); err != nil {
		log.Printf("[catalog] rejected payload path=%s err=%v", path, err)
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrInvalidPayload, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.buildURL(path, query)

	// The shared call must not die with whichever caller started it.
	ch := c.group.DoChan(endpoint, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), path, endpoint)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) fetch(ctx context.Context, path, endpoint string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			data, err := c.do(ctx, path, endpoint)
			if err != nil {
				var upstream *UpstreamError
				if errors.As(err, &upstream) && !upstream.temporary() {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[catalog] retrying path=%s attempt=%d err=%v", path, n+2, err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, path, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.usesBearerToken() {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &UpstreamError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Err: err}
	}
	log.Printf("[catalog] GET %s status=%d duration=%s", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode >= 300:
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode}
	}
	return data, nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("language", c.language)
	if c.apiKey != "" && !c.usesBearerToken() {
		q.Set("api_key", c.apiKey)
	}
	return c.baseURL + path + "?" + q.Encode()
}

// usesBearerToken reports whether the key is a v4 read access token (a JWT)
// rather than a v3 api key.
func (c *Client) usesBearerToken() bool {
	return strings.Count(c.apiKey, ".") == 2
}

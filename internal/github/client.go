package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Client is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints the pipeline requires.
// One Client is built per pipeline run; there is no package-level state.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
}

// NewClient returns a ready-to-use GitHub API client.
// token may be an empty string, but you will be subject to very low rate-limits.
func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, defaultBaseURL)
}

// NewClientWithBaseURL is NewClient with the API origin overridden.
// Tests point this at an httptest server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		token:   token,
		baseURL: baseURL,
	}
}

// CurrentUserLogin resolves the login of the token's owner. Authored-commit
// filtering throughout the pipeline keys off this value.
func (c *Client) CurrentUserLogin(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := c.get(ctx, c.baseURL+"/user", &user); err != nil {
		return "", err
	}
	if user.Login == "" {
		return "", &AuthError{Status: http.StatusUnauthorized}
	}
	return user.Login, nil
}

// get executes an authenticated GET and decodes JSON into v.
func (c *Client) get(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	return c.do(req, v)
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "popolo-agent")
}

// do executes the HTTP request, maps error statuses onto the typed error
// set, and decodes JSON into v.
//
// Status mapping: 401 and 403 with quota left → AuthError; 403 with
// X-RateLimit-Remaining: 0 → RateLimitedError carrying the reset time;
// 404 → NotFoundError; everything else non-2xx → UpstreamError. Transport
// failures (timeouts included) also surface as UpstreamError.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return &RateLimitedError{Reset: parseRateLimitReset(resp)}
		}
		return &AuthError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: req.URL.Path}
	case resp.StatusCode >= 300:
		return &UpstreamError{Status: resp.StatusCode}
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("github: decoding %s: %w", req.URL.Path, err)
	}
	return nil
}

// parseRateLimitReset reads the X-RateLimit-Reset unix timestamp. A missing
// or malformed header yields the zero time; callers still get a usable error.
func parseRateLimitReset(resp *http.Response) time.Time {
	raw := resp.Header.Get("X-RateLimit-Reset")
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

/*
Package client talks to the OTT records API.

Client is a thin wrapper over the five record endpoints. Browser sits on top of it and
owns the state a front-end renders: the current page, the search box, the rows on
screen and the total count.
*/
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/souvikmndl/ott-records/internal/data"
)

// Service is the set of record operations a Browser needs
type Service interface {
	List(ctx context.Context, page, limit int) (*Page, error)
	Search(ctx context.Context, q string, page, limit int) (*Page, error)
	Create(ctx context.Context, movie data.Movie) (*data.Movie, error)
	Update(ctx context.Context, id int64, movie data.Movie) (*data.Movie, error)
	Delete(ctx context.Context, id int64) (*data.Movie, error)
}

var _ Service = (*Client)(nil)

// Page is the envelope returned by the list and search endpoints
type Page struct {
	Message string       `json:"message"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Data    []data.Movie `json:"data"`
}

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Details    any    `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	if s, ok := e.Details.(string); ok && s != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.StatusCode, s)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Client provides access to the records API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL (e.g. http://localhost:4000).
// Each request gives up after timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List fetches one page of all records
func (c *Client) List(ctx context.Context, page, limit int) (*Page, error) {
	var p Page
	err := c.do(ctx, http.MethodGet, "/getallmovies", pageQuery(page, limit), nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search fetches one page of records whose title contains q
func (c *Client) Search(ctx context.Context, q string, page, limit int) (*Page, error) {
	query := pageQuery(page, limit)
	query.Set("q", q)

	var p Page
	err := c.do(ctx, http.MethodGet, "/searchmovies", query, nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create saves a new record and returns it with its id
func (c *Client) Create(ctx context.Context, movie data.Movie) (*data.Movie, error) {
	var resp struct {
		Data data.Movie `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/savemovies", nil, movie, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Update replaces every field of record id
func (c *Client) Update(ctx context.Context, id int64, movie data.Movie) (*data.Movie, error) {
	var resp struct {
		Data data.Movie `json:"data"`
	}
	err := c.do(ctx, http.MethodPut, "/updatemovie/"+strconv.FormatInt(id, 10), nil, movie, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes record id and returns what it contained
func (c *Client) Delete(ctx context.Context, id int64) (*data.Movie, error) {
	var resp struct {
		Deleted data.Movie `json:"deleted"`
	}
	err := c.do(ctx, http.MethodDelete, "/deletemovie/"+strconv.FormatInt(id, 10), nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Deleted, nil
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	return query
}

// do sends the request and decodes a 2xx body into out, or an error body into *APIError
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
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

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// a body that is not our error envelope still leaves the status code to go on
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

// Package postgrest implements rowstore.Store against a PostgREST
// endpoint, the API surface the hosted backend exposes. Requests carry
// the service key; responses are JSON arrays of rows.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/rowstore"
)

// Client talks to one PostgREST endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the endpoint at baseURL, authenticating with
// apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Select fetches rows, with embeds expressed as nested resource selects
// so parent and children arrive in one response.
func (c *Client) Select(ctx context.Context, table string, opts rowstore.SelectOptions) ([]rowstore.Row, error) {
	sel := "*"
	for _, embed := range opts.Embeds {
		sel += "," + embed.Table + "(*)"
	}

	params := url.Values{}
	params.Set("select", sel)
	for col, val := range opts.Filter {
		params.Set(col, "eq."+fmt.Sprint(val))
	}
	if opts.OrderBy != "" {
		dir := ".asc"
		if opts.Descending {
			dir = ".desc"
		}
		params.Set("order", opts.OrderBy+dir)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	rows, err := c.do(ctx, http.MethodGet, table, params, nil, "")
	if err != nil {
		return nil, rowstore.NewOpError(table, "select", err)
	}

	// Embedded children decode as []any of generic maps; retype them to
	// the []Row the contract promises.
	for _, embed := range opts.Embeds {
		for _, row := range rows {
			raw, ok := row[embed.Table].([]any)
			if !ok {
				continue
			}
			children := make([]rowstore.Row, 0, len(raw))
			for _, child := range raw {
				if m, ok := child.(map[string]any); ok {
					children = append(children, rowstore.Row(m))
				}
			}
			row[embed.Table] = children
		}
	}
	return rows, nil
}

// Insert posts the values and returns the server's representation.
func (c *Client) Insert(ctx context.Context, table string, values rowstore.Row) (rowstore.Row, error) {
	rows, err := c.do(ctx, http.MethodPost, table, nil, values, "return=representation")
	if err != nil {
		return nil, rowstore.NewOpError(table, "insert", err)
	}
	if len(rows) != 1 {
		return nil, rowstore.NewOpError(table, "insert", fmt.Errorf("expected 1 row back, got %d", len(rows)))
	}
	return rows[0], nil
}

// Update patches the identified row. An empty response means the id
// matched nothing, which surfaces as rowstore.ErrNotFound.
func (c *Client) Update(ctx context.Context, table, id string, patch rowstore.Row) (rowstore.Row, error) {
	params := url.Values{}
	params.Set("id", "eq."+id)

	rows, err := c.do(ctx, http.MethodPatch, table, params, patch, "return=representation")
	if err != nil {
		return nil, rowstore.NewOpError(table, "update", err)
	}
	if len(rows) == 0 {
		return nil, rowstore.NewOpError(table, "update", rowstore.ErrNotFound)
	}
	return rows[0], nil
}

// Upsert merges the values into the table's single logical row.
func (c *Client) Upsert(ctx context.Context, table string, values rowstore.Row) (rowstore.Row, error) {
	rows, err := c.do(ctx, http.MethodPost, table, nil, values,
		"resolution=merge-duplicates,return=representation")
	if err != nil {
		return nil, rowstore.NewOpError(table, "upsert", err)
	}
	if len(rows) != 1 {
		return nil, rowstore.NewOpError(table, "upsert", fmt.Errorf("expected 1 row back, got %d", len(rows)))
	}
	return rows[0], nil
}

// Delete removes the identified row. Deleting an absent row succeeds.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)

	if _, err := c.do(ctx, http.MethodDelete, table, params, nil, ""); err != nil {
		return rowstore.NewOpError(table, "delete", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, body rowstore.Row, prefer string) ([]rowstore.Row, error) {
	endpoint := c.baseURL + "/" + table
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if len(data) == 0 {
		return nil, nil
	}

	var rows []rowstore.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return rows, nil
}

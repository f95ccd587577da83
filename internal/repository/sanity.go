package repository

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

	"homefinder/internal/config"
	"homefinder/internal/model"
)

// SanityClient queries a hosted content lake over its HTTP query API (GROQ)
type SanityClient struct {
	baseURL    string
	dataset    string
	apiVersion string
	token      string
	httpClient *http.Client
}

// NewSanityClient creates a new query client for the configured project
func NewSanityClient(cfg *config.SanityConfig, timeout time.Duration) *SanityClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		baseURL = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}

	return &SanityClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataset:    cfg.Dataset,
		apiVersion: strings.TrimPrefix(cfg.APIVersion, "v"),
		token:      cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// queryResponse is the envelope returned by the query endpoint
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

// errorResponse is returned with non-2xx statuses
type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

// Fetch runs query with params bound as $name variables
func (c *SanityClient) Fetch(ctx context.Context, query string, params map[string]string) ([]model.Document, error) {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, queryFailed("failed to encode param %s: %v", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.baseURL, c.apiVersion, url.PathEscape(c.dataset), values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, queryFailed("failed to create request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, queryFailed("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, queryFailed("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, queryFailed("store rejected query with status %d: %s", resp.StatusCode, apiErr.Error.Description)
		}
		return nil, queryFailed("store returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope queryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, queryFailed("failed to unmarshal response: %v", err)
	}

	return decodeResult(envelope.Result)
}

// decodeResult flattens an array, single object, or null result into documents
func decodeResult(raw json.RawMessage) ([]model.Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Document{}, nil
	}

	if trimmed[0] == '[' {
		var docs []model.Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, queryFailed("result is not a list of documents: %v", err)
		}
		// null entries come back from projections of dangling references
		out := docs[:0]
		for _, doc := range docs {
			if doc != nil {
				out = append(out, doc)
			}
		}
		return out, nil
	}

	var doc model.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, queryFailed("result is not a document: %v", err)
	}
	return []model.Document{doc}, nil
}

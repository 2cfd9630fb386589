package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kurihiro0119/unowned-components/internal/domain"
	apperrors "github.com/kurihiro0119/unowned-components/internal/errors"
)

const (
	componentsPath = "/rest/api/3/project/%s/components"
	searchPath     = "/rest/api/3/search"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// SearchRequest is a single page request against the issue search endpoint
type SearchRequest struct {
	JQL        string
	Fields     []string
	StartAt    int
	MaxResults int
}

// Client talks to the Jira Cloud REST API v3.
// Authentication is expected to be configured on the HTTPDoer.
type Client struct {
	doer    HTTPDoer
	baseURL string

	componentsResponseMaxSize int64
	searchResponseMaxSize     int64
	errorResponseMaxSize      int64
}

// NewClient creates a new Jira client for baseURL, e.g. https://acme.atlassian.net
func NewClient(doer HTTPDoer, baseURL string) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),

		componentsResponseMaxSize: 1024 * 1024 * 10,
		searchResponseMaxSize:     1024 * 1024 * 30,
		errorResponseMaxSize:      1024 * 64,
	}
}

// ProjectComponents returns all components of a project in a single request.
// A null or non-array body yields no components.
func (c *Client) ProjectComponents(ctx context.Context, projectKey string) ([]domain.Component, error) {
	if strings.TrimSpace(projectKey) == "" {
		return nil, apperrors.NewInvalidRequestError("project key cannot be empty")
	}

	u := c.baseURL + fmt.Sprintf(componentsPath, url.PathEscape(projectKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}

	body, err := c.makeRequest(req, c.componentsResponseMaxSize)
	if err != nil {
		return nil, err
	}

	resp, err := decodeComponents(body)
	if err != nil {
		return nil, apperrors.NewInternalError("unmarshalling components response", err)
	}

	return resp.ToComponents(), nil
}

// SearchIssues fetches one page of issues matching a JQL query
func (c *Client) SearchIssues(ctx context.Context, sr SearchRequest) (*domain.IssuePage, error) {
	if strings.TrimSpace(sr.JQL) == "" {
		return nil, apperrors.NewInvalidRequestError("jql cannot be empty")
	}
	if sr.StartAt < 0 {
		return nil, apperrors.NewInvalidRequestError("startAt cannot be negative")
	}
	if sr.MaxResults <= 0 {
		sr.MaxResults = domain.DefaultPageSize
	}

	payload, err := json.Marshal(searchRequestBody{
		JQL:        sr.JQL,
		Fields:     sr.Fields,
		StartAt:    sr.StartAt,
		MaxResults: sr.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.makeRequest(req, c.searchResponseMaxSize)
	if err != nil {
		return nil, err
	}

	resp, err := decodeSearch(body)
	if err != nil {
		return nil, apperrors.NewInternalError("unmarshalling search response", err)
	}

	return resp.ToPage(), nil
}

func (c *Client) makeRequest(req *http.Request, maxBytes int64) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		return nil, c.serviceError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	// One extra byte tells a body that fits exactly from one that was cut off.
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading http response body: %w", err)
	}
	if int64(len(b)) > maxBytes {
		return nil, fmt.Errorf("http response body exceeds %d bytes", maxBytes)
	}

	return b, nil
}

func (c *Client) serviceError(resp *http.Response) error {
	svcErr := &apperrors.ServiceError{
		StatusCode: resp.StatusCode,
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, c.errorResponseMaxSize))
	if err != nil || len(b) == 0 {
		return svcErr
	}
	var payload errorResponse
	if err := json.Unmarshal(b, &payload); err != nil {
		return svcErr
	}
	svcErr.ErrorMessages = payload.ErrorMessages
	svcErr.Errors = payload.Errors

	return svcErr
}

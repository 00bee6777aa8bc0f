package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopify-summary-sync/internal/domain"
)

// GraphQLClient talks to the Shopify Admin GraphQL API. It is multi-tenant:
// the shop domain and access token are passed per call, not held on the
// client.
type GraphQLClient struct {
	httpClient *http.Client
	apiVersion string
	// baseURL overrides the https://{shop} prefix when set. Tests point it
	// at a local server.
	baseURL string
}

// GraphQLRequest is the JSON body of an Admin API GraphQL call.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse is the envelope every GraphQL call returns.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is a single error entry in a GraphQL response.
type GraphQLError struct {
	Message string `json:"message"`
}

// ClientOption configures a GraphQLClient.
type ClientOption func(*GraphQLClient)

// WithBaseURL routes all requests to a fixed base URL instead of the shop
// domain.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *GraphQLClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *GraphQLClient) {
		c.httpClient = client
	}
}

// NewGraphQLClient creates a client for the given Admin API version.
func NewGraphQLClient(apiVersion string, opts ...ClientOption) *GraphQLClient {
	c := &GraphQLClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiVersion: apiVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs one GraphQL query against a shop and returns the raw data
// payload. GraphQL-level errors are returned as an error, never as partial
// data.
func (c *GraphQLClient) Execute(ctx context.Context, shop, accessToken, query string, variables map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.apiVersion)
	if c.baseURL != "" {
		endpoint = fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.apiVersion)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "graphql request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "read graphql response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			Op:  "graphql request",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody),
		}
	}

	var gqlResp GraphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, &domain.UpstreamError{Op: "decode graphql response", Err: err}
	}

	if len(gqlResp.Errors) > 0 {
		return nil, &domain.UpstreamError{
			Op:  "graphql query",
			Err: fmt.Errorf("%s", gqlResp.Errors[0].Message),
		}
	}

	return gqlResp.Data, nil
}

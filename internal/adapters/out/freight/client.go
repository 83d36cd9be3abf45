// Package freight contains the HTTP clients for the rate-shopping, booking
// and label providers. All three share one thin transport layer that attaches
// credentials and converts non-2xx responses into ProviderError values with
// a bounded diagnostic body.
package freight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quickship/internal/core/ports"
	"quickship/internal/pkg/errs"
)

// providerBodyLimit bounds response bodies carried inside error messages
// and audit entries.
const providerBodyLimit = 200

// Client is the shared HTTP plumbing for the freight provider adapters.
// Safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a provider client for the given base URL and API key.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("freight provider base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("freight provider api key is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	path string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes the request and returns the response body. Transport failures
// and non-2xx statuses both come back as a ProviderError tagged with op.
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, &ports.ProviderError{
			Op:   op,
			Body: errs.Truncate(err.Error(), providerBodyLimit),
		}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ports.ProviderError{
			Op:   op,
			Body: errs.Truncate(err.Error(), providerBodyLimit),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ports.ProviderError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       errs.Truncate(strings.TrimSpace(string(b)), providerBodyLimit),
		}
	}

	return b, nil
}

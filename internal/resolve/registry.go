package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
	"github.com/danieljhkim/turbo-migrate/internal/log"
)

// Registry looks up package metadata in an npm registry.
type Registry struct {
	baseURL string
	client  *retryablehttp.Client
}

// RegistryOption customises a Registry.
type RegistryOption func(*retryablehttp.Client)

// WithRetryMax bounds the number of retries per lookup.
func WithRetryMax(n int) RegistryOption {
	return func(c *retryablehttp.Client) {
		c.RetryMax = n
	}
}

// WithRetryWait sets the backoff bounds between retries.
func WithRetryWait(min, max time.Duration) RegistryOption {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = min
		c.RetryWaitMax = max
	}
}

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *log.Logger) RegistryOption {
	return func(c *retryablehttp.Client) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// NewRegistry creates a client for the registry at baseURL.
func NewRegistry(baseURL string, opts ...RegistryOption) *Registry {
	client := retryablehttp.NewClient()
	client.Logger = log.Discard()
	client.HTTPClient.Timeout = 30 * time.Second
	for _, o := range opts {
		o(client)
	}
	return &Registry{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type packument struct {
	DistTags map[string]string `json:"dist-tags"`
}

// Latest returns the version carrying the "latest" dist-tag of pkg.
func (r *Registry) Latest(ctx context.Context, pkg string) (string, error) {
	url := r.baseURL + "/" + pkg
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", lookupError(pkg, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", lookupError(pkg, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", lookupError(pkg, fmt.Errorf("GET %s: %s", url, resp.Status))
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", lookupError(pkg, fmt.Errorf("decode response: %w", err))
	}

	latest := doc.DistTags["latest"]
	if latest == "" {
		return "", lookupError(pkg, fmt.Errorf("no latest dist-tag"))
	}
	return latest, nil
}

func lookupError(pkg string, cause error) error {
	return errors.Wrap(errors.CodeVersionLookup,
		fmt.Sprintf("Unable to determine latest version of %s - registry lookup failed", pkg), cause).
		WithSuggestion("Pin the target version with --to")
}

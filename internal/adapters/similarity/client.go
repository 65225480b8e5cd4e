// Package similarity is the client for the external word-similarity
// service: embedding lookups, per-target similarity bounds, and
// nth-nearest-neighbor queries.
package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/sema/pkg/metrics"
)

const defaultTimeout = 5 * time.Second

// Result is the service's answer for one target/guess pair. Percentile
// is nil when the service has no precomputed rank for the guess, which
// means "too dissimilar to rank".
type Result struct {
	Vector     []float64
	Percentile *int
}

// Story carries the reference similarity bounds for a target word.
type Story struct {
	Top  float64
	Rest float64
}

// Client is the narrow interface the engine calls through. The engine
// never retries on its own; a failed lookup surfaces so the command can
// be reissued.
type Client interface {
	// FetchResult returns the guess vector and optional percentile rank
	// relative to target. Returns ErrInvalidGuess when the service does
	// not recognize the guess.
	FetchResult(ctx context.Context, target, guess string) (Result, error)

	// FetchStory returns the similarity bounds for word.
	FetchStory(ctx context.Context, word string) (Story, error)

	// FetchNthNearby returns the word at percentile rank n from word.
	FetchNthNearby(ctx context.Context, word string, n int) (string, error)
}

// HTTPClient implements Client against the similarity service's REST
// routes.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		client:  http.DefaultClient,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// resultPayload mirrors the service's /model2 response.
type resultPayload struct {
	Vec        []float64 `json:"vec"`
	Percentile *int      `json:"percentile,omitempty"`
}

// storyPayload mirrors the service's /similarity response.
type storyPayload struct {
	Top  float64 `json:"top"`
	Rest float64 `json:"rest"`
}

// FetchResult calls GET /model2/{target}/{guess}. A body that does not
// decode as a result means the service does not know the guess word.
func (c *HTTPClient) FetchResult(ctx context.Context, target, guess string) (Result, error) {
	body, err := c.get(ctx, fmt.Sprintf("/model2/%s/%s", url.PathEscape(target), url.PathEscape(guess)))
	if err != nil {
		return Result{}, err
	}

	var payload resultPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Vec == nil {
		metrics.RecordGuessInvalid()
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}

	return Result{Vector: payload.Vec, Percentile: payload.Percentile}, nil
}

// FetchStory calls GET /similarity/{word}.
func (c *HTTPClient) FetchStory(ctx context.Context, word string) (Story, error) {
	body, err := c.get(ctx, "/similarity/"+url.PathEscape(word))
	if err != nil {
		return Story{}, err
	}

	var payload storyPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Story{}, fmt.Errorf("%w: story for %q: %w", ErrLookup, word, err)
	}

	return Story{Top: payload.Top, Rest: payload.Rest}, nil
}

// FetchNthNearby calls GET /nth_nearby/{word}/{n}.
func (c *HTTPClient) FetchNthNearby(ctx context.Context, word string, n int) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/nth_nearby/%s/%d", url.PathEscape(word), n))
	if err != nil {
		return "", err
	}

	var nearby string
	if err := json.Unmarshal(body, &nearby); err != nil {
		return "", fmt.Errorf("%w: nth_nearby for %q: %w", ErrLookup, word, err)
	}

	return nearby, nil
}

// get performs one GET against the service and returns the raw body.
// All transport-level failures are reported as ErrLookup.
func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLookupLatency(float64(time.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		metrics.RecordLookupError()
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordLookupError()
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordLookupError()
		return nil, fmt.Errorf("%w: %s returned %d", ErrLookup, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordLookupError()
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}

	return body, nil
}

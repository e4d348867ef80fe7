package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Mreoch1/tradesync/pkg/utils"
)

const defaultBaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

// StatsBatchSize is the provider's hard cap on player keys per stats request.
const StatsBatchSize = 25

// Fetcher is the read surface consumers depend on. *Client implements it;
// tests substitute canned responses.
type Fetcher interface {
	GetJSON(ctx context.Context, resource, accessToken string) (map[string]interface{}, error)
}

// Client is a thin authenticated JSON client for the fantasy provider. The
// access token is supplied per request by the routing layer; this client never
// acquires or refreshes tokens.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	logger     *logrus.Logger
}

// ClientOptions configures a Client. Zero values fall back to defaults.
type ClientOptions struct {
	BaseURL          string
	Timeout          time.Duration
	RateLimit        int // requests per second
	MaxRetries       int
	BreakerThreshold int
}

// NewClient creates a provider client with rate limiting and a circuit breaker.
func NewClient(opts ClientOptions, logger *logrus.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.BreakerThreshold <= 0 {
		opts.BreakerThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "fantasy-provider",
		MaxRequests: uint32(opts.BreakerThreshold),
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxRetries: opts.MaxRetries,
		logger:     logger,
	}
}

// GetJSON fetches a provider resource and returns the decoded fantasy_content
// node. The resource path is relative to the API base, e.g. "game/453".
func (c *Client) GetJSON(ctx context.Context, resource, accessToken string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(resource, "/"))
	if strings.Contains(url, "?") {
		url += "&format=json"
	} else {
		url += "?format=json"
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, url, accessToken)
	})
	if err != nil {
		return nil, err
	}

	body := raw.([]byte)
	var envelope struct {
		FantasyContent map[string]interface{} `json:"fantasy_content"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		// The provider falls back to an XML error document on some failures.
		excerpt := bodyExcerpt(body)
		return nil, fmt.Errorf("%w: non-JSON body for %s: %s", utils.ErrTransport, resource, excerpt)
	}
	if envelope.FantasyContent == nil {
		return nil, fmt.Errorf("%w: missing fantasy_content for %s", utils.ErrTransport, resource)
	}
	return envelope.FantasyContent, nil
}

// doRequest performs one authenticated GET with exponential backoff on
// transient failures. Non-2xx responses are surfaced with a body excerpt and
// never retried past the cap.
func (c *Client) doRequest(ctx context.Context, url, accessToken string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			c.logger.Warnf("Provider request failed (attempt %d), waiting %v: %v", attempt, waitTime, lastErr)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		lastErr = fmt.Errorf("%w: status %d: %s", utils.ErrTransport, resp.StatusCode, bodyExcerpt(body))
		// Auth and client errors will not improve on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func bodyExcerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// GameKeyFromLeague extracts the game key prefix from a composite league,
// team, or player key ("453.l.12345" -> "453").
func GameKeyFromLeague(key string) string {
	if i := strings.Index(key, "."); i > 0 {
		return key[:i]
	}
	return key
}

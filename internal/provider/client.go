// Package provider fetches raw game data from the NBA games feed.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/pkg/config"
)

// Breaker is the slice of the circuit breaker service the client needs.
type Breaker interface {
	Execute(service string, fn func() (interface{}, error)) (interface{}, error)
}

// GamesClient pulls daily schedules and play-by-play from the games
// API. Requests are rate limited to one per second because the trial
// tier throttles aggressively.
type GamesClient struct {
	httpClient    *http.Client
	logger        *logrus.Logger
	breaker       Breaker
	apiKey        string
	baseURL       string
	accessLevel   string
	version       string
	language      string
	rateLimiter   *time.Ticker
	retryAttempts int
	mu            sync.Mutex
}

// scheduleResponse is the envelope around a day's games.
type scheduleResponse struct {
	Date  string        `json:"date"`
	Games []models.Game `json:"games"`
}

// NewGamesClient creates a client from service configuration.
func NewGamesClient(cfg *config.Config, breaker Breaker, logger *logrus.Logger) *GamesClient {
	return &GamesClient{
		httpClient: &http.Client{
			Timeout: cfg.ExternalAPITimeout,
		},
		logger:        logger,
		breaker:       breaker,
		apiKey:        cfg.GamesAPIKey,
		baseURL:       cfg.GamesAPIBaseURL,
		accessLevel:   cfg.GamesAPIAccessLevel,
		version:       cfg.GamesAPIVersion,
		language:      cfg.GamesAPILanguage,
		rateLimiter:   time.NewTicker(1 * time.Second),
		retryAttempts: 3,
	}
}

// DailySchedule returns every game scheduled on the given date.
func (c *GamesClient) DailySchedule(ctx context.Context, day time.Time) ([]models.Game, error) {
	path := fmt.Sprintf("/%s/%s/%s/games/%04d/%02d/%02d/schedule.json",
		c.accessLevel, c.version, c.language, day.Year(), day.Month(), day.Day())

	var resp scheduleResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetching schedule for %s: %w", day.Format("2006-01-02"), err)
	}

	c.logger.WithFields(logrus.Fields{
		"date":  day.Format("2006-01-02"),
		"games": len(resp.Games),
	}).Debug("Fetched daily schedule")

	return resp.Games, nil
}

// PlayByPlay returns the full event stream for one game, which is what
// the narrative extractor consumes.
func (c *GamesClient) PlayByPlay(ctx context.Context, gameID string) (*models.Game, error) {
	path := fmt.Sprintf("/%s/%s/%s/games/%s/pbp.json",
		c.accessLevel, c.version, c.language, gameID)

	var game models.Game
	if err := c.get(ctx, path, &game); err != nil {
		return nil, fmt.Errorf("fetching play-by-play for %s: %w", gameID, err)
	}
	return &game, nil
}

// get performs one API call through the circuit breaker with rate
// limiting and exponential backoff retries.
func (c *GamesClient) get(ctx context.Context, path string, target interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.rateLimiter.C:
	case <-ctx.Done():
		return ctx.Err()
	}

	fullURL := c.baseURL + path + "?" + url.Values{"api_key": {c.apiKey}}.Encode()

	_, err := c.breaker.Execute("games-api", func() (interface{}, error) {
		return nil, c.doWithRetries(ctx, fullURL, target)
	})
	return err
}

func (c *GamesClient) doWithRetries(ctx context.Context, fullURL string, target interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("reading response body: %w", readErr)
			}
			if err := json.Unmarshal(body, target); err != nil {
				c.logger.WithFields(logrus.Fields{
					"url":             redactKey(fullURL),
					"response_length": len(body),
					"error":           err.Error(),
				}).Error("Failed to decode games API response")
				return fmt.Errorf("decoding response: %w", err)
			}
			return nil
		case http.StatusUnauthorized:
			return fmt.Errorf("invalid API key")
		case http.StatusForbidden:
			return fmt.Errorf("access forbidden, check subscription tier")
		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limit exceeded")
			continue
		default:
			lastErr = fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", c.retryAttempts, lastErr)
}

// redactKey strips the api_key query param before a URL reaches logs.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

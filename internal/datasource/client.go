package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/models"
)

const oddsFeedSourceName = "odds_feed"

// FeedClient implements OddsSource against the REST odds feed API.
type FeedClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	markets    []string
	logger     *logrus.Logger

	mu          sync.RWMutex
	lastSuccess time.Time
	lastFailure time.Time
}

// feedRecord is the wire shape of one bet record as the feed returns it.
type feedRecord struct {
	ID        string      `json:"id"`
	GameID    string      `json:"game_id"`
	League    string      `json:"league"`
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	MarketKey string      `json:"market_key"`
	SubjectID string      `json:"subject_id,omitempty"`
	Line      *float64    `json:"line,omitempty"`
	Selection string      `json:"selection"`
	Prices    []feedPrice `json:"prices"`

	TrueProb         *float64 `json:"true_prob,omitempty"`
	EVConfidenceTier string   `json:"ev_confidence_tier,omitempty"`
	ReferencePrice   *int     `json:"reference_price,omitempty"`
	EVDisabledReason string   `json:"ev_disabled_reason,omitempty"`
}

type feedPrice struct {
	BookKey    string    `json:"book_key"`
	Price      int       `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// NewFeedClient creates a new odds feed client
func NewFeedClient(cfg *config.FeedConfig, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *FeedClient {
	return &FeedClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		markets:    cfg.Markets,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *FeedClient) Name() string {
	return oddsFeedSourceName
}

// Healthy reports whether the most recent feed interaction succeeded
func (c *FeedClient) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastSuccess.IsZero() {
		// No fetch attempted yet; treat an untouched client as healthy so
		// readiness does not flap on startup.
		return c.lastFailure.IsZero()
	}
	return c.lastSuccess.After(c.lastFailure)
}

// FetchRecords retrieves the current snapshot of bet records for a league
func (c *FeedClient) FetchRecords(ctx context.Context, league string) ([]*models.BetRecord, error) {
	endpoint := fmt.Sprintf("%s/leagues/%s/odds?%s", c.baseURL, url.PathEscape(league), c.query())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		c.markFailure()
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		c.markFailure()
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case http.StatusTooManyRequests:
		c.markFailure()
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case http.StatusNotFound:
		c.markFailure()
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeNotFound, fmt.Sprintf("league %q not found", league), ErrNotFound)
	default:
		c.markFailure()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), models.ErrFeedUnavailable)
	}

	var wire []feedRecord
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.markFailure()
		return nil, NewDataSourceError(oddsFeedSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	records := make([]*models.BetRecord, 0, len(wire))
	for _, w := range wire {
		records = append(records, convertRecord(w))
	}

	c.markSuccess()
	c.logger.WithFields(logrus.Fields{
		"league":  league,
		"records": len(records),
	}).Debug("Fetched odds snapshot")

	return records, nil
}

func (c *FeedClient) query() string {
	v := url.Values{}
	if len(c.markets) > 0 {
		v.Set("markets", strings.Join(c.markets, ","))
	}
	v.Set("oddsFormat", "american")
	return v.Encode()
}

func (c *FeedClient) markSuccess() {
	c.mu.Lock()
	c.lastSuccess = time.Now()
	c.mu.Unlock()
}

func (c *FeedClient) markFailure() {
	c.mu.Lock()
	c.lastFailure = time.Now()
	c.mu.Unlock()
}

func convertRecord(w feedRecord) *models.BetRecord {
	rec := &models.BetRecord{
		ID:               w.ID,
		GameID:           w.GameID,
		League:           w.League,
		HomeTeam:         w.HomeTeam,
		AwayTeam:         w.AwayTeam,
		MarketKey:        w.MarketKey,
		SubjectID:        w.SubjectID,
		Line:             w.Line,
		Selection:        w.Selection,
		TrueProb:         w.TrueProb,
		EVConfidenceTier: w.EVConfidenceTier,
		ReferencePrice:   w.ReferencePrice,
		EVDisabledReason: w.EVDisabledReason,
	}
	rec.Prices = make([]models.BookPrice, 0, len(w.Prices))
	for _, p := range w.Prices {
		rec.Prices = append(rec.Prices, models.BookPrice{
			BookKey:    strings.ToLower(p.BookKey),
			Price:      p.Price,
			ObservedAt: p.ObservedAt,
		})
	}
	return rec
}

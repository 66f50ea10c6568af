package cfbd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/resilience"
	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

const defaultBaseURL = "https://api.collegefootballdata.com"

var errCFBDTransient = crerr.New("cfbd transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// gameItem mirrors the provider's games payload; only schedule columns are
// decoded.
type gameItem struct {
	ID                 int64  `json:"id"`
	Season             int    `json:"season"`
	Week               *int   `json:"week"`
	SeasonType         string `json:"seasonType"`
	StartDate          string `json:"startDate"`
	StartTimeTBD       bool   `json:"startTimeTBD"`
	HomeID             int64  `json:"homeId"`
	HomeTeam           string `json:"homeTeam"`
	HomeClassification string `json:"homeClassification"`
	AwayID             int64  `json:"awayId"`
	AwayTeam           string `json:"awayTeam"`
	AwayClassification string `json:"awayClassification"`
}

func (c *Client) FetchGames(ctx context.Context, year int, seasonType string) ([]matchup.Matchup, error) {
	if year <= 0 {
		return nil, fmt.Errorf("season year must be greater than zero")
	}

	values := url.Values{}
	values.Set("year", strconv.Itoa(year))
	if seasonType = strings.TrimSpace(seasonType); seasonType != "" {
		values.Set("seasonType", seasonType)
	}

	var items []gameItem
	if err := c.doJSON(ctx, "/games", values, &items); err != nil {
		return nil, fmt.Errorf("fetch games year=%d season_type=%s: %w", year, seasonType, err)
	}

	out := make([]matchup.Matchup, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		mapped, err := mapGame(item)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed game", "match_id", item.ID, "error", err)
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func mapGame(item gameItem) (matchup.Matchup, error) {
	startAt, err := parseStartDate(item.StartDate)
	if err != nil {
		return matchup.Matchup{}, err
	}

	out := matchup.Matchup{
		ID:         item.ID,
		HomeTeam:   strings.TrimSpace(item.HomeTeam),
		AwayTeam:   strings.TrimSpace(item.AwayTeam),
		HomeID:     strconv.FormatInt(item.HomeID, 10),
		AwayID:     strconv.FormatInt(item.AwayID, 10),
		HomeClass:  strings.ToLower(strings.TrimSpace(item.HomeClassification)),
		AwayClass:  strings.ToLower(strings.TrimSpace(item.AwayClassification)),
		Date:       time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, time.UTC),
		Season:     item.Season,
		Week:       item.Week,
		SeasonType: strings.ToLower(strings.TrimSpace(item.SeasonType)),
	}
	if !item.StartTimeTBD {
		t := startAt
		out.Time = &t
	}
	return out, nil
}

func parseStartDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("start date is empty")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized start date %q", value)
}

func (c *Client) doJSON(ctx context.Context, path string, values url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cfbd circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errCFBDTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := fmt.Errorf("%w: send request: %v", errCFBDTransient, err)
		c.logger.WarnContext(ctx, "cfbd request failed", "url", fullURL, "error", reqErr)
		return nil, reqErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errCFBDTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: provider status=%d body=%s", errCFBDTransient, resp.StatusCode, abbreviateBody(raw))
		}
		return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	return raw, nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

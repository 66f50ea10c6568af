package discord

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
	"github.com/valyala/bytebufferpool"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
)

const defaultBaseURL = "https://discord.com/api"

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Timeout      time.Duration
	Logger       *logging.Logger
}

// Client speaks the provider's OAuth2 authorization-code flow with the
// identify scope. It never stores tokens; each callback gets a fresh
// exchange.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	redirectURI  string
	logger       *logging.Logger
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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		redirectURI:  strings.TrimSpace(cfg.RedirectURI),
		logger:       logger,
	}
}

func (c *Client) AuthorizeURL(state string) string {
	values := url.Values{}
	values.Set("client_id", c.clientID)
	values.Set("redirect_uri", c.redirectURI)
	values.Set("response_type", "code")
	values.Set("scope", "identify")
	if state = strings.TrimSpace(state); state != "" {
		values.Set("state", state)
	}
	return c.baseURL + "/oauth2/authorize?" + values.Encode()
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	appendField := func(key, value string) {
		if body.Len() > 0 {
			_ = body.WriteByte('&')
		}
		_, _ = body.WriteString(key)
		_ = body.WriteByte('=')
		_, _ = body.WriteString(url.QueryEscape(value))
	}
	appendField("client_id", c.clientID)
	appendField("client_secret", c.clientSecret)
	appendField("grant_type", "authorization_code")
	appendField("code", code)
	appendField("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	raw, err := c.execute(req)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode token payload: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", fmt.Errorf("token payload has no access token")
	}
	return payload.AccessToken, nil
}

func (c *Client) FetchProfile(ctx context.Context, accessToken string) (user.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return user.Profile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	raw, err := c.execute(req)
	if err != nil {
		return user.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	var payload struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Avatar     string `json:"avatar"`
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return user.Profile{}, fmt.Errorf("decode profile payload: %w", err)
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(payload.ID), 10, 64)
	if err != nil {
		return user.Profile{}, fmt.Errorf("parse profile id %q: %w", payload.ID, err)
	}

	return user.Profile{
		ID:          userID,
		Username:    strings.TrimSpace(payload.Username),
		DisplayName: strings.TrimSpace(payload.GlobalName),
		Avatar:      strings.TrimSpace(payload.Avatar),
	}, nil
}

func (c *Client) execute(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
)

// OAuthClient performs the identity provider's authorization-code flow: one
// call to exchange the code for a token, one call to fetch the profile.
type OAuthClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (user.Profile, error)
}

// SessionStore keeps authenticated profiles server-side, keyed by an opaque
// session identifier handed to the browser as a cookie.
type SessionStore interface {
	Create(ctx context.Context, profile user.Profile) (string, error)
	Get(ctx context.Context, sessionID string) (user.Profile, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type SessionService struct {
	oauth    OAuthClient
	sessions SessionStore
	logger   *logging.Logger
}

func NewSessionService(oauth OAuthClient, sessions SessionStore, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		oauth:    oauth,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *SessionService) LoginURL(state string) string {
	return s.oauth.AuthorizeURL(state)
}

// HandleCallback exchanges the authorization code, fetches the caller's
// profile and opens a session. Either provider call failing surfaces as an
// authorization failure; there are no retries.
func (s *SessionService) HandleCallback(ctx context.Context, code string) (string, user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.HandleCallback")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return "", user.Profile{}, fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	}

	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "token exchange failed", "error", err)
		return "", user.Profile{}, fmt.Errorf("%w: token exchange", ErrUpstreamAuth)
	}

	profile, err := s.oauth.FetchProfile(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "profile fetch failed", "error", err)
		return "", user.Profile{}, fmt.Errorf("%w: profile fetch", ErrUpstreamAuth)
	}

	if err := profile.Validate(); err != nil {
		return "", user.Profile{}, fmt.Errorf("%w: invalid profile: %v", ErrUpstreamAuth, err)
	}

	sessionID, err := s.sessions.Create(ctx, profile)
	if err != nil {
		return "", user.Profile{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "session opened", "user_id", profile.ID)
	return sessionID, profile, nil
}

func (s *SessionService) Resolve(ctx context.Context, sessionID string) (user.Profile, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return user.Profile{}, false, nil
	}
	return s.sessions.Get(ctx, sessionID)
}

func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

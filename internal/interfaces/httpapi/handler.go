package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/team"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

type Handler struct {
	matchupService *usecase.MatchupService
	pickService    *usecase.PickService
	sessionService *usecase.SessionService
	branding       team.BrandingSet
	sessionTTL     time.Duration
	cookieSecure   bool
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchupService *usecase.MatchupService,
	pickService *usecase.PickService,
	sessionService *usecase.SessionService,
	branding team.BrandingSet,
	sessionTTL time.Duration,
	cookieSecure bool,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &Handler{
		matchupService: matchupService,
		pickService:    pickService,
		sessionService: sessionService,
		branding:       branding,
		sessionTTL:     sessionTTL,
		cookieSecure:   cookieSecure,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

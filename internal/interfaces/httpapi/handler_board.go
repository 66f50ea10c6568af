package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/matchup"
	"github.com/MelloMattGit/CFBPyckem/internal/domain/pick"
	"github.com/MelloMattGit/CFBPyckem/internal/domain/team"
	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Games")
	defer span.End()

	profile, ok := profileFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthenticated)
		return
	}

	board, err := h.matchupService.Board(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load board failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	picksByMatch, err := h.pickService.ListForUser(ctx, profile.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list picks failed", "user_id", profile.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(board.Matchups))
	for _, item := range board.Matchups {
		items = append(items, gameToDTO(item, picksByMatch, h.branding))
	}

	writeData(ctx, w, http.StatusOK, gamesDTO{
		User: profileDTO{
			ID:          profile.ID,
			Username:    profile.Username,
			DisplayName: profile.Name(),
			AvatarURL:   profile.AvatarURL(),
			IsAdmin:     profile.Admin,
		},
		Games:         items,
		RegularWeeks:  board.RegularWeeks,
		HasPostseason: board.HasPostseason,
	})
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	profile, ok := profileFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthenticated)
		return
	}

	var req submitPicksRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	requests := make([]usecase.PickRequest, 0, len(req.Picks))
	for _, item := range req.Picks {
		requests = append(requests, usecase.PickRequest{
			MatchID: item.MatchID,
			TeamID:  item.TeamID,
			Side:    item.Side,
		})
	}

	if err := h.pickService.Submit(ctx, profile, requests); err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user_id", profile.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeOK(ctx, w)
}

type submitPicksRequest struct {
	Picks []submitPickItem `json:"picks" validate:"required,min=1,dive"`
}

type submitPickItem struct {
	MatchID int64  `json:"match_id" validate:"required,gt=0"`
	TeamID  string `json:"team_id" validate:"required"`
	Side    string `json:"side" validate:"omitempty,oneof=home away"`
}

type gamesDTO struct {
	User          profileDTO `json:"user"`
	Games         []gameDTO  `json:"games"`
	RegularWeeks  []int      `json:"regular_weeks"`
	HasPostseason bool       `json:"has_postseason"`
}

type gameDTO struct {
	MatchID    int64        `json:"match_id"`
	HomeTeam   string       `json:"home_team"`
	AwayTeam   string       `json:"away_team"`
	Home       *brandingDTO `json:"home,omitempty"`
	Away       *brandingDTO `json:"away,omitempty"`
	Date       string       `json:"date"`
	Time       string       `json:"time,omitempty"`
	Week       *int         `json:"week,omitempty"`
	Season     int          `json:"season"`
	SeasonType string       `json:"season_type"`
	Locked     bool         `json:"locked"`
	Pick       *userPickDTO `json:"pick,omitempty"`
}

type brandingDTO struct {
	TeamID       string `json:"team_id"`
	Color        string `json:"color,omitempty"`
	Logo         string `json:"logo,omitempty"`
	DarkLogo     string `json:"dark_logo,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Mascot       string `json:"mascot,omitempty"`
}

type userPickDTO struct {
	TeamID string `json:"team_id"`
	Side   string `json:"side,omitempty"`
}

func gameToDTO(item matchup.Matchup, picksByMatch map[int64]pick.Pick, branding team.BrandingSet) gameDTO {
	out := gameDTO{
		MatchID:    item.ID,
		HomeTeam:   item.HomeTeam,
		AwayTeam:   item.AwayTeam,
		Home:       brandingToDTO(item.HomeID, branding),
		Away:       brandingToDTO(item.AwayID, branding),
		Date:       item.Date.UTC().Format("2006-01-02"),
		Week:       item.Week,
		Season:     item.Season,
		SeasonType: item.SeasonType,
		Locked:     !item.StartsAt().After(time.Now().UTC()),
	}
	if item.Time != nil {
		out.Time = item.Time.UTC().Format("15:04:05")
	}
	if chosen, ok := picksByMatch[item.ID]; ok {
		out.Pick = &userPickDTO{TeamID: chosen.TeamID, Side: chosen.Side}
	}
	return out
}

func brandingToDTO(teamID string, branding team.BrandingSet) *brandingDTO {
	b, ok := branding.Lookup(teamID)
	if !ok {
		return &brandingDTO{TeamID: teamID}
	}
	return &brandingDTO{
		TeamID:       teamID,
		Color:        b.Color,
		Logo:         b.Logo,
		DarkLogo:     b.DarkLogo,
		Abbreviation: b.Abbreviation,
		Mascot:       b.Mascot,
	}
}

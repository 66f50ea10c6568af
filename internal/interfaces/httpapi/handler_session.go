package httpapi

import (
	"net/http"

	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Home")
	defer span.End()

	writeData(ctx, w, http.StatusOK, map[string]string{
		"service": "cfb-pyckem",
		"login":   "/login",
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeData(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	http.Redirect(w, r, h.sessionService.LoginURL(""), http.StatusFound)
}

func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Callback")
	defer span.End()

	sessionID, profile, err := h.sessionService.HandleCallback(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.logger.WarnContext(ctx, "oauth callback failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.InfoContext(ctx, "login completed", "user_id", profile.ID)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Dashboard")
	defer span.End()

	profile, ok := profileFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthenticated)
		return
	}

	writeData(ctx, w, http.StatusOK, profileDTO{
		ID:          profile.ID,
		Username:    profile.Username,
		DisplayName: profile.Name(),
		AvatarURL:   profile.AvatarURL(),
		IsAdmin:     profile.Admin,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.sessionService.Logout(ctx, cookie.Value); err != nil {
			h.logger.WarnContext(ctx, "session delete failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

type profileDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsAdmin     bool   `json:"is_admin"`
}

package httpapi

import (
	"net/http"

	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Home)
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /login", handler.Login)
	mux.HandleFunc("GET /callback", handler.Callback)
	mux.HandleFunc("GET /logout", handler.Logout)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, sessions *usecase.SessionService) {
	mux.Handle("GET /dashboard", RequireSession(sessions, http.HandlerFunc(handler.Dashboard)))
	mux.Handle("GET /games", RequireSession(sessions, http.HandlerFunc(handler.Games)))
	mux.Handle("POST /submit_picks", RequireSession(sessions, http.HandlerFunc(handler.SubmitPicks)))
}

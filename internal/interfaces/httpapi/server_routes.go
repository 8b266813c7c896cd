package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedAdviceRoutes(mux, handler, verifier)
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/overview", RequireAuth(verifier, http.HandlerFunc(handler.ListOverview)))
	mux.Handle("GET /v1/leagues/{leagueID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetRoster)))
	mux.Handle("GET /v1/leagues/{leagueID}/roster/occupancy", RequireAuth(verifier, http.HandlerFunc(handler.GetOccupancy)))
	mux.Handle("GET /v1/leagues/{leagueID}/roster/space", RequireAuth(verifier, http.HandlerFunc(handler.GetSpace)))
	mux.Handle("GET /v1/leagues/{leagueID}/roster/start-eligibility", RequireAuth(verifier, http.HandlerFunc(handler.GetStartEligibility)))
	mux.Handle("GET /v1/leagues/{leagueID}/roster/swap-candidates", RequireAuth(verifier, http.HandlerFunc(handler.ListSwapCandidates)))
	mux.Handle("GET /v1/leagues/{leagueID}/players", RequireAuth(verifier, http.HandlerFunc(handler.BrowsePlayers)))
	mux.Handle("POST /v1/leagues/{leagueID}/roster/members", RequireAuth(verifier, http.HandlerFunc(handler.AddMember)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/roster/members/{memberID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveMember)))
	mux.Handle("POST /v1/leagues/{leagueID}/roster/members/{memberID}/toggle", RequireAuth(verifier, http.HandlerFunc(handler.ToggleMember)))
}

func registerAuthorizedAdviceRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/advice", RequireAuth(verifier, http.HandlerFunc(handler.GetAdvice)))
	mux.Handle("GET /v1/leagues/{leagueID}/players/{targetID}/compare/{compareID}", RequireAuth(verifier, http.HandlerFunc(handler.ComparePlayers)))
}

package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/standings/{category}", handler.GetStandings)
	mux.HandleFunc("GET /v1/standings/{category}/live", handler.StreamStandings)
	mux.HandleFunc("GET /v1/standings/{category}/scorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/standings/{category}/teams/{teamID}", handler.GetTeamDetail)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, fn)
	}

	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /v1/admin/teams/{teamID}", admin(handler.UpdateTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", admin(handler.DeleteTeam))

	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("PUT /v1/admin/matches/{matchID}", admin(handler.UpdateMatch))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", admin(handler.DeleteMatch))

	mux.Handle("POST /v1/admin/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeletePlayer))
}

package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/playlist", handler.GetEventPlaylist)
	mux.HandleFunc("GET /v1/templates", handler.ListTemplates)
	mux.HandleFunc("GET /v1/templates/{type}", handler.GetTemplateByType)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("GET /v1/admin/data-sources", admin(handler.ListDataSources))
	mux.Handle("POST /v1/admin/data-sources", admin(handler.AddDataSource))
	mux.Handle("GET /v1/admin/data-sources/{sourceID}", admin(handler.GetDataSource))
	mux.Handle("PUT /v1/admin/data-sources/{sourceID}", admin(handler.UpdateDataSource))
	mux.Handle("DELETE /v1/admin/data-sources/{sourceID}", admin(handler.DeleteDataSource))
	mux.Handle("POST /v1/admin/data-sources/{sourceID}/refresh", admin(handler.RefreshDataSource))
	mux.Handle("POST /v1/admin/refresh", admin(handler.RefreshAll))
	mux.Handle("POST /v1/admin/events/{eventID}/files/refresh", admin(handler.RefreshEventFiles))

	mux.Handle("GET /v1/admin/proper-names", admin(handler.ListProperNames))
	mux.Handle("POST /v1/admin/proper-names", admin(handler.AddProperName))
	mux.Handle("DELETE /v1/admin/proper-names/{properNameID}", admin(handler.DeleteProperName))
	mux.Handle("GET /v1/admin/synonyms/{name}", admin(handler.GetSynonymByName))
	mux.Handle("GET /v1/admin/words/{word}/matches", admin(handler.ListMatchingNames))

	mux.Handle("POST /v1/admin/plugins/{pluginID}/enable", admin(handler.EnablePlugin))
	mux.Handle("POST /v1/admin/plugins/{pluginID}/disable", admin(handler.DisablePlugin))
}

package schedules

import "net/http"

// RegisterRoutes mounts the schedule planning endpoints on mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/schedule/estimate", HandleEstimate)
	mux.HandleFunc("POST /api/v1/schedule/validate", HandleValidate)
	mux.HandleFunc("POST /api/v1/schedule/preview", HandlePreview)
	mux.HandleFunc("POST /api/v1/schedule/warnings", HandleWarnings)

	mux.HandleFunc("POST /api/v1/seasons/{id}/schedule/drafts", HandleDraftCreate)
	mux.HandleFunc("GET /api/v1/seasons/{id}/schedule/drafts", HandleDraftList)
	mux.HandleFunc("GET /api/v1/schedule/drafts/{draft_id}", HandleDraftDetail)
	mux.HandleFunc("DELETE /api/v1/schedule/drafts/{draft_id}", HandleDraftDelete)
	mux.HandleFunc("POST /api/v1/schedule/drafts/{draft_id}/save", HandleDraftSave)

	mux.HandleFunc("POST /api/v1/schedule/drafts/{draft_id}/weeks", HandleWeekAppend)
	mux.HandleFunc("PUT /api/v1/schedule/drafts/{draft_id}/weeks/{week}", HandleWeekUpdate)
	mux.HandleFunc("POST /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches", HandleMatchAdd)
	mux.HandleFunc("PUT /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches/{index}", HandleMatchUpdate)
	mux.HandleFunc("DELETE /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches/{index}", HandleMatchRemove)
	mux.HandleFunc("POST /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches/{index}/swap", HandleMatchSwap)

	mux.HandleFunc("GET /api/v1/seasons/{id}/teams/search", HandleTeamSearch)
	mux.HandleFunc("GET /api/v1/seasons/{id}/standings", HandleStandings)
}

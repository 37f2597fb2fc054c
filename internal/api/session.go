package api

import (
	"net/http"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

type SessionResponse struct {
	ActingSecretariat models.Secretariat `json:"actingSecretariat"`
	Revision          uint64             `json:"revision"`
}

type UpdateSessionRequest struct {
	ActingSecretariat string `json:"actingSecretariat"`
}

// SessionHandler exposes the acting secretariat.
type SessionHandler struct {
	Store *store.Store
}

// Get handles GET /api/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, SessionResponse{
		ActingSecretariat: h.Store.ActingSecretariat(),
		Revision:          h.Store.Version(),
	})
}

// Put handles PUT /api/session
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	acting, err := models.ParseSecretariat(req.ActingSecretariat)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := h.Store.SetActingSecretariat(acting); err != nil {
		sendStoreError(w, err, "update session")
		return
	}

	sendJSON(w, http.StatusOK, SessionResponse{
		ActingSecretariat: acting,
		Revision:          h.Store.Version(),
	})
}

type viewSummary struct {
	ID    models.View `json:"id"`
	Title string      `json:"title"`
}

type VocabulariesResponse struct {
	Secretariats []models.Secretariat      `json:"secretariats"`
	Categories   []models.ActivityCategory `json:"categories"`
	Platforms    []models.Platform         `json:"platforms"`
	ChannelIcons []models.ChannelIcon      `json:"channelIcons"`
	Views        []viewSummary             `json:"views"`
}

func handleVocabularies(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, VocabulariesResponse{
		Secretariats: models.Secretariats(),
		Categories:   models.ActivityCategories(),
		Platforms:    models.Platforms(),
		ChannelIcons: models.ChannelIcons(),
		Views:        viewSummaries(),
	})
}

func viewSummaries() []viewSummary {
	views := models.Views()
	out := make([]viewSummary, 0, len(views))
	for _, view := range views {
		out = append(out, viewSummary{ID: view, Title: view.Title()})
	}
	return out
}

package api

import (
	"net/http"
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/share"
)

type ShareRequest struct {
	Platform string `json:"platform"`
	Text     string `json:"text"`
}

// ShareHandler builds publish links for generated posts.
type ShareHandler struct {
	SiteURL string
}

// Build handles POST /api/share
func (h *ShareHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "missing text"})
		return
	}

	links, err := share.Build(models.Platform(strings.TrimSpace(req.Platform)), req.Text, h.SiteURL)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	sendJSON(w, http.StatusOK, links)
}

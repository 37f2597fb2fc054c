package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samhotchkiss/sindicato-comms/internal/generation"
	"github.com/samhotchkiss/sindicato-comms/internal/metrics"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

type SocialPostRequest struct {
	ActivityID string `json:"activityId"`
	Platform   string `json:"platform"`
}

type GenerationResponse struct {
	Key string `json:"key"`
	generation.Outcome
}

// GenerationHandler runs AI text generation. Provider failures come back as
// text with status 200; only malformed requests are HTTP errors.
type GenerationHandler struct {
	Store   *store.Store
	Service *generation.Service
	Tracker *generation.Tracker
}

// PressOpportunities handles POST /api/generation/press-opportunities
func (h *GenerationHandler) PressOpportunities(w http.ResponseWriter, r *http.Request) {
	activities := h.Store.ListActivities()
	outcome := h.Tracker.Run(generation.PressOpportunitiesKey, func() string {
		return h.Service.SummarizePressOpportunities(r.Context(), activities)
	})
	if !outcome.Applied {
		metrics.RecordStale(generation.OperationPressOpportunities)
	}
	sendJSON(w, http.StatusOK, GenerationResponse{Key: generation.PressOpportunitiesKey, Outcome: outcome})
}

// SocialPost handles POST /api/generation/social
func (h *GenerationHandler) SocialPost(w http.ResponseWriter, r *http.Request) {
	var req SocialPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	platform := models.Platform(strings.TrimSpace(req.Platform))
	if !platform.Valid() {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid platform"})
		return
	}
	activity, err := h.Store.GetActivity(strings.TrimSpace(req.ActivityID))
	if err != nil {
		sendStoreError(w, err, "get activity")
		return
	}

	key := generation.SocialKey(activity.ID)
	outcome := h.Tracker.Run(key, func() string {
		return h.Service.DraftSocialPost(r.Context(), activity, platform)
	})
	if !outcome.Applied {
		metrics.RecordStale(generation.OperationSocialPost)
	}
	sendJSON(w, http.StatusOK, GenerationResponse{Key: key, Outcome: outcome})
}

// Result handles GET /api/generation/results/{key}
func (h *GenerationHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, ok := h.Tracker.Result(chi.URLParam(r, "key"))
	if !ok {
		sendJSON(w, http.StatusNotFound, errorResponse{Error: "no generation requested for key"})
		return
	}
	sendJSON(w, http.StatusOK, result)
}

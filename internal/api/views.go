package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samhotchkiss/sindicato-comms/internal/analytics"
	"github.com/samhotchkiss/sindicato-comms/internal/generation"
	"github.com/samhotchkiss/sindicato-comms/internal/middleware"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

// ViewResponse is what the View Router returns for one screen. Data holds
// the screen's module payload; Resources has none.
type ViewResponse struct {
	View              models.View        `json:"view"`
	Title             string             `json:"title"`
	ActingSecretariat models.Secretariat `json:"actingSecretariat"`
	Revision          uint64             `json:"revision"`
	Data              interface{}        `json:"data,omitempty"`
}

type ViewsResponse struct {
	Default models.View   `json:"default"`
	Views   []viewSummary `json:"views"`
}

type dashboardData struct {
	Summary            analytics.Summary  `json:"summary"`
	PressOpportunities *generation.Result `json:"pressOpportunities,omitempty"`
	ContactCount       int                `json:"contactCount"`
}

type activityLogData struct {
	Activities   []models.Activity         `json:"activities"`
	Categories   []models.ActivityCategory `json:"categories"`
	Secretariats []models.Secretariat      `json:"secretariats"`
}

type externalCommsData struct {
	PressReleases []models.PressRelease      `json:"pressReleases"`
	Contacts      []models.JournalistContact `json:"contacts"`
	Draft         models.PressReleaseFields  `json:"draft"`
}

type socialMediaData struct {
	Activities []models.Activity `json:"activities"`
	Platforms  []models.Platform `json:"platforms"`
}

type internalCommsData struct {
	Channels []models.Channel            `json:"channels"`
	Messages map[string][]models.Message `json:"messages"`
	Icons    []models.ChannelIcon        `json:"icons"`
}

// ViewHandler is the View Router: it maps a view id to the payload of the
// module that renders it. It owns no entity data.
type ViewHandler struct {
	Store   *store.Store
	Tracker *generation.Tracker
}

// List handles GET /api/views
func (h *ViewHandler) List(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, ViewsResponse{Default: models.ViewDashboard, Views: viewSummaries()})
}

// Get handles GET /api/views/{view}
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	view := models.View(chi.URLParam(r, "view"))
	if !view.Valid() {
		sendJSON(w, http.StatusNotFound, errorResponse{Error: "unknown view"})
		return
	}

	snap := h.Store.Snapshot()
	sendJSON(w, http.StatusOK, ViewResponse{
		View:              view,
		Title:             view.Title(),
		ActingSecretariat: middleware.ActingFromContext(r.Context()),
		Revision:          snap.Version,
		Data:              h.viewData(view, snap),
	})
}

// Analytics handles GET /api/analytics
func (h *ViewHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	sendJSON(w, http.StatusOK, analytics.Summarize(snap.Activities, snap.PressReleases))
}

func (h *ViewHandler) viewData(view models.View, snap store.Snapshot) interface{} {
	switch view {
	case models.ViewDashboard:
		data := dashboardData{
			Summary:      analytics.Summarize(snap.Activities, snap.PressReleases),
			ContactCount: len(snap.Contacts),
		}
		if h.Tracker != nil {
			if result, ok := h.Tracker.Result(generation.PressOpportunitiesKey); ok {
				data.PressOpportunities = &result
			}
		}
		return data
	case models.ViewActivityLog:
		return activityLogData{
			Activities:   snap.Activities,
			Categories:   models.ActivityCategories(),
			Secretariats: models.Secretariats(),
		}
	case models.ViewAnalytics:
		return analytics.Summarize(snap.Activities, snap.PressReleases)
	case models.ViewExternalComms:
		return externalCommsData{
			PressReleases: snap.PressReleases,
			Contacts:      snap.Contacts,
			Draft:         models.NewDraft(snap.ActingSecretariat).Content(),
		}
	case models.ViewSocialMedia:
		return socialMediaData{
			Activities: snap.Activities,
			Platforms:  models.Platforms(),
		}
	case models.ViewInternalComms:
		return internalCommsData{
			Channels: snap.Channels,
			Messages: snap.Messages,
			Icons:    models.ChannelIcons(),
		}
	default:
		return nil
	}
}

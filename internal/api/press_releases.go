package api

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samhotchkiss/sindicato-comms/internal/middleware"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/render"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

type PressReleasesResponse struct {
	PressReleases []models.PressRelease `json:"pressReleases"`
}

type PreviewResponse struct {
	Blocks  []render.Block `json:"blocks"`
	Missing []string       `json:"missing"`
}

// PressReleaseHandler serves the press release editor and history.
type PressReleaseHandler struct {
	Store    *store.Store
	Renderer *render.Renderer
}

// List handles GET /api/press-releases
func (h *PressReleaseHandler) List(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, PressReleasesResponse{PressReleases: h.Store.ListPressReleases()})
}

// Get handles GET /api/press-releases/{id}
func (h *PressReleaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	release, err := h.Store.GetPressRelease(chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, err, "get press release")
		return
	}
	sendJSON(w, http.StatusOK, release)
}

// Draft handles GET /api/press-releases/draft: an empty form issued by the
// acting secretariat.
func (h *PressReleaseHandler) Draft(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, models.NewDraft(middleware.ActingFromContext(r.Context())).Content())
}

// Create handles POST /api/press-releases
func (h *PressReleaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields models.PressReleaseFields
	if !decodeJSON(w, r, &fields) {
		return
	}
	if strings.TrimSpace(string(fields.Secretariat)) == "" {
		fields.Secretariat = middleware.ActingFromContext(r.Context())
	}

	release, err := h.Store.SavePressRelease(models.DraftForm{PressReleaseFields: fields})
	if err != nil {
		sendStoreError(w, err, "create press release")
		return
	}
	sendJSON(w, http.StatusCreated, release)
}

// Update handles PUT /api/press-releases/{id}. The stored date is refreshed.
func (h *PressReleaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields models.PressReleaseFields
	if !decodeJSON(w, r, &fields) {
		return
	}

	release, err := h.Store.SavePressRelease(models.SavedForm{
		ID:                 chi.URLParam(r, "id"),
		PressReleaseFields: fields,
	})
	if err != nil {
		sendStoreError(w, err, "update press release")
		return
	}
	sendJSON(w, http.StatusOK, release)
}

// Delete handles DELETE /api/press-releases/{id}
func (h *PressReleaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Store.DeletePressRelease(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Preview handles POST /api/press-releases/preview
func (h *PressReleaseHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var fields models.PressReleaseFields
	if !decodeJSON(w, r, &fields) {
		return
	}
	missing := fields.MissingRequired()
	if missing == nil {
		missing = []string{}
	}
	sendJSON(w, http.StatusOK, PreviewResponse{Blocks: render.Preview(fields), Missing: missing})
}

// PDF handles GET /api/press-releases/{id}/pdf
func (h *PressReleaseHandler) PDF(w http.ResponseWriter, r *http.Request) {
	release, err := h.Store.GetPressRelease(chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, err, "get press release")
		return
	}

	doc, err := h.Renderer.PDF(release)
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: render.UserMessage})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": render.Filename(release.Headline),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

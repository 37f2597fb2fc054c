package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samhotchkiss/sindicato-comms/internal/middleware"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

// ActivityRequest is the body of activity create and update calls. Tags may
// be sent as a list or as the comma separated text of the edit form.
type ActivityRequest struct {
	Title             string   `json:"title"`
	Category          string   `json:"category"`
	Secretariat       string   `json:"secretariat"`
	Description       string   `json:"description"`
	RelevanceTags     []string `json:"relevanceTags"`
	RelevanceTagsText *string  `json:"relevanceTagsText,omitempty"`
	Observations      string   `json:"observations"`
	Date              string   `json:"date,omitempty"`
}

func (req ActivityRequest) tags() []string {
	if req.RelevanceTagsText != nil {
		return models.ParseRelevanceTags(*req.RelevanceTagsText)
	}
	return req.RelevanceTags
}

// vocabulary parses the category and secretariat labels. Blank labels are
// passed through so the store can apply its defaults.
func (req ActivityRequest) vocabulary() (models.ActivityCategory, models.Secretariat, *errorResponse) {
	var category models.ActivityCategory
	if strings.TrimSpace(req.Category) != "" {
		parsed, err := models.ParseActivityCategory(req.Category)
		if err != nil {
			return "", "", &errorResponse{Error: err.Error(), Fields: []string{"category"}}
		}
		category = parsed
	}

	var secretariat models.Secretariat
	if strings.TrimSpace(req.Secretariat) != "" {
		parsed, err := models.ParseSecretariat(req.Secretariat)
		if err != nil {
			return "", "", &errorResponse{Error: err.Error(), Fields: []string{"secretariat"}}
		}
		secretariat = parsed
	}
	return category, secretariat, nil
}

type ActivitiesResponse struct {
	Activities []models.Activity `json:"activities"`
}

// ActivityHandler serves the activity log.
type ActivityHandler struct {
	Store *store.Store
}

// List handles GET /api/activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, ActivitiesResponse{Activities: h.Store.ListActivities()})
}

// Get handles GET /api/activities/{id}
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Store.GetActivity(chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, err, "get activity")
		return
	}
	sendJSON(w, http.StatusOK, activity)
}

// Create handles POST /api/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, secretariat, badLabel := req.vocabulary()
	if badLabel != nil {
		sendJSON(w, http.StatusBadRequest, badLabel)
		return
	}
	if secretariat == "" {
		secretariat = middleware.ActingFromContext(r.Context())
	}

	activity, err := h.Store.CreateActivity(store.CreateActivityInput{
		Title:         req.Title,
		Category:      category,
		Secretariat:   secretariat,
		Description:   req.Description,
		RelevanceTags: req.tags(),
		Observations:  req.Observations,
	})
	if err != nil {
		sendStoreError(w, err, "create activity")
		return
	}
	sendJSON(w, http.StatusCreated, activity)
}

// Update handles PUT /api/activities/{id}
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, secretariat, badLabel := req.vocabulary()
	if badLabel != nil {
		sendJSON(w, http.StatusBadRequest, badLabel)
		return
	}

	activity, err := h.Store.UpdateActivity(models.Activity{
		ID:            chi.URLParam(r, "id"),
		Title:         req.Title,
		Category:      category,
		Secretariat:   secretariat,
		Description:   req.Description,
		RelevanceTags: req.tags(),
		Observations:  req.Observations,
		Date:          strings.TrimSpace(req.Date),
	})
	if err != nil {
		sendStoreError(w, err, "update activity")
		return
	}
	sendJSON(w, http.StatusOK, activity)
}

// Delete handles DELETE /api/activities/{id}. Unknown ids are ignored.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Store.DeleteActivity(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

type ContactsResponse struct {
	Contacts []models.JournalistContact `json:"contacts"`
}

// ContactHandler serves the journalist agenda.
type ContactHandler struct {
	Store *store.Store
}

// List handles GET /api/contacts. ?frequent=true keeps only frequent contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts := h.Store.ListContacts()
	if r.URL.Query().Get("frequent") == "true" {
		frequent := make([]models.JournalistContact, 0, len(contacts))
		for _, contact := range contacts {
			if contact.IsFrequent {
				frequent = append(frequent, contact)
			}
		}
		contacts = frequent
	}
	sendJSON(w, http.StatusOK, ContactsResponse{Contacts: contacts})
}

// Get handles GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Store.GetContact(chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, err, "get contact")
		return
	}
	sendJSON(w, http.StatusOK, contact)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input store.CreateContactInput
	if !decodeJSON(w, r, &input) {
		return
	}

	contact, err := h.Store.CreateContact(input)
	if err != nil {
		sendStoreError(w, err, "create contact")
		return
	}
	sendJSON(w, http.StatusCreated, contact)
}

// Update handles PUT /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input store.CreateContactInput
	if !decodeJSON(w, r, &input) {
		return
	}

	contact, err := h.Store.UpdateContact(models.JournalistContact{
		ID:         chi.URLParam(r, "id"),
		Name:       input.Name,
		Media:      input.Media,
		Phone:      input.Phone,
		Email:      input.Email,
		Role:       input.Role,
		IsFrequent: input.IsFrequent,
	})
	if err != nil {
		sendStoreError(w, err, "update contact")
		return
	}
	sendJSON(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}?confirm=true
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Store.DeleteContact(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

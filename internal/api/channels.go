package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

type ChannelsResponse struct {
	Channels []models.Channel `json:"channels"`
}

type MessagesResponse struct {
	ChannelID string           `json:"channelId"`
	Messages  []models.Message `json:"messages"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type SendMessageResponse struct {
	Sent    bool            `json:"sent"`
	Message *models.Message `json:"message,omitempty"`
}

// ChannelHandler serves internal chat channels and their messages.
type ChannelHandler struct {
	Store *store.Store
}

// List handles GET /api/channels
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, ChannelsResponse{Channels: h.Store.ListChannels()})
}

// Get handles GET /api/channels/{id}
func (h *ChannelHandler) Get(w http.ResponseWriter, r *http.Request) {
	channel, err := h.Store.GetChannel(chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, err, "get channel")
		return
	}
	sendJSON(w, http.StatusOK, channel)
}

// Create handles POST /api/channels
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input store.CreateChannelInput
	if !decodeJSON(w, r, &input) {
		return
	}

	channel, err := h.Store.CreateChannel(input)
	if err != nil {
		sendStoreError(w, err, "create channel")
		return
	}
	sendJSON(w, http.StatusCreated, channel)
}

// Update handles PUT /api/channels/{id}
func (h *ChannelHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input store.CreateChannelInput
	if !decodeJSON(w, r, &input) {
		return
	}

	channel, err := h.Store.UpdateChannel(models.Channel{
		ID:          chi.URLParam(r, "id"),
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
	})
	if err != nil {
		sendStoreError(w, err, "update channel")
		return
	}
	sendJSON(w, http.StatusOK, channel)
}

// Delete handles DELETE /api/channels/{id}?confirm=true. The channel's
// messages go with it.
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Store.DeleteChannel(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /api/channels/{id}/messages. Unknown and deleted
// channels have no messages.
func (h *ChannelHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "id")
	sendJSON(w, http.StatusOK, MessagesResponse{ChannelID: channelID, Messages: h.Store.Messages(channelID)})
}

// SendMessage handles POST /api/channels/{id}/messages. Blank text is
// accepted and ignored.
func (h *ChannelHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, sent, err := h.Store.SendMessage(chi.URLParam(r, "id"), req.Text)
	if err != nil {
		sendStoreError(w, err, "send message")
		return
	}
	if !sent {
		sendJSON(w, http.StatusOK, SendMessageResponse{Sent: false})
		return
	}
	sendJSON(w, http.StatusCreated, SendMessageResponse{Sent: true, Message: &message})
}

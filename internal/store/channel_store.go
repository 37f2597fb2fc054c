package store

import (
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// CreateChannelInput defines the input for opening a chat channel.
type CreateChannelInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Icon        models.ChannelIcon `json:"icon"`
}

// ListChannels returns channels in creation order.
func (s *Store) ListChannels() []models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]models.Channel, 0, len(s.channels)), s.channels...)
}

// GetChannel returns the channel with the given id.
func (s *Store) GetChannel(id string) (models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.channelIndex(id)
	if idx < 0 {
		return models.Channel{}, ErrNotFound
	}
	return s.channels[idx], nil
}

// CreateChannel appends a channel with an empty message list.
func (s *Store) CreateChannel(input CreateChannelInput) (models.Channel, error) {
	channel := models.Channel{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if channel.Icon == "" {
		channel.Icon = models.DefaultChannelIcon
	}
	if err := validateChannel(channel); err != nil {
		return models.Channel{}, err
	}

	s.mu.Lock()
	channel.ID = s.newID()
	s.channels = append(s.channels, channel)
	s.messages[channel.ID] = []models.Message{}

	s.commit(Event{Kind: EventCreated, Entity: EntityChannel, ID: channel.ID, Payload: channel})
	return channel, nil
}

// UpdateChannel replaces the channel metadata. Messages are untouched.
func (s *Store) UpdateChannel(channel models.Channel) (models.Channel, error) {
	if channel.Icon == "" {
		channel.Icon = models.DefaultChannelIcon
	}
	if err := validateChannel(channel); err != nil {
		return models.Channel{}, err
	}

	s.mu.Lock()
	idx := s.channelIndex(channel.ID)
	if idx < 0 {
		s.mu.Unlock()
		return models.Channel{}, ErrNotFound
	}
	s.channels[idx] = channel

	s.commit(Event{Kind: EventUpdated, Entity: EntityChannel, ID: channel.ID, Payload: channel})
	return channel, nil
}

// DeleteChannel removes the channel together with all of its messages and
// reports whether it existed.
func (s *Store) DeleteChannel(id string) bool {
	s.mu.Lock()
	idx := s.channelIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.channels = append(s.channels[:idx:idx], s.channels[idx+1:]...)
	delete(s.messages, id)

	s.commit(Event{Kind: EventDeleted, Entity: EntityChannel, ID: id})
	return true
}

// Messages returns the channel history in send order. Unknown or deleted
// channels yield an empty slice.
func (s *Store) Messages(channelID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]models.Message, 0, len(s.messages[channelID])), s.messages[channelID]...)
}

// SendMessage appends text to the channel, authored by the acting
// secretariat. Blank text is not an error: it reports sent=false and
// changes nothing.
func (s *Store) SendMessage(channelID, text string) (message models.Message, sent bool, err error) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if s.channelIndex(channelID) < 0 {
		s.mu.Unlock()
		return models.Message{}, false, ErrNotFound
	}
	if text == "" {
		s.mu.Unlock()
		return models.Message{}, false, nil
	}

	now := s.now()
	message = models.Message{
		ID:        s.newID(),
		Text:      text,
		Author:    s.acting,
		Timestamp: now.Format(messageTimeLayout),
	}
	s.messages[channelID] = append(s.messages[channelID], message)

	s.commit(Event{Kind: EventCreated, Entity: EntityMessage, ID: message.ID, ChannelID: channelID, Payload: message})
	return message, true, nil
}

func (s *Store) channelIndex(id string) int {
	for i := range s.channels {
		if s.channels[i].ID == id {
			return i
		}
	}
	return -1
}

func validateChannel(channel models.Channel) error {
	var fields []string
	if blank(channel.Name) {
		fields = append(fields, "name")
	}
	if !channel.Icon.Valid() {
		fields = append(fields, "icon")
	}
	return validationError(EntityChannel, fields)
}

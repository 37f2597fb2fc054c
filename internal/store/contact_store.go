package store

import (
	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// CreateContactInput defines the input for adding a journalist to the agenda.
type CreateContactInput struct {
	Name       string `json:"name"`
	Media      string `json:"media"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsFrequent bool   `json:"isFrequent"`
}

// ListContacts returns the agenda, newest entries first.
func (s *Store) ListContacts() []models.JournalistContact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]models.JournalistContact, 0, len(s.contacts)), s.contacts...)
}

// GetContact returns the contact with the given id.
func (s *Store) GetContact(id string) (models.JournalistContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.contactIndex(id)
	if idx < 0 {
		return models.JournalistContact{}, ErrNotFound
	}
	return s.contacts[idx], nil
}

// CreateContact prepends a new contact to the agenda.
func (s *Store) CreateContact(input CreateContactInput) (models.JournalistContact, error) {
	contact := models.JournalistContact{
		Name:       input.Name,
		Media:      input.Media,
		Phone:      input.Phone,
		Email:      input.Email,
		Role:       input.Role,
		IsFrequent: input.IsFrequent,
	}
	if err := validateContact(contact); err != nil {
		return models.JournalistContact{}, err
	}

	s.mu.Lock()
	contact.ID = s.newID()
	s.contacts = append([]models.JournalistContact{contact}, s.contacts...)

	s.commit(Event{Kind: EventCreated, Entity: EntityContact, ID: contact.ID, Payload: contact})
	return contact, nil
}

// UpdateContact replaces the stored contact wholesale.
func (s *Store) UpdateContact(contact models.JournalistContact) (models.JournalistContact, error) {
	if err := validateContact(contact); err != nil {
		return models.JournalistContact{}, err
	}

	s.mu.Lock()
	idx := s.contactIndex(contact.ID)
	if idx < 0 {
		s.mu.Unlock()
		return models.JournalistContact{}, ErrNotFound
	}
	s.contacts[idx] = contact

	s.commit(Event{Kind: EventUpdated, Entity: EntityContact, ID: contact.ID, Payload: contact})
	return contact, nil
}

// DeleteContact removes the contact and reports whether it existed.
func (s *Store) DeleteContact(id string) bool {
	s.mu.Lock()
	idx := s.contactIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.contacts = append(s.contacts[:idx:idx], s.contacts[idx+1:]...)

	s.commit(Event{Kind: EventDeleted, Entity: EntityContact, ID: id})
	return true
}

func (s *Store) contactIndex(id string) int {
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

func validateContact(contact models.JournalistContact) error {
	var fields []string
	if blank(contact.Name) {
		fields = append(fields, "name")
	}
	if blank(contact.Media) {
		fields = append(fields, "media")
	}
	if blank(contact.Email) {
		fields = append(fields, "email")
	}
	return validationError(EntityContact, fields)
}

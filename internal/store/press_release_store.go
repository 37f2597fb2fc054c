package store

import (
	"fmt"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// ListPressReleases returns press releases, most recently created first.
func (s *Store) ListPressReleases() []models.PressRelease {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]models.PressRelease, 0, len(s.pressReleases)), s.pressReleases...)
}

// GetPressRelease returns the press release with the given id.
func (s *Store) GetPressRelease(id string) (models.PressRelease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.pressReleaseIndex(id)
	if idx < 0 {
		return models.PressRelease{}, ErrNotFound
	}
	return s.pressReleases[idx], nil
}

// CreatePressRelease stores a new press release. An empty secretariat
// defaults to the acting secretariat.
func (s *Store) CreatePressRelease(fields models.PressReleaseFields) (models.PressRelease, error) {
	s.mu.Lock()

	if fields.Secretariat == "" {
		fields.Secretariat = s.acting
	}
	if err := validatePressRelease(fields); err != nil {
		s.mu.Unlock()
		return models.PressRelease{}, err
	}

	release := fields.Release(s.newID(), s.timestamp())
	s.pressReleases = append([]models.PressRelease{release}, s.pressReleases...)

	s.commit(Event{Kind: EventCreated, Entity: EntityPressRelease, ID: release.ID, Payload: release})
	return release, nil
}

// UpdatePressRelease replaces the stored press release and refreshes its
// date to the update time. Activities keep their date on update; press
// releases do not.
func (s *Store) UpdatePressRelease(release models.PressRelease) (models.PressRelease, error) {
	fields := release.Fields()
	if err := validatePressRelease(fields); err != nil {
		return models.PressRelease{}, err
	}

	s.mu.Lock()
	idx := s.pressReleaseIndex(release.ID)
	if idx < 0 {
		s.mu.Unlock()
		return models.PressRelease{}, ErrNotFound
	}
	updated := fields.Release(release.ID, s.timestamp())
	s.pressReleases[idx] = updated

	s.commit(Event{Kind: EventUpdated, Entity: EntityPressRelease, ID: updated.ID, Payload: updated})
	return updated, nil
}

// SavePressRelease creates a draft or updates a saved form.
func (s *Store) SavePressRelease(form models.PressReleaseForm) (models.PressRelease, error) {
	switch f := form.(type) {
	case models.DraftForm:
		return s.CreatePressRelease(f.Content())
	case models.SavedForm:
		return s.UpdatePressRelease(f.Content().Release(f.ID, f.Date))
	default:
		return models.PressRelease{}, fmt.Errorf("unsupported press release form %T", form)
	}
}

// DeletePressRelease removes the press release and reports whether it existed.
func (s *Store) DeletePressRelease(id string) bool {
	s.mu.Lock()
	idx := s.pressReleaseIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.pressReleases = append(s.pressReleases[:idx:idx], s.pressReleases[idx+1:]...)

	s.commit(Event{Kind: EventDeleted, Entity: EntityPressRelease, ID: id})
	return true
}

func (s *Store) pressReleaseIndex(id string) int {
	for i := range s.pressReleases {
		if s.pressReleases[i].ID == id {
			return i
		}
	}
	return -1
}

func validatePressRelease(fields models.PressReleaseFields) error {
	missing := fields.MissingRequired()
	if !fields.Secretariat.Valid() {
		missing = append([]string{"secretariat"}, missing...)
	}
	return validationError(EntityPressRelease, missing)
}

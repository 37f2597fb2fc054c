package store

import (
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// CreateActivityInput defines the input for logging a new activity.
// Empty Secretariat defaults to the acting secretariat and empty Category
// to an internal meeting.
type CreateActivityInput struct {
	Title         string                  `json:"title"`
	Category      models.ActivityCategory `json:"category"`
	Secretariat   models.Secretariat      `json:"secretariat"`
	Description   string                  `json:"description"`
	RelevanceTags []string                `json:"relevanceTags"`
	Observations  string                  `json:"observations"`
}

// ListActivities returns activities, most recently created first.
func (s *Store) ListActivities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneActivities(s.activities)
}

// GetActivity returns the activity with the given id.
func (s *Store) GetActivity(id string) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.activityIndex(id)
	if idx < 0 {
		return models.Activity{}, ErrNotFound
	}
	return s.activities[idx].Clone(), nil
}

// CreateActivity assigns an id and the current date and prepends the activity.
func (s *Store) CreateActivity(input CreateActivityInput) (models.Activity, error) {
	s.mu.Lock()

	if input.Secretariat == "" {
		input.Secretariat = s.acting
	}
	if input.Category == "" {
		input.Category = models.CategoryInternalMeeting
	}

	activity := models.Activity{
		Title:         input.Title,
		Category:      input.Category,
		Secretariat:   input.Secretariat,
		Description:   input.Description,
		RelevanceTags: models.NormalizeRelevanceTags(input.RelevanceTags),
		Observations:  input.Observations,
	}
	if err := validateActivity(activity); err != nil {
		s.mu.Unlock()
		return models.Activity{}, err
	}

	activity.ID = s.newID()
	activity.Date = s.timestamp()
	s.activities = append([]models.Activity{activity}, s.activities...)

	s.commit(Event{Kind: EventCreated, Entity: EntityActivity, ID: activity.ID, Payload: activity.Clone()})
	return activity.Clone(), nil
}

// UpdateActivity replaces the stored activity wholesale. The original date
// is kept unless the incoming activity carries an explicit one.
func (s *Store) UpdateActivity(activity models.Activity) (models.Activity, error) {
	activity.RelevanceTags = models.NormalizeRelevanceTags(activity.RelevanceTags)
	if err := validateActivity(activity); err != nil {
		return models.Activity{}, err
	}
	if activity.Date != "" {
		if _, err := time.Parse(time.RFC3339, activity.Date); err != nil {
			return models.Activity{}, validationError(EntityActivity, []string{"date"})
		}
	}

	s.mu.Lock()
	idx := s.activityIndex(activity.ID)
	if idx < 0 {
		s.mu.Unlock()
		return models.Activity{}, ErrNotFound
	}
	if activity.Date == "" {
		activity.Date = s.activities[idx].Date
	}
	s.activities[idx] = activity.Clone()

	s.commit(Event{Kind: EventUpdated, Entity: EntityActivity, ID: activity.ID, Payload: activity.Clone()})
	return activity, nil
}

// DeleteActivity removes the activity and reports whether it existed.
func (s *Store) DeleteActivity(id string) bool {
	s.mu.Lock()
	idx := s.activityIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.activities = append(s.activities[:idx:idx], s.activities[idx+1:]...)

	s.commit(Event{Kind: EventDeleted, Entity: EntityActivity, ID: id})
	return true
}

func (s *Store) activityIndex(id string) int {
	for i := range s.activities {
		if s.activities[i].ID == id {
			return i
		}
	}
	return -1
}

func validateActivity(activity models.Activity) error {
	var fields []string
	if blank(activity.Title) {
		fields = append(fields, "title")
	}
	if !activity.Secretariat.Valid() {
		fields = append(fields, "secretariat")
	}
	if !activity.Category.Valid() {
		fields = append(fields, "category")
	}
	if blank(activity.Description) {
		fields = append(fields, "description")
	}
	return validationError(EntityActivity, fields)
}

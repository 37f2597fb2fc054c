// Package store provides the entity store: the single owner of every
// dashboard collection and of the acting secretariat.
package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// isoLayout matches the millisecond ISO 8601 form browsers produce.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// messageTimeLayout is the display form of message timestamps.
const messageTimeLayout = "15:04"

// ValidationError names the fields that made a create or update invalid.
type ValidationError struct {
	Entity Entity
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: missing or invalid %s", e.Entity, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(entity Entity, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Fields: fields}
}

// Entity names a collection.
type Entity string

const (
	EntityActivity     Entity = "activity"
	EntityPressRelease Entity = "press_release"
	EntityContact      Entity = "contact"
	EntityChannel      Entity = "channel"
	EntityMessage      Entity = "message"
	EntitySession      Entity = "session"
	EntityAll          Entity = "all"
)

// EventKind describes what a mutation did.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
	EventReset   EventKind = "reset"
)

// Event is emitted after every committed mutation.
type Event struct {
	Kind      EventKind `json:"kind"`
	Entity    Entity    `json:"entity"`
	ID        string    `json:"id,omitempty"`
	ChannelID string    `json:"channel_id,omitempty"`
	Version   uint64    `json:"version"`
	Payload   any       `json:"payload,omitempty"`
}

// Snapshot is a deep copy of the store state.
type Snapshot struct {
	Version           uint64                      `json:"version"`
	ActingSecretariat models.Secretariat          `json:"actingSecretariat"`
	Activities        []models.Activity           `json:"activities"`
	PressReleases     []models.PressRelease       `json:"pressReleases"`
	Contacts          []models.JournalistContact  `json:"contacts"`
	Channels          []models.Channel            `json:"channels"`
	Messages          map[string][]models.Message `json:"messages"`
}

// Store holds every entity collection. All mutations are serialized and
// listeners observe them in commit order. Listeners run without the state
// lock held, so they may read or mutate the store.
type Store struct {
	mu sync.Mutex

	// eventsMu guards pending and listeners. notifyMu is held by the single
	// goroutine currently delivering events.
	eventsMu sync.Mutex
	notifyMu sync.Mutex
	pending  []Event

	now     func() time.Time
	entropy io.Reader
	version uint64

	acting        models.Secretariat
	activities    []models.Activity
	pressReleases []models.PressRelease
	contacts      []models.JournalistContact
	channels      []models.Channel
	messages      map[string][]models.Message

	listeners    map[int]func(Event)
	nextListener int
}

// New creates an empty store acting as the given secretariat. An invalid
// secretariat falls back to General.
func New(acting models.Secretariat) *Store {
	if !acting.Valid() {
		acting = models.SecretariatGeneral
	}
	return &Store{
		now:       time.Now,
		entropy:   ulid.Monotonic(rand.Reader, 0),
		acting:    acting,
		messages:  make(map[string][]models.Message),
		listeners: make(map[int]func(Event)),
	}
}

// SetClock replaces the clock used for ids, dates and message timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Subscribe registers fn to be called after each committed mutation and
// returns a function that removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.eventsMu.Lock()
		defer s.eventsMu.Unlock()
		delete(s.listeners, id)
	}
}

// commit must be called with s.mu held. It queues the event in version
// order, releases s.mu and then delivers whatever is queued. When another
// goroutine is already delivering, that goroutine picks the event up.
func (s *Store) commit(event Event) {
	s.version++
	event.Version = s.version

	s.eventsMu.Lock()
	s.pending = append(s.pending, event)
	s.eventsMu.Unlock()
	s.mu.Unlock()

	for s.deliverPending() {
	}
}

// deliverPending drains the queue if no other goroutine is delivering. It
// reports whether events remain queued after the notify lock was released.
func (s *Store) deliverPending() bool {
	if !s.notifyMu.TryLock() {
		return false
	}
	func() {
		defer s.notifyMu.Unlock()
		for {
			event, listeners, ok := s.nextPending()
			if !ok {
				return
			}
			for _, fn := range listeners {
				fn(event)
			}
		}
	}()

	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	return len(s.pending) > 0
}

func (s *Store) nextPending() (Event, []func(Event), bool) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	if len(s.pending) == 0 {
		return Event{}, nil, false
	}
	event := s.pending[0]
	s.pending = s.pending[1:]

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	return event, listeners, true
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(isoLayout)
}

// Version returns the number of committed mutations.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ActingSecretariat returns the identity the session operates as.
func (s *Store) ActingSecretariat() models.Secretariat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acting
}

// SetActingSecretariat changes the session identity.
func (s *Store) SetActingSecretariat(acting models.Secretariat) error {
	if !acting.Valid() {
		return validationError(EntitySession, []string{"secretariat"})
	}

	s.mu.Lock()
	if s.acting == acting {
		s.mu.Unlock()
		return nil
	}
	s.acting = acting
	s.commit(Event{Kind: EventUpdated, Entity: EntitySession, Payload: acting})
	return nil
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:           s.version,
		ActingSecretariat: s.acting,
		Activities:        cloneActivities(s.activities),
		PressReleases:     append(make([]models.PressRelease, 0, len(s.pressReleases)), s.pressReleases...),
		Contacts:          append(make([]models.JournalistContact, 0, len(s.contacts)), s.contacts...),
		Channels:          append(make([]models.Channel, 0, len(s.channels)), s.channels...),
		Messages:          make(map[string][]models.Message, len(s.messages)),
	}
	for channelID, messages := range s.messages {
		snap.Messages[channelID] = append(make([]models.Message, 0, len(messages)), messages...)
	}
	return snap
}

// Restore replaces the whole state with snap. Message lists for channels
// that do not exist are dropped.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()

	if snap.ActingSecretariat.Valid() {
		s.acting = snap.ActingSecretariat
	}
	s.activities = cloneActivities(snap.Activities)
	s.pressReleases = append([]models.PressRelease(nil), snap.PressReleases...)
	s.contacts = append([]models.JournalistContact(nil), snap.Contacts...)
	s.channels = append([]models.Channel(nil), snap.Channels...)
	s.messages = make(map[string][]models.Message, len(s.channels))
	for _, channel := range s.channels {
		s.messages[channel.ID] = append([]models.Message{}, snap.Messages[channel.ID]...)
	}

	payload := s.snapshotLocked()
	payload.Version = s.version + 1
	s.commit(Event{Kind: EventReset, Entity: EntityAll, Payload: payload})
}

func cloneActivities(in []models.Activity) []models.Activity {
	out := make([]models.Activity, 0, len(in))
	for _, activity := range in {
		out = append(out, activity.Clone())
	}
	return out
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

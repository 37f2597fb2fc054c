package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// memoryJournal folds events into a snapshot the same way the Postgres
// journal folds them into tables.
type memoryJournal struct {
	snap    Snapshot
	started bool
	failOn  Entity
}

func newMemoryJournal() *memoryJournal {
	return &memoryJournal{snap: Snapshot{Messages: map[string][]models.Message{}}}
}

func (j *memoryJournal) Record(_ context.Context, event Event) error {
	if j.failOn != "" && event.Entity == j.failOn {
		return errors.New("disk full")
	}
	j.started = true

	switch event.Entity {
	case EntityAll:
		j.snap = event.Payload.(Snapshot)
	case EntitySession:
		j.snap.ActingSecretariat = event.Payload.(models.Secretariat)
	case EntityActivity:
		if event.Kind == EventCreated {
			j.snap.Activities = append([]models.Activity{event.Payload.(models.Activity)}, j.snap.Activities...)
		}
		if event.Kind == EventUpdated {
			j.snap.Activities = replaceByID(j.snap.Activities, event.Payload.(models.Activity), func(a models.Activity) string { return a.ID })
		}
		if event.Kind == EventDeleted {
			j.snap.Activities = removeByID(j.snap.Activities, event.ID, func(a models.Activity) string { return a.ID })
		}
	case EntityPressRelease:
		if event.Kind == EventCreated {
			j.snap.PressReleases = append([]models.PressRelease{event.Payload.(models.PressRelease)}, j.snap.PressReleases...)
		}
		if event.Kind == EventUpdated {
			j.snap.PressReleases = replaceByID(j.snap.PressReleases, event.Payload.(models.PressRelease), func(r models.PressRelease) string { return r.ID })
		}
		if event.Kind == EventDeleted {
			j.snap.PressReleases = removeByID(j.snap.PressReleases, event.ID, func(r models.PressRelease) string { return r.ID })
		}
	case EntityContact:
		if event.Kind == EventCreated {
			j.snap.Contacts = append([]models.JournalistContact{event.Payload.(models.JournalistContact)}, j.snap.Contacts...)
		}
		if event.Kind == EventUpdated {
			j.snap.Contacts = replaceByID(j.snap.Contacts, event.Payload.(models.JournalistContact), func(c models.JournalistContact) string { return c.ID })
		}
		if event.Kind == EventDeleted {
			j.snap.Contacts = removeByID(j.snap.Contacts, event.ID, func(c models.JournalistContact) string { return c.ID })
		}
	case EntityChannel:
		switch event.Kind {
		case EventCreated:
			j.snap.Channels = append(j.snap.Channels, event.Payload.(models.Channel))
			j.snap.Messages[event.ID] = []models.Message{}
		case EventUpdated:
			j.snap.Channels = replaceByID(j.snap.Channels, event.Payload.(models.Channel), func(c models.Channel) string { return c.ID })
		case EventDeleted:
			j.snap.Channels = removeByID(j.snap.Channels, event.ID, func(c models.Channel) string { return c.ID })
			delete(j.snap.Messages, event.ID)
		}
	case EntityMessage:
		j.snap.Messages[event.ChannelID] = append(j.snap.Messages[event.ChannelID], event.Payload.(models.Message))
	}
	return nil
}

func (j *memoryJournal) Load(context.Context) (Snapshot, bool, error) {
	return j.snap, j.started, nil
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func replaceByID[T any](items []T, updated T, key func(T) string) []T {
	for i := range items {
		if key(items[i]) == key(updated) {
			items[i] = updated
		}
	}
	return items
}

func TestBootstrapSeedsEmptyJournal(t *testing.T) {
	s := New(models.SecretariatGeneral)
	journal := newMemoryJournal()

	detach, err := Bootstrap(context.Background(), s, journal, true)
	require.NoError(t, err)
	defer detach()

	require.True(t, journal.started)
	require.Len(t, journal.snap.Activities, 4)
	require.Len(t, journal.snap.Channels, 3)
}

func TestBootstrapWithoutSeedLeavesStoreEmpty(t *testing.T) {
	s := New(models.SecretariatGeneral)
	journal := newMemoryJournal()

	detach, err := Bootstrap(context.Background(), s, journal, false)
	require.NoError(t, err)
	defer detach()

	require.Empty(t, s.ListActivities())
	require.False(t, journal.started)

	_, err = s.CreateContact(CreateContactInput{Name: "Ana", Media: "El País", Email: "a@elpais.es"})
	require.NoError(t, err)
	require.Len(t, journal.snap.Contacts, 1)
}

func TestBootstrapRestoresJournaledState(t *testing.T) {
	journal := newMemoryJournal()
	journal.started = true
	journal.snap = DemoSnapshot(models.SecretariatHealth)

	s := New(models.SecretariatGeneral)
	detach, err := Bootstrap(context.Background(), s, journal, true)
	require.NoError(t, err)
	defer detach()

	require.Equal(t, models.SecretariatHealth, s.ActingSecretariat())
	require.Len(t, s.ListActivities(), 4)
}

type brokenJournal struct{}

func (brokenJournal) Record(context.Context, Event) error { return nil }
func (brokenJournal) Load(context.Context) (Snapshot, bool, error) {
	return Snapshot{}, false, errors.New("connection refused")
}

func TestBootstrapPropagatesLoadError(t *testing.T) {
	_, err := Bootstrap(context.Background(), New(models.SecretariatGeneral), brokenJournal{}, true)
	require.Error(t, err)
}

func TestJournalFailureKeepsMutation(t *testing.T) {
	s := New(models.SecretariatGeneral)
	journal := newMemoryJournal()
	journal.failOn = EntityActivity
	detach := AttachJournal(s, journal)
	defer detach()

	activity, err := s.CreateActivity(CreateActivityInput{Title: "Taller", Description: "Formación"})
	require.NoError(t, err)

	_, err = s.GetActivity(activity.ID)
	require.NoError(t, err)
	require.Empty(t, journal.snap.Activities)
}

// Replaying the journaled events onto a fresh store reproduces the state of
// the store that emitted them.
func TestJournalReplayReproducesState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		original := New(models.SecretariatGeneral)
		original.SetClock(fixedClock(time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)))
		journal := newMemoryJournal()

		detach, err := Bootstrap(context.Background(), original, journal, rapid.Bool().Draw(rt, "seed"))
		if err != nil {
			rt.Fatalf("bootstrap: %v", err)
		}
		defer detach()

		text := rapid.StringMatching(`[a-z ]{0,8}`)
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 10).Draw(rt, "op") {
			case 0:
				_, _ = original.CreateActivity(CreateActivityInput{
					Title:         text.Draw(rt, "title"),
					Category:      rapid.SampledFrom(models.ActivityCategories()).Draw(rt, "category"),
					Description:   text.Draw(rt, "description"),
					RelevanceTags: rapid.SliceOfN(text, 0, 3).Draw(rt, "tags"),
				})
			case 1:
				if list := original.ListActivities(); len(list) > 0 {
					activity := list[rapid.IntRange(0, len(list)-1).Draw(rt, "activity")]
					activity.Observations = text.Draw(rt, "observations")
					activity.Date = ""
					_, _ = original.UpdateActivity(activity)
				}
			case 2:
				if list := original.ListActivities(); len(list) > 0 {
					original.DeleteActivity(list[rapid.IntRange(0, len(list)-1).Draw(rt, "activity")].ID)
				}
			case 3:
				_, _ = original.CreatePressRelease(models.PressReleaseFields{
					Headline: text.Draw(rt, "headline"),
					Lead:     text.Draw(rt, "lead"),
					Body:     text.Draw(rt, "body"),
					Contact:  text.Draw(rt, "contact"),
				})
			case 4:
				if list := original.ListPressReleases(); len(list) > 0 {
					release := list[rapid.IntRange(0, len(list)-1).Draw(rt, "release")]
					release.Subheadline = text.Draw(rt, "subheadline")
					_, _ = original.UpdatePressRelease(release)
				}
			case 5:
				if list := original.ListPressReleases(); len(list) > 0 {
					original.DeletePressRelease(list[rapid.IntRange(0, len(list)-1).Draw(rt, "release")].ID)
				}
			case 6:
				_, _ = original.CreateContact(CreateContactInput{
					Name:       text.Draw(rt, "name"),
					Media:      text.Draw(rt, "media"),
					Email:      text.Draw(rt, "email"),
					IsFrequent: rapid.Bool().Draw(rt, "frequent"),
				})
			case 7:
				if list := original.ListContacts(); len(list) > 0 {
					original.DeleteContact(list[rapid.IntRange(0, len(list)-1).Draw(rt, "contact")].ID)
				}
			case 8:
				_, _ = original.CreateChannel(CreateChannelInput{
					Name: text.Draw(rt, "channel"),
					Icon: rapid.SampledFrom(models.ChannelIcons()).Draw(rt, "icon"),
				})
			case 9:
				if list := original.ListChannels(); len(list) > 0 {
					channel := list[rapid.IntRange(0, len(list)-1).Draw(rt, "channel")]
					if rapid.IntRange(0, 4).Draw(rt, "dropChannel") == 0 {
						original.DeleteChannel(channel.ID)
					} else {
						_, _, _ = original.SendMessage(channel.ID, text.Draw(rt, "message"))
					}
				}
			case 10:
				_ = original.SetActingSecretariat(rapid.SampledFrom(models.Secretariats()).Draw(rt, "acting"))
			}
		}

		if !journal.started {
			return
		}

		rebuilt := New(models.SecretariatGeneral)
		detachRebuilt, err := Bootstrap(context.Background(), rebuilt, journal, false)
		if err != nil {
			rt.Fatalf("rebuild: %v", err)
		}
		defer detachRebuilt()

		want := original.Snapshot()
		got := rebuilt.Snapshot()
		want.Version = 0
		got.Version = 0
		require.Equal(rt, want, got)
	})
}

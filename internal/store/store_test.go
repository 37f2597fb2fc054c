package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/stretchr/testify/require"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(models.SecretariatCommunication)
	s.SetClock(fixedClock(time.Date(2024, 3, 8, 9, 5, 0, 0, time.UTC)))
	return s
}

func recordEvents(s *Store) (*[]Event, func()) {
	var mu sync.Mutex
	events := []Event{}
	cancel := s.Subscribe(func(event Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, event)
	})
	return &events, cancel
}

func TestNewFallsBackToGeneral(t *testing.T) {
	s := New(models.Secretariat("Secretaría Inventada"))
	require.Equal(t, models.SecretariatGeneral, s.ActingSecretariat())
	require.Empty(t, s.ListActivities())
	require.Empty(t, s.ListChannels())
}

func TestCreateActivityDefaultsAndPrepends(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateActivity(CreateActivityInput{
		Title:         "Asamblea de delegados",
		Description:   "Reunión trimestral",
		RelevanceTags: []string{" asamblea ", "", "delegados"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, models.SecretariatCommunication, first.Secretariat)
	require.Equal(t, models.CategoryInternalMeeting, first.Category)
	require.Equal(t, []string{"asamblea", "delegados"}, first.RelevanceTags)
	require.Equal(t, "2024-03-08T09:05:00.000Z", first.Date)

	second, err := s.CreateActivity(CreateActivityInput{
		Title:       "Campaña 8M",
		Category:    models.CategorySocialMedia,
		Secretariat: models.SecretariatEducation,
		Description: "Vídeos y testimonios",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, []string{}, second.RelevanceTags)

	list := s.ListActivities()
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestCreateActivityValidation(t *testing.T) {
	s := newTestStore(t)
	events, cancel := recordEvents(s)
	defer cancel()

	_, err := s.CreateActivity(CreateActivityInput{
		Title:       "   ",
		Category:    models.ActivityCategory("Fiesta"),
		Description: "",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, EntityActivity, verr.Entity)
	require.Equal(t, []string{"title", "category", "description"}, verr.Fields)

	require.Empty(t, s.ListActivities())
	require.Empty(t, *events)
	require.Zero(t, s.Version())
}

func TestUpdateActivityDateHandling(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateActivity(CreateActivityInput{Title: "Taller", Description: "Formación"})
	require.NoError(t, err)

	s.SetClock(fixedClock(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)))

	edit := created
	edit.Title = "Taller ampliado"
	edit.Date = ""
	updated, err := s.UpdateActivity(edit)
	require.NoError(t, err)
	require.Equal(t, created.Date, updated.Date)
	require.Equal(t, "Taller ampliado", updated.Title)

	edit.Date = "2023-10-25T15:00:00.000Z"
	updated, err = s.UpdateActivity(edit)
	require.NoError(t, err)
	require.Equal(t, "2023-10-25T15:00:00.000Z", updated.Date)

	edit.Date = "ayer"
	_, err = s.UpdateActivity(edit)
	require.ErrorIs(t, err, ErrValidation)

	got, err := s.GetActivity(created.ID)
	require.NoError(t, err)
	require.Equal(t, "2023-10-25T15:00:00.000Z", got.Date)
}

func TestUpdateActivityNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateActivity(models.Activity{
		ID:          "missing",
		Title:       "Nada",
		Category:    models.CategoryTraining,
		Secretariat: models.SecretariatGeneral,
		Description: "Nada",
	})
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, s.Version())
}

func TestGetActivityReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateActivity(CreateActivityInput{
		Title:         "Rueda de prensa",
		Description:   "Reforma laboral",
		RelevanceTags: []string{"prensa"},
	})
	require.NoError(t, err)

	got, err := s.GetActivity(created.ID)
	require.NoError(t, err)
	got.RelevanceTags[0] = "alterado"

	again, err := s.GetActivity(created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"prensa"}, again.RelevanceTags)
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s := newTestStore(t)
	events, cancel := recordEvents(s)
	defer cancel()

	require.False(t, s.DeleteActivity("nope"))
	require.False(t, s.DeletePressRelease("nope"))
	require.False(t, s.DeleteContact("nope"))
	require.False(t, s.DeleteChannel("nope"))
	require.Empty(t, *events)
	require.Zero(t, s.Version())
}

func TestPressReleaseLifecycle(t *testing.T) {
	s := newTestStore(t)

	draft := models.NewDraft(s.ActingSecretariat())
	draft.Headline = "Preacuerdo en el metal"
	draft.Lead = "Entradilla"
	draft.Body = "Cuerpo"
	draft.Contact = "prensa@sindicato.org"

	created, err := s.SavePressRelease(draft)
	require.NoError(t, err)
	require.Equal(t, models.SecretariatCommunication, created.Secretariat)
	require.Equal(t, "2024-03-08T09:05:00.000Z", created.Date)

	s.SetClock(fixedClock(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)))

	form := models.EditForm(created)
	form.Subheadline = "Subida salarial del 5%"
	updated, err := s.SavePressRelease(form)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Subida salarial del 5%", updated.Subheadline)
	require.Equal(t, "2024-03-09T10:00:00.000Z", updated.Date)

	require.Len(t, s.ListPressReleases(), 1)
	require.True(t, s.DeletePressRelease(created.ID))
	_, err = s.GetPressRelease(created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPressReleaseRequiresMandatoryFields(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreatePressRelease(models.PressReleaseFields{Headline: "Solo titular"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"lead", "body", "contact"}, verr.Fields)
	require.Empty(t, s.ListPressReleases())
}

func TestContactLifecycle(t *testing.T) {
	s := newTestStore(t)

	ana, err := s.CreateContact(CreateContactInput{Name: "Ana García", Media: "El País", Email: "agarcia@elpais.es", IsFrequent: true})
	require.NoError(t, err)
	carlos, err := s.CreateContact(CreateContactInput{Name: "Carlos Sánchez", Media: "Cadena SER", Email: "csanchez@cadenaser.es"})
	require.NoError(t, err)

	list := s.ListContacts()
	require.Equal(t, carlos.ID, list[0].ID)
	require.Equal(t, ana.ID, list[1].ID)

	carlos.IsFrequent = true
	updated, err := s.UpdateContact(carlos)
	require.NoError(t, err)
	require.True(t, updated.IsFrequent)

	_, err = s.CreateContact(CreateContactInput{Name: "Sin email", Media: "Radio"})
	require.ErrorIs(t, err, ErrValidation)

	require.True(t, s.DeleteContact(ana.ID))
	require.Len(t, s.ListContacts(), 1)
}

func TestChannelDeleteCascadesMessages(t *testing.T) {
	s := newTestStore(t)

	channel, err := s.CreateChannel(CreateChannelInput{Name: "#congreso"})
	require.NoError(t, err)
	require.Equal(t, models.DefaultChannelIcon, channel.Icon)
	require.Equal(t, []models.Message{}, s.Messages(channel.ID))

	_, sent, err := s.SendMessage(channel.ID, "Hola")
	require.NoError(t, err)
	require.True(t, sent)
	require.Len(t, s.Messages(channel.ID), 1)

	require.True(t, s.DeleteChannel(channel.ID))
	require.Empty(t, s.Messages(channel.ID))
	require.Empty(t, s.Snapshot().Messages)
}

func TestChannelsKeepCreationOrder(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateChannel(CreateChannelInput{Name: "#a"})
	require.NoError(t, err)
	b, err := s.CreateChannel(CreateChannelInput{Name: "#b", Icon: models.ChannelIcon("dashboard")})
	require.NoError(t, err)

	list := s.ListChannels()
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, b.ID, list[1].ID)

	_, err = s.CreateChannel(CreateChannelInput{Name: "#c", Icon: models.ChannelIcon("rocket")})
	require.ErrorIs(t, err, ErrValidation)
}

func TestSendMessage(t *testing.T) {
	s := newTestStore(t)
	channel, err := s.CreateChannel(CreateChannelInput{Name: "#igualdad"})
	require.NoError(t, err)
	events, cancel := recordEvents(s)
	defer cancel()

	message, sent, err := s.SendMessage(channel.ID, "  Reunión a las 18:00  ")
	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, "Reunión a las 18:00", message.Text)
	require.Equal(t, models.SecretariatCommunication, message.Author)
	require.Equal(t, "09:05", message.Timestamp)

	_, sent, err = s.SendMessage(channel.ID, "   ")
	require.NoError(t, err)
	require.False(t, sent)

	_, _, err = s.SendMessage("missing", "hola")
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, s.Messages(channel.ID), 1)
	require.Len(t, *events, 1)
	require.Equal(t, EntityMessage, (*events)[0].Entity)
	require.Equal(t, channel.ID, (*events)[0].ChannelID)
}

func TestMessagesFollowActingSecretariat(t *testing.T) {
	s := newTestStore(t)
	channel, err := s.CreateChannel(CreateChannelInput{Name: "#general"})
	require.NoError(t, err)

	require.NoError(t, s.SetActingSecretariat(models.SecretariatUsal))
	message, _, err := s.SendMessage(channel.ID, "Hola desde la Usal")
	require.NoError(t, err)
	require.Equal(t, models.SecretariatUsal, message.Author)

	activity, err := s.CreateActivity(CreateActivityInput{Title: "Charla", Description: "Institutos"})
	require.NoError(t, err)
	require.Equal(t, models.SecretariatUsal, activity.Secretariat)
}

func TestSetActingSecretariat(t *testing.T) {
	s := newTestStore(t)
	events, cancel := recordEvents(s)
	defer cancel()

	require.ErrorIs(t, s.SetActingSecretariat("Nadie"), ErrValidation)
	require.NoError(t, s.SetActingSecretariat(models.SecretariatCommunication))
	require.Empty(t, *events)

	require.NoError(t, s.SetActingSecretariat(models.SecretariatHealth))
	require.Len(t, *events, 1)
	require.Equal(t, EntitySession, (*events)[0].Entity)
	require.Equal(t, models.SecretariatHealth, (*events)[0].Payload)
}

func TestSubscribeDeliversInCommitOrder(t *testing.T) {
	s := newTestStore(t)

	var mu sync.Mutex
	var versions []uint64
	cancel := s.Subscribe(func(event Event) {
		mu.Lock()
		defer mu.Unlock()
		versions = append(versions, event.Version)
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.CreateContact(CreateContactInput{Name: "Periodista", Media: "Radio", Email: "p@radio.es"}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.Len(t, versions, 20)
	for i, version := range versions {
		require.Equal(t, uint64(i+1), version)
	}

	cancel()
	_, err := s.CreateContact(CreateContactInput{Name: "Otra", Media: "TV", Email: "o@tv.es"})
	require.NoError(t, err)
	require.Len(t, versions, 20)
}

func TestListenersMayReadDuringConcurrentMutations(t *testing.T) {
	s := newTestStore(t)

	var mu sync.Mutex
	seen := 0
	cancel := s.Subscribe(func(event Event) {
		if snap := s.Snapshot(); snap.Version < event.Version {
			t.Errorf("snapshot version %d behind event %d", snap.Version, event.Version)
		}
		mu.Lock()
		seen++
		mu.Unlock()
	})
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					if _, err := s.CreateActivity(CreateActivityInput{Title: "Asamblea", Description: "Plantilla"}); err != nil {
						t.Error(err)
					}
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener reading the store blocked concurrent mutations")
	}

	require.Len(t, s.ListActivities(), 200)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 200, seen)
}

func TestListenerMutationIsDeliveredAfterCurrentEvent(t *testing.T) {
	s := newTestStore(t)

	var order []Entity
	cancel := s.Subscribe(func(event Event) {
		order = append(order, event.Entity)
		if event.Entity == EntityChannel && event.Kind == EventCreated {
			_, _, err := s.SendMessage(event.ID, "Canal abierto")
			require.NoError(t, err)
		}
	})
	defer cancel()

	channel, err := s.CreateChannel(CreateChannelInput{Name: "#avisos"})
	require.NoError(t, err)

	require.Equal(t, []Entity{EntityChannel, EntityMessage}, order)
	require.Len(t, s.Messages(channel.ID), 1)
}

func TestRestoreDropsOrphanMessages(t *testing.T) {
	s := newTestStore(t)
	events, cancel := recordEvents(s)
	defer cancel()

	s.Restore(Snapshot{
		ActingSecretariat: models.SecretariatUsal,
		Channels:          []models.Channel{{ID: "c1", Name: "#uno", Icon: models.DefaultChannelIcon}},
		Messages: map[string][]models.Message{
			"c1":    {{ID: "m1", Text: "hola", Author: models.SecretariatUsal, Timestamp: "10:00"}},
			"ghost": {{ID: "m2", Text: "perdido", Author: models.SecretariatUsal, Timestamp: "11:00"}},
		},
	})

	snap := s.Snapshot()
	require.Equal(t, models.SecretariatUsal, snap.ActingSecretariat)
	require.Len(t, snap.Messages, 1)
	require.Len(t, snap.Messages["c1"], 1)

	require.Len(t, *events, 1)
	reset := (*events)[0]
	require.Equal(t, EventReset, reset.Kind)
	payload, ok := reset.Payload.(Snapshot)
	require.True(t, ok)
	require.Equal(t, reset.Version, payload.Version)
	require.Equal(t, s.Version(), payload.Version)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)
	Seed(s)

	snap := s.Snapshot()
	snap.Activities[0].RelevanceTags[0] = "mutado"
	snap.Messages["1"][0].Text = "mutado"

	fresh := s.Snapshot()
	require.Equal(t, "prensa", fresh.Activities[0].RelevanceTags[0])
	require.NotEqual(t, "mutado", fresh.Messages["1"][0].Text)
}

func TestSeedLoadsDemoData(t *testing.T) {
	s := New(models.SecretariatEducation)
	Seed(s)

	require.Equal(t, models.SecretariatEducation, s.ActingSecretariat())
	require.Len(t, s.ListActivities(), 4)
	require.Len(t, s.ListPressReleases(), 1)
	require.Len(t, s.ListContacts(), 3)
	require.Len(t, s.ListChannels(), 3)
	require.Len(t, s.Messages("1"), 1)
	require.Empty(t, s.Messages("3"))

	channel, err := s.GetChannel("2")
	require.NoError(t, err)
	require.Equal(t, models.ChannelIcon("dashboard"), channel.Icon)
}

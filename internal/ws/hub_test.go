package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
	"github.com/stretchr/testify/require"
)

func mustReceiveMessage(t *testing.T, ch <-chan []byte, timeout time.Duration) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for websocket payload")
		return nil
	}
}

func mustNotReceiveMessage(t *testing.T, ch <-chan []byte, timeout time.Duration) {
	t.Helper()
	select {
	case payload := <-ch:
		t.Fatalf("expected no payload, got %q", string(payload))
	case <-time.After(timeout):
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func TestHubBroadcastTopicFiltersBySubscription(t *testing.T) {
	hub := startHub(t)

	topicA := ChannelTopic("1")
	topicB := ChannelTopic("2")

	clientA := NewClient(hub, nil)
	clientA.SubscribeTopic(topicA)

	clientB := NewClient(hub, nil)
	clientB.SubscribeTopic(topicB)

	hub.Register(clientA)
	hub.Register(clientB)

	hub.BroadcastTopic(topicA, []byte("topic-a"))
	received := mustReceiveMessage(t, clientA.Send, 200*time.Millisecond)
	if string(received) != "topic-a" {
		t.Fatalf("expected topic-a payload, got %q", string(received))
	}
	mustNotReceiveMessage(t, clientB.Send, 80*time.Millisecond)

	hub.Broadcast([]byte("everyone"))
	received = mustReceiveMessage(t, clientA.Send, 200*time.Millisecond)
	if string(received) != "everyone" {
		t.Fatalf("expected broadcast payload for clientA, got %q", string(received))
	}
	received = mustReceiveMessage(t, clientB.Send, 200*time.Millisecond)
	if string(received) != "everyone" {
		t.Fatalf("expected broadcast payload for clientB, got %q", string(received))
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	client := NewClient(hub, nil)
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timed out waiting for send channel to close")
	}
}

func TestClientUnsubscribeTopic(t *testing.T) {
	client := NewClient(nil, nil)
	client.SubscribeTopic("channel:1")
	require.True(t, client.IsSubscribed("channel:1"))
	client.UnsubscribeTopic("channel:1")
	require.False(t, client.IsSubscribed("channel:1"))
}

func TestPublishStoreEvents(t *testing.T) {
	hub := startHub(t)
	s := store.New(models.SecretariatCommunication)
	store.Seed(s)
	stop := PublishStoreEvents(hub, s)
	defer stop()

	follower := NewClient(hub, nil)
	follower.SubscribeTopic(ChannelTopic("1"))
	bystander := NewClient(hub, nil)
	hub.Register(follower)
	hub.Register(bystander)

	_, err := s.CreateContact(store.CreateContactInput{Name: "Ana", Media: "El País", Email: "ana@elpais.es"})
	require.NoError(t, err)

	for _, client := range []*Client{follower, bystander} {
		var envelope struct {
			Type  MessageType `json:"type"`
			Event struct {
				Kind   string `json:"kind"`
				Entity string `json:"entity"`
			} `json:"event"`
		}
		require.NoError(t, json.Unmarshal(mustReceiveMessage(t, client.Send, 200*time.Millisecond), &envelope))
		require.Equal(t, MessageContactChanged, envelope.Type)
		require.Equal(t, "created", envelope.Event.Kind)
		require.Equal(t, "contact", envelope.Event.Entity)
	}

	_, sent, err := s.SendMessage("1", "Asamblea a las 12")
	require.NoError(t, err)
	require.True(t, sent)

	raw := mustReceiveMessage(t, follower.Send, 200*time.Millisecond)
	require.Contains(t, string(raw), `"type":"ChannelMessageCreated"`)
	require.Contains(t, string(raw), "Asamblea a las 12")
	mustNotReceiveMessage(t, bystander.Send, 80*time.Millisecond)
}

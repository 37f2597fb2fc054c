package ws

import (
	"encoding/json"
	"log"

	"github.com/samhotchkiss/sindicato-comms/internal/store"
)

// ChannelTopic is the subscription topic for messages posted to a channel.
func ChannelTopic(channelID string) string {
	return "channel:" + channelID
}

type storeEvent struct {
	Type  MessageType `json:"type"`
	Event store.Event `json:"event"`
}

var messageTypes = map[store.Entity]MessageType{
	store.EntityActivity:     MessageActivityChanged,
	store.EntityPressRelease: MessagePressReleaseChanged,
	store.EntityContact:      MessageContactChanged,
	store.EntityChannel:      MessageChannelChanged,
	store.EntityMessage:      MessageChannelMessage,
	store.EntitySession:      MessageSessionChanged,
	store.EntityAll:          MessageStateReset,
}

// PublishStoreEvents relays every committed store mutation to the hub.
// Channel messages go only to subscribers of the channel's topic. The returned
// function stops the relay.
func PublishStoreEvents(hub *Hub, s *store.Store) func() {
	return s.Subscribe(func(event store.Event) {
		messageType, ok := messageTypes[event.Entity]
		if !ok {
			return
		}
		payload, err := json.Marshal(storeEvent{Type: messageType, Event: event})
		if err != nil {
			log.Printf("warning: ws: failed to encode %s %s event: %v", event.Entity, event.Kind, err)
			return
		}
		if event.Entity == store.EntityMessage {
			hub.BroadcastTopic(ChannelTopic(event.ChannelID), payload)
			return
		}
		hub.Broadcast(payload)
	})
}

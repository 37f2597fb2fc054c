// Package models defines the domain models for the union communications dashboard.
//
// Note: The entity store owns every collection; this package only provides the
// shared types, the closed vocabularies and the press release form union.
package models

// Activity represents a logged union action or event tracked for communication purposes.
type Activity struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Category      ActivityCategory `json:"category"`
	Secretariat   Secretariat      `json:"secretariat"`
	Description   string           `json:"description"`
	RelevanceTags []string         `json:"relevanceTags"`
	Observations  string           `json:"observations"`
	Date          string           `json:"date"`
}

// Clone returns a copy that shares no slices with the receiver.
func (a Activity) Clone() Activity {
	out := a
	if a.RelevanceTags != nil {
		out.RelevanceTags = append([]string{}, a.RelevanceTags...)
	}
	return out
}

// PressRelease represents a structured document intended for media distribution.
type PressRelease struct {
	ID          string      `json:"id"`
	Secretariat Secretariat `json:"secretariat"`
	Preheadline string      `json:"preheadline"`
	Headline    string      `json:"headline"`
	Subheadline string      `json:"subheadline"`
	Lead        string      `json:"lead"`
	Body        string      `json:"body"`
	Contact     string      `json:"contact"`
	Date        string      `json:"date"`
}

// JournalistContact is an entry of the press contact agenda.
type JournalistContact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Media      string `json:"media"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsFrequent bool   `json:"isFrequent"`
}

// Channel is a named topic bucket for internal chat messages.
type Channel struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        ChannelIcon `json:"icon"`
}

// Message is a chat line posted to a channel. Timestamp is a display
// string (HH:MM) and does not sort across days.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Author    Secretariat `json:"author"`
	Timestamp string      `json:"timestamp"`
}

package generation

import "sync"

// Result keys.
const PressOpportunitiesKey = "press-opportunities"

// SocialKey is the result key of the social draft for one activity.
func SocialKey(activityID string) string {
	return "social:" + activityID
}

// Outcome is what a tracked generation call produced.
type Outcome struct {
	Text    string `json:"text"`
	Token   uint64 `json:"token"`
	Applied bool   `json:"applied"`
}

// Result is the latest applied text for a key.
type Result struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Token   uint64 `json:"token"`
	Pending bool   `json:"pending"`
}

type slot struct {
	latest  uint64
	applied uint64
	text    string
}

// Tracker holds one result per key. Each request takes a token; a result
// is kept only if its token is still the newest issued for the key, so a
// slow response never overwrites a newer one.
type Tracker struct {
	mu    sync.Mutex
	next  uint64
	slots map[string]*slot
}

func NewTracker() *Tracker {
	return &Tracker{slots: make(map[string]*slot)}
}

// Begin issues a new token for key.
func (t *Tracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	s, ok := t.slots[key]
	if !ok {
		s = &slot{}
		t.slots[key] = s
	}
	s.latest = t.next
	return t.next
}

// Complete stores text if token is the newest for key and reports whether
// it did.
func (t *Tracker) Complete(key string, token uint64, text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.slots[key]
	if !ok || s.latest != token {
		return false
	}
	s.applied = token
	s.text = text
	return true
}

// Run brackets fn with Begin and Complete.
func (t *Tracker) Run(key string, fn func() string) Outcome {
	token := t.Begin(key)
	text := fn()
	return Outcome{Text: text, Token: token, Applied: t.Complete(key, token, text)}
}

// Result returns the latest applied result for key. ok is false when no
// request for key was ever issued.
func (t *Tracker) Result(key string) (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.slots[key]
	if !ok {
		return Result{}, false
	}
	return Result{
		Key:     key,
		Text:    s.text,
		Token:   s.applied,
		Pending: s.latest != s.applied,
	}, true
}

package generation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackerDiscardsStaleResult(t *testing.T) {
	tracker := NewTracker()

	first := tracker.Begin(PressOpportunitiesKey)
	second := tracker.Begin(PressOpportunitiesKey)
	require.Greater(t, second, first)

	// The newer request finishes first; the older one arrives late.
	require.True(t, tracker.Complete(PressOpportunitiesKey, second, "nuevo"))
	require.False(t, tracker.Complete(PressOpportunitiesKey, first, "viejo"))

	result, ok := tracker.Result(PressOpportunitiesKey)
	require.True(t, ok)
	require.Equal(t, "nuevo", result.Text)
	require.Equal(t, second, result.Token)
	require.False(t, result.Pending)
}

func TestTrackerReportsPending(t *testing.T) {
	tracker := NewTracker()

	token := tracker.Begin(SocialKey("1"))
	require.True(t, tracker.Complete(SocialKey("1"), token, "post"))
	tracker.Begin(SocialKey("1"))

	result, ok := tracker.Result(SocialKey("1"))
	require.True(t, ok)
	require.True(t, result.Pending)
	require.Equal(t, "post", result.Text)

	_, ok = tracker.Result(SocialKey("2"))
	require.False(t, ok)
}

func TestTrackerKeysAreIndependent(t *testing.T) {
	tracker := NewTracker()

	a := tracker.Begin(SocialKey("a"))
	tracker.Begin(SocialKey("b"))
	require.True(t, tracker.Complete(SocialKey("a"), a, "para a"))
}

func TestTrackerRunOverlappingCalls(t *testing.T) {
	tracker := NewTracker()
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	var slow Outcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		slow = tracker.Run(PressOpportunitiesKey, func() string {
			close(started)
			<-release
			return "lento"
		})
	}()

	<-started
	fast := tracker.Run(PressOpportunitiesKey, func() string { return "rápido" })
	close(release)
	wg.Wait()

	require.True(t, fast.Applied)
	require.False(t, slow.Applied)
	require.Equal(t, "lento", slow.Text)

	result, _ := tracker.Result(PressOpportunitiesKey)
	require.Equal(t, "rápido", result.Text)
}

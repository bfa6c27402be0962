package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/testing/leaktest"
)

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e, ok := <-c.EventChannel:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		types   string
		session string
		event   Event
		want    bool
	}{
		{"empty matches everything", "", "", Event{Type: "playback.cue", SessionID: "a"}, true},
		{"type listed", "playback.cue, playback.lane_stopped", "", Event{Type: "playback.lane_stopped"}, true},
		{"type not listed", "playback.cue", "", Event{Type: "playback.lane_stopped"}, false},
		{"session match", "", "a", Event{Type: "playback.cue", SessionID: "a"}, true},
		{"session mismatch", "", "a", Event{Type: "playback.cue", SessionID: "b"}, false},
		{"both must match", "playback.cue", "a", Event{Type: "playback.lane_tease", SessionID: "a"}, false},
		{"stray commas ignored", ",,", "", Event{Type: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFilter(tt.types, tt.session).Match(tt.event))
		})
	}
}

func TestHub_BroadcastHonoursFilters(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		hub := NewHub()
		hub.Start()
		defer hub.Stop()

		all := hub.Register(Filter{})
		onlyB := hub.Register(NewFilter("", "b"))
		waitForClients(t, hub, 2)

		hub.Broadcast(Event{Type: "playback.cue", SessionID: "a"})
		hub.Broadcast(Event{Type: "playback.cue", SessionID: "b"})

		first := receive(t, all)
		assert.Equal(t, "a", first.SessionID)
		assert.NotEmpty(t, first.ID, "ids are assigned on broadcast")
		assert.NotZero(t, first.Timestamp)
		assert.Equal(t, "b", receive(t, all).SessionID)

		assert.Equal(t, "b", receive(t, onlyB).SessionID)
		select {
		case e := <-onlyB.EventChannel:
			t.Fatalf("unexpected event %+v", e)
		default:
		}

		hub.Unregister(all.ID)
		waitForClients(t, hub, 1)
		_, ok := <-all.EventChannel
		assert.False(t, ok, "unregister closes the channel")
	})
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register(Filter{})
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Zero(t, hub.ClientCount())

	late := hub.Register(Filter{})
	_, ok = <-late.EventChannel
	assert.False(t, ok, "registering after stop yields a closed channel")
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register(NewFilter(string(event.PlaybackLaneStopped), "s1"))
	waitForClients(t, hub, 1)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewCueEvent("s1", 0, "tick")))
	require.NoError(t, bus.Publish(ctx, event.NewLaneStoppedEvent("s2", 0, event.LaneStoppedPayloadV1{Lane: 0})))
	require.NoError(t, bus.Publish(ctx, event.NewLaneStoppedEvent("s1", 1500*time.Millisecond, event.LaneStoppedPayloadV1{Lane: 1, ItemName: "Crown"})))

	got := receive(t, c)
	assert.Equal(t, string(event.PlaybackLaneStopped), got.Type)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, 1500.0, got.AtMs)
	assert.Equal(t, event.LaneStoppedPayloadV1{Lane: 1, ItemName: "Crown"}, got.Payload)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "42", Type: "playback.cue", Payload: map[string]string{"cue": "win"}})
	require.NoError(t, err)

	lines := strings.Split(string(msg), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "id: 42", lines[0])
	assert.Equal(t, "event: playback.cue", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "data: {"))
	assert.Contains(t, lines[2], `"cue":"win"`)
	assert.Empty(t, lines[3])
	assert.Empty(t, lines[4])

	_, err = FormatSSEMessage(Event{Payload: make(chan int)})
	assert.Error(t, err)
}

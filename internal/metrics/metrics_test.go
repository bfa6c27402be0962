package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/event"
)

func TestEventMetricsCollector_PlaybackEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	started := testutil.ToFloat64(SessionsStarted.WithLabelValues("battle"))
	active := testutil.ToFloat64(SessionsActive)
	stopped := testutil.ToFloat64(ReelsStopped.WithLabelValues("gold"))
	stalls := testutil.ToFloat64(WatchdogFires)
	teases := testutil.ToFloat64(TeasesFired)
	rounds := testutil.ToFloat64(RoundsScored)
	jackpots := testutil.ToFloat64(BattlesFinished.WithLabelValues("jackpot"))
	ticks := testutil.ToFloat64(CuesEmitted.WithLabelValues("tick"))
	published := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.PlaybackLaneTease)))

	events := []event.Event{
		event.NewStartedEvent("s1", 0, event.StartedPayloadV1{Kind: "battle", Lanes: 2}),
		event.NewLaneStoppedEvent("s1", 0, event.LaneStoppedPayloadV1{Lane: 0, Tier: "gold"}),
		event.NewLaneStoppedEvent("s1", 0, event.LaneStoppedPayloadV1{Lane: 1, Tier: "gold"}),
		event.NewLaneTeaseEvent("s1", 0, 1),
		event.NewLaneStalledEvent("s1", 0, 0),
		event.NewLanesStoppedEvent("s1", 0, event.LanesStoppedPayloadV1{RoundIndex: 0}),
		event.NewCueEvent("s1", 0, "tick"),
		event.NewFinishedEvent("s1", 0, event.FinishedPayloadV1{Resolution: "jackpot", Pot: 400}),
	}
	for _, e := range events {
		require.NoError(t, bus.Publish(ctx, e))
	}

	assert.Equal(t, started+1, testutil.ToFloat64(SessionsStarted.WithLabelValues("battle")))
	assert.Equal(t, active+1, testutil.ToFloat64(SessionsActive))
	assert.Equal(t, stopped+2, testutil.ToFloat64(ReelsStopped.WithLabelValues("gold")))
	assert.Equal(t, stalls+1, testutil.ToFloat64(WatchdogFires))
	assert.Equal(t, teases+1, testutil.ToFloat64(TeasesFired))
	assert.Equal(t, rounds+1, testutil.ToFloat64(RoundsScored))
	assert.Equal(t, jackpots+1, testutil.ToFloat64(BattlesFinished.WithLabelValues("jackpot")))
	assert.Equal(t, ticks+1, testutil.ToFloat64(CuesEmitted.WithLabelValues("tick")))
	assert.Equal(t, published+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.PlaybackLaneTease))))

	require.NoError(t, bus.Publish(ctx, event.NewClosedEvent("s1", 0, "finished")))
	assert.Equal(t, active, testutil.ToFloat64(SessionsActive))
}

func TestEventMetricsCollector_BadPayloadIsIgnored(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(CuesEmitted.WithLabelValues("tick"))

	err := c.HandleEvent(context.Background(), event.Event{
		Type:    event.PlaybackCue,
		Payload: map[string]interface{}{"cue": 12},
	})

	assert.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(CuesEmitted.WithLabelValues("tick")))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/playback/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/playback/{id}", "404"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/playback/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/playback/{id}", "404")))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := rw.Write([]byte("data: x\n\n"))
	require.NoError(t, err)
	rw.Flush()

	assert.True(t, rec.Flushed)
	assert.Equal(t, rec, rw.Unwrap())

	_, _, err = rw.Hijack()
	assert.Error(t, err, "recorder cannot be hijacked")
}

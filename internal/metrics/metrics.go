package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Playback Metrics
var (
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
		[]string{LabelKind},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)

	ReelsStopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReelsStopped,
			Help: HelpTextReelsStopped,
		},
		[]string{LabelTier},
	)

	WatchdogFires = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWatchdogFires,
			Help: HelpTextWatchdogFires,
		},
	)

	TeasesFired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTeasesFired,
			Help: HelpTextTeasesFired,
		},
	)

	RoundsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsScored,
			Help: HelpTextRoundsScored,
		},
	)

	BattlesFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesFinished,
			Help: HelpTextBattlesFinished,
		},
		[]string{LabelResolution},
	)

	PotValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePotValue,
			Help:    HelpTextPotValue,
			Buckets: PotBuckets,
		},
	)

	CuesEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCuesEmitted,
			Help: HelpTextCuesEmitted,
		},
		[]string{LabelCue},
	)

	CatalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheHits,
			Help: HelpTextCatalogCacheHits,
		},
		[]string{LabelResult},
	)
)

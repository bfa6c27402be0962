package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Playback metric names
const (
	MetricNameSessionsStarted  = "playback_sessions_started_total"
	MetricNameSessionsActive   = "playback_sessions_active"
	MetricNameReelsStopped     = "reels_stopped_total"
	MetricNameWatchdogFires    = "reel_watchdog_fires_total"
	MetricNameTeasesFired      = "reel_teases_total"
	MetricNameRoundsScored     = "rounds_scored_total"
	MetricNameBattlesFinished  = "battles_finished_total"
	MetricNamePotValue         = "battle_pot_value"
	MetricNameCuesEmitted      = "audio_cues_total"
	MetricNameCatalogCacheHits = "catalog_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Playback metric help text
const (
	HelpTextSessionsStarted  = "Total number of playback sessions started"
	HelpTextSessionsActive   = "Current number of live playback sessions"
	HelpTextReelsStopped     = "Total number of reels that landed on an outcome"
	HelpTextWatchdogFires    = "Total number of reels forced to stop by the watchdog"
	HelpTextTeasesFired      = "Total number of rare-item teases played"
	HelpTextRoundsScored     = "Total number of battle rounds scored"
	HelpTextBattlesFinished  = "Total number of playbacks finished, by resolution"
	HelpTextPotValue         = "Pot value of finished battles"
	HelpTextCuesEmitted      = "Total number of audio cues sent to spectators"
	HelpTextCatalogCacheHits = "Catalog pool lookups, by cache result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelKind       = "kind"
	LabelTier       = "tier"
	LabelResolution = "resolution"
	LabelCue        = "cue"
	LabelResult     = "result"
)

// Cache lookup results
const (
	CacheResultHit  = "hit"
	CacheResultMiss = "miss"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PotBuckets spans small solo openings up to whale battles
var PotBuckets = []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

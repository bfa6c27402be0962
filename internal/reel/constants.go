package reel

import "time"

// Physics, in pixels per nominal frame
const (
	DefaultAccel  = 0.5
	MaxFrameDelta = 2.0 // cap on frames elapsed per step after a hitch

	MaxSpeedHorizontal = 18.0
	MaxSpeedVertical   = 14.0
	MaxSpeedCompact    = 12.0

	ItemSizeHorizontal = 130.0
	ItemSizeVertical   = 80.0
	ItemSizeCompact    = 60.0

	// DefaultViewportItems is how many cells a default viewport shows
	DefaultViewportItems = 5
)

// Deceleration
const (
	StopDistanceFactor = 5.0
	MinStopSpeed       = 0.1 // px/ms floor so a crawling reel still stops in time
	MinStopDuration    = 2000 * time.Millisecond
	MaxStopDuration    = 6000 * time.Millisecond
)

// Track management
const (
	LookAheadPx     = 1000.0
	MinTrackAheadPx = 2000.0
	MaxStripItems   = 100 // a start beyond this rebuilds the strip
)

// Timers
const (
	DefaultTeasePause = 800 * time.Millisecond
	DefaultWatchdog   = 12 * time.Second
	DefaultLandDelay  = 50 * time.Millisecond // first frame before stopping an idle reel
)

// Log messages
const (
	LogMsgInvalidPool   = "Reel pool is empty, strip falls back to filler"
	LogMsgWatchdogFired = "Reel watchdog fired, forcing stop"
	LogMsgTeaseStarted  = "Reel landed on placeholder, teasing"
	LogMsgLaneStopped   = "Reel stopped"
	LogMsgLandIgnored   = "Reel already stopping, land ignored"
	LogMsgStartIgnored  = "Reel already moving, start ignored"
)

package reel

import (
	"math"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/frame"
)

// Density is the layout preset of a reel
type Density string

const (
	DensityHorizontal Density = "horizontal"
	DensityVertical   Density = "vertical"
	DensityCompact    Density = "compact"
)

// Viewport reports the visible length of a reel along its scroll axis
type Viewport interface {
	Size() float64
}

// FixedViewport is a viewport of constant size in pixels
type FixedViewport float64

func (v FixedViewport) Size() float64 { return float64(v) }

// Config holds the tunables of one reel
type Config struct {
	Density  Density
	ItemSize float64 // px per cell
	MaxSpeed float64 // px per nominal frame
	Accel    float64 // px per nominal frame, per frame
	Viewport Viewport

	StopFactor   float64
	MinStopSpeed float64 // px/ms
	MinStop      time.Duration
	MaxStop      time.Duration

	TeasePause time.Duration
	Watchdog   time.Duration
	LandDelay  time.Duration
}

// DefaultConfig returns the preset for a density. Unknown densities fall back
// to horizontal.
func DefaultConfig(d Density) Config {
	cfg := Config{
		Density:      DensityHorizontal,
		ItemSize:     ItemSizeHorizontal,
		MaxSpeed:     MaxSpeedHorizontal,
		Accel:        DefaultAccel,
		StopFactor:   StopDistanceFactor,
		MinStopSpeed: MinStopSpeed,
		MinStop:      MinStopDuration,
		MaxStop:      MaxStopDuration,
		TeasePause:   DefaultTeasePause,
		Watchdog:     DefaultWatchdog,
		LandDelay:    DefaultLandDelay,
	}
	switch d {
	case DensityVertical:
		cfg.Density = d
		cfg.ItemSize = ItemSizeVertical
		cfg.MaxSpeed = MaxSpeedVertical
	case DensityCompact:
		cfg.Density = d
		cfg.ItemSize = ItemSizeCompact
		cfg.MaxSpeed = MaxSpeedCompact
	}
	cfg.Viewport = FixedViewport(cfg.ItemSize * DefaultViewportItems)
	return cfg
}

// withDefaults fills zero fields from the density preset.
func (c Config) withDefaults() Config {
	def := DefaultConfig(c.Density)
	if c.Density == "" {
		c.Density = def.Density
	}
	if c.ItemSize <= 0 {
		c.ItemSize = def.ItemSize
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = def.MaxSpeed
	}
	if c.Accel <= 0 {
		c.Accel = def.Accel
	}
	if c.Viewport == nil {
		c.Viewport = FixedViewport(c.ItemSize * DefaultViewportItems)
	}
	if c.StopFactor <= 0 {
		c.StopFactor = def.StopFactor
	}
	if c.MinStopSpeed <= 0 {
		c.MinStopSpeed = def.MinStopSpeed
	}
	if c.MinStop <= 0 {
		c.MinStop = def.MinStop
	}
	if c.MaxStop < c.MinStop {
		c.MaxStop = def.MaxStop
	}
	if c.TeasePause <= 0 {
		c.TeasePause = def.TeasePause
	}
	if c.Watchdog <= 0 {
		c.Watchdog = def.Watchdog
	}
	if c.LandDelay <= 0 {
		c.LandDelay = def.LandDelay
	}
	return c
}

// StopDuration is how long the reel takes to decelerate over distance px from
// speed px/frame: distance*factor / max(speed per ms, floor), clamped.
func (c Config) StopDuration(distance, speed float64) time.Duration {
	perMs := math.Max(speed/frame.Millis(frame.Unit), c.MinStopSpeed)
	ms := (distance * c.StopFactor) / perMs
	switch {
	case math.IsNaN(ms) || ms < frame.Millis(c.MinStop):
		return c.MinStop
	case ms > frame.Millis(c.MaxStop):
		return c.MaxStop
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// EaseOutQuint is the deceleration curve
func EaseOutQuint(p float64) float64 {
	return 1 - math.Pow(1-p, 5)
}

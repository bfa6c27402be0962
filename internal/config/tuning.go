package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/reel"
)

// Tuning holds the animation tunables read from YAML. Zero values keep the
// built-in defaults.
type Tuning struct {
	Reel   ReelTuning   `yaml:"reel"`
	Battle BattleTuning `yaml:"battle"`
	Audio  AudioTuning  `yaml:"audio"`
}

// ReelTuning maps onto reel.Config
type ReelTuning struct {
	Density       string        `yaml:"density"`
	ItemSize      float64       `yaml:"item_size"`
	MaxSpeed      float64       `yaml:"max_speed"`
	Accel         float64       `yaml:"accel"`
	ViewportItems float64       `yaml:"viewport_items"`
	StopFactor    float64       `yaml:"stop_factor"`
	MinStop       time.Duration `yaml:"min_stop"`
	MaxStop       time.Duration `yaml:"max_stop"`
	TeasePause    time.Duration `yaml:"tease_pause"`
	Watchdog      time.Duration `yaml:"watchdog"`
	LandDelay     time.Duration `yaml:"land_delay"`
}

// BattleTuning maps onto battle.Config
type BattleTuning struct {
	RevealDelay      time.Duration `yaml:"reveal_delay"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	FinalSettleDelay time.Duration `yaml:"final_settle_delay"`
}

// AudioTuning overrides the cue debounce intervals
type AudioTuning struct {
	TickInterval  time.Duration `yaml:"tick_interval"`
	WinInterval   time.Duration `yaml:"win_interval"`
	TeaseInterval time.Duration `yaml:"tease_interval"`
}

// LoadTuning reads a tuning file. A missing file yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	var t Tuning
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("%s: %w", ErrContextReadTuning, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("%s: %w", ErrContextParseTuning, err)
	}
	return t, nil
}

// ReelConfig applies the reel tunables over the density preset
func (t Tuning) ReelConfig() reel.Config {
	r := t.Reel
	cfg := reel.DefaultConfig(reel.Density(r.Density))
	if r.ItemSize > 0 {
		cfg.ItemSize = r.ItemSize
		cfg.Viewport = reel.FixedViewport(r.ItemSize * reel.DefaultViewportItems)
	}
	if r.ViewportItems > 0 {
		cfg.Viewport = reel.FixedViewport(cfg.ItemSize * r.ViewportItems)
	}
	if r.MaxSpeed > 0 {
		cfg.MaxSpeed = r.MaxSpeed
	}
	if r.Accel > 0 {
		cfg.Accel = r.Accel
	}
	if r.StopFactor > 0 {
		cfg.StopFactor = r.StopFactor
	}
	if r.MinStop > 0 {
		cfg.MinStop = r.MinStop
	}
	if r.MaxStop > 0 {
		cfg.MaxStop = r.MaxStop
	}
	if r.TeasePause > 0 {
		cfg.TeasePause = r.TeasePause
	}
	if r.Watchdog > 0 {
		cfg.Watchdog = r.Watchdog
	}
	if r.LandDelay > 0 {
		cfg.LandDelay = r.LandDelay
	}
	return cfg
}

// BattleConfig returns the orchestrator timings with the tuned reel preset
func (t Tuning) BattleConfig() battle.Config {
	cfg := battle.DefaultConfig()
	cfg.Reel = t.ReelConfig()
	if t.Battle.RevealDelay > 0 {
		cfg.RevealDelay = t.Battle.RevealDelay
	}
	if t.Battle.SettleDelay > 0 {
		cfg.SettleDelay = t.Battle.SettleDelay
	}
	if t.Battle.FinalSettleDelay > 0 {
		cfg.FinalSettleDelay = t.Battle.FinalSettleDelay
	}
	return cfg
}

// ApplyAudio sets the tuned debounce intervals on d
func (t Tuning) ApplyAudio(d *audio.Debounced) *audio.Debounced {
	if t.Audio.TickInterval > 0 {
		d.WithInterval(audio.CueTick, t.Audio.TickInterval)
	}
	if t.Audio.WinInterval > 0 {
		d.WithInterval(audio.CueWin, t.Audio.WinInterval)
	}
	if t.Audio.TeaseInterval > 0 {
		d.WithInterval(audio.CueTease, t.Audio.TeaseInterval)
	}
	return d
}

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/outcome"
	"github.com/osse101/BrandishReveal_Go/internal/validation"
)

const battleJSON = `{"battle_id": 7, "winner_team_id": 0, "total_pot": 800, "rule": "classic",
	"player_teams": [0, 1],
	"rounds": [{"box_name": "Starter", "rolls": [
		{"player_index": 0, "item_name": "Rock", "item_value": 500, "tier": "gray"},
		{"player_index": 1, "item_name": "Pebble", "item_value": 300, "tier": "green"}]}]}`

const spinJSON = `{"box_name": "Starter", "item_name": "Crown", "payout": 1200, "tier": "gold"}`

func defaultOptions() options {
	return options{seed: 21, step: frame.DefaultFrameInterval, limit: 10 * time.Minute}
}

func newTestReplayer(t *testing.T, out *bytes.Buffer) (*replayer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle-7.json"), []byte(battleJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spin-11.json"), []byte(spinJSON), 0o600))
	return newReplayer(nil, outcome.NewFile(dir), config.Tuning{}, out), dir
}

func TestReplay_StoredBattle(t *testing.T) {
	var out bytes.Buffer
	r, _ := newTestReplayer(t, &out)

	opts := defaultOptions()
	opts.battleID = 7
	summary, err := r.run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, battle.ResolutionScore, summary.Resolution)
	assert.Equal(t, []int64{500, 300}, summary.Scores)

	text := out.String()
	assert.Contains(t, text, "battle lanes=2 rounds=1 rule=classic")
	assert.Contains(t, text, "lane=0 Rock (gray) 500")
	assert.Contains(t, text, "lane=1 Pebble (green) 300")
	assert.Contains(t, text, "winner=TEAM A")
	assert.NotContains(t, text, string(event.PlaybackCue), "cues are hidden by default")

	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Contains(t, lines[0], string(event.PlaybackStarted))
	assert.Contains(t, lines[len(lines)-1], string(event.PlaybackClosed))
}

func TestReplay_InlineFile(t *testing.T) {
	var out bytes.Buffer
	r, dir := newTestReplayer(t, &out)

	opts := defaultOptions()
	opts.file = filepath.Join(dir, "battle-7.json")
	summary, err := r.run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []int64{800, 0}, summary.Payouts)
}

func TestReplay_SpinsAsJSON(t *testing.T) {
	var out bytes.Buffer
	r, _ := newTestReplayer(t, &out)

	opts := defaultOptions()
	opts.spinIDs = []int64{11}
	opts.jsonOut = true
	opts.cues = true
	summary, err := r.run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, battle.ResolutionSolo, summary.Resolution)

	var types []event.Type
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var line jsonLine
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		types = append(types, line.Type)
	}
	require.NotEmpty(t, types)
	assert.Equal(t, event.PlaybackStarted, types[0])
	assert.Equal(t, event.PlaybackClosed, types[len(types)-1])
	assert.Contains(t, types, event.PlaybackLaneTease, "a gold spin teases")
	assert.Contains(t, types, event.PlaybackCue)
}

func TestReplay_Errors(t *testing.T) {
	var out bytes.Buffer
	r, _ := newTestReplayer(t, &out)
	ctx := context.Background()

	_, err := r.run(ctx, defaultOptions())
	assert.ErrorIs(t, err, errNothingToReplay)

	opts := defaultOptions()
	opts.battleID = 7
	opts.limit = 100 * time.Millisecond
	_, err = r.run(ctx, opts)
	assert.ErrorIs(t, err, errReplayStalled)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"player_teams": [], "rounds": []}`), 0o600))
	opts = defaultOptions()
	opts.file = bad
	_, err = r.run(ctx, opts)
	assert.ErrorIs(t, err, validation.ErrSchemaViolation)

	opts = defaultOptions()
	opts.file = "missing.json"
	_, err = r.run(ctx, opts)
	assert.Error(t, err)
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int64
		wantErr bool
	}{
		{"", nil, false},
		{"3", []int64{3}, false},
		{" 1, 2 ,,5", []int64{1, 2, 5}, false},
		{"1,x", nil, true},
		{"0", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseIDs(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

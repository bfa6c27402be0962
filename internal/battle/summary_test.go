package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarrier(t *testing.T) {
	fired := 0
	b := NewBarrier(3, func() { fired++ })

	assert.False(t, b.Arrive(0))
	assert.False(t, b.Arrive(0), "duplicate arrivals do not count")
	assert.False(t, b.Arrive(2))
	assert.Equal(t, 2, b.Arrived())
	assert.Equal(t, 0, fired)

	assert.True(t, b.Arrive(1))
	assert.Equal(t, 1, fired)
	assert.True(t, b.Fired())

	assert.False(t, b.Arrive(1))
	assert.False(t, b.Arrive(3))
	assert.Equal(t, 1, fired, "barrier fires exactly once")
}

func TestPayouts(t *testing.T) {
	tests := []struct {
		name     string
		teams    []int
		winner   int
		pot      int64
		refunded bool
		want     []int64
	}{
		{"1v1 winner takes all", []int{0, 1}, 0, 800, false, []int64{800, 0}},
		{"2v2 split", []int{0, 0, 1, 1}, 1, 1000, false, []int64{0, 0, 500, 500}},
		{"refund rounds down", []int{0, 1, 2}, 0, 100, true, []int64{33, 33, 33}},
		{"unknown winner", []int{0, 1}, 4, 100, false, []int64{0, 0}},
		{"no players", nil, 0, 100, false, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Payouts(tt.teams, tt.winner, tt.pot, tt.refunded))
		})
	}
}

func TestTeamScores(t *testing.T) {
	got := TeamScores([]int{1, 0, 1, 0}, []int64{10, 20, 30, 40})
	assert.Equal(t, []TeamScore{
		{TeamID: 1, Label: "TEAM B", Color: "#ef4444", Score: 40},
		{TeamID: 0, Label: "TEAM A", Color: "#6df9ff", Score: 60},
	}, got)

	short := TeamScores([]int{0, 1}, []int64{5})
	assert.Equal(t, int64(5), short[0].Score)
	assert.Equal(t, int64(0), short[1].Score)
}

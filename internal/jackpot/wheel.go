// Package jackpot animates the weighted wheel that reveals a jackpot winner.
// The winner is decided elsewhere; the wheel only has to land on it.
package jackpot

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/odds"
)

// BuildSegments lays team weights out clockwise from 0°. A wheel whose weights
// sum to zero gives every team the same width.
func BuildSegments(weights odds.Distribution) []domain.JackpotSegment {
	total := 0.0
	for _, w := range weights {
		total += math.Max(w.Weight, 0)
	}

	segments := make([]domain.JackpotSegment, 0, len(weights))
	start := 0.0
	for i, w := range weights {
		share := 1 / float64(len(weights))
		if total > 0 {
			share = math.Max(w.Weight, 0) / total
		}
		end := start + share*360
		if i == len(weights)-1 {
			end = 360
		}
		team := domain.TeamInfo(w.TeamID)
		segments = append(segments, domain.JackpotSegment{
			TeamID:   w.TeamID,
			Label:    team.Name,
			Color:    team.Color,
			Weight:   w.Weight,
			Percent:  share * 100,
			StartDeg: start,
			EndDeg:   end,
		})
		start = end
	}
	return segments
}

// PointerAngle converts a wheel rotation into the wheel angle under the fixed
// top pointer. The wheel turns clockwise so the angle runs backwards.
func PointerAngle(rotation float64) float64 {
	a := math.Mod(360-math.Mod(rotation, 360), 360)
	if a < 0 {
		a += 360
	}
	return a
}

// SegmentAt returns the index of the segment under the pointer at a rotation.
func SegmentAt(segments []domain.JackpotSegment, rotation float64) int {
	angle := PointerAngle(rotation)
	for i, s := range segments {
		if s.Contains(angle) {
			return i
		}
	}
	return 0
}

func findTeam(segments []domain.JackpotSegment, teamID int) (domain.JackpotSegment, bool) {
	for _, s := range segments {
		if s.TeamID == teamID {
			return s, true
		}
	}
	return domain.JackpotSegment{}, false
}

// Plan returns the rotation at which the pointer rests inside the winner's
// segment after FullRotations turns, jittered within the segment.
func Plan(segments []domain.JackpotSegment, winnerTeamID int, rnd *rand.Rand) (float64, error) {
	seg, ok := findTeam(segments, winnerTeamID)
	if !ok || seg.Width() <= 0 {
		return 0, fmt.Errorf("%s: team %d: %w", ErrContextPlanWheel, winnerTeamID, domain.ErrWinnerNotInWheel)
	}
	center := seg.StartDeg + seg.Width()/2
	jitter := (rnd.Float64() - 0.5) * seg.Width() * JitterFraction
	return 360*FullRotations + (360 - (center + jitter)), nil
}

// EaseOutQuart is the wheel's deceleration curve
func EaseOutQuart(p float64) float64 {
	return 1 - math.Pow(1-p, 4)
}

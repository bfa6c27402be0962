package strip

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestPick_EmptyPoolIsMystery(t *testing.T) {
	item := Pick(nil, newRand())
	assert.Equal(t, MysteryName, item.Name)
	assert.Equal(t, domain.TierGray, item.Tier)
	assert.Zero(t, item.Value)
}

func TestPick_DefaultWeight(t *testing.T) {
	// a zero weight counts as 100, so both items should be drawn about equally
	pool := []domain.PoolItem{
		{Name: "a", Tier: domain.TierGray},
		{Name: "b", Tier: domain.TierGray, Weight: 100},
	}
	rnd := newRand()
	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[Pick(pool, rnd).Name]++
	}
	assert.InDelta(t, 5000, counts["a"], 300)
	assert.InDelta(t, 5000, counts["b"], 300)
}

func TestPick_FollowsWeights(t *testing.T) {
	pool := []domain.PoolItem{
		{Name: "common", Tier: domain.TierGray, Weight: 90},
		{Name: "rare", Tier: domain.TierGold, Weight: 10},
	}
	rnd := newRand()
	rare := 0
	for i := 0; i < 10000; i++ {
		if Pick(pool, rnd).Name == "rare" {
			rare++
		}
	}
	assert.InDelta(t, 1000, rare, 150)
}

func TestGenerate(t *testing.T) {
	pool := []domain.PoolItem{
		{Name: "Crown", Tier: domain.TierGold, Weight: 50, Image: "crown.png"},
		{Name: "Rock", Tier: domain.TierGray, Weight: 50, Image: "rock.png"},
	}

	tests := []struct {
		name         string
		disableTease bool
		teased       bool
		wantDisguise bool
	}{
		{"disguises rare items before tease", false, false, true},
		{"shows rare items once teased", false, true, false},
		{"never disguises when tease disabled", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(newRand(), tt.disableTease)
			items := g.Generate(pool, 200, tt.teased)
			require.Len(t, items, 200)

			ids := map[string]bool{}
			sawRare := false
			for _, it := range items {
				assert.False(t, ids[it.ID], "strip ids must be unique")
				ids[it.ID] = true

				switch it.DisplayName {
				case PlaceholderName:
					assert.True(t, tt.wantDisguise)
					assert.True(t, it.IsPlaceholder)
					assert.Equal(t, domain.TierGold, it.Tier)
					assert.Equal(t, PlaceholderIcon, it.Icon)
					sawRare = true
				case "Crown":
					assert.False(t, tt.wantDisguise)
					assert.False(t, it.IsPlaceholder)
					sawRare = true
				case "Rock":
					assert.Equal(t, "rock.png", it.Icon)
				}
			}
			assert.True(t, sawRare)
		})
	}
}

func TestGenerate_EmptyPoolFallsBack(t *testing.T) {
	g := NewGenerator(newRand(), false)
	items := g.Generate(nil, 3, false)
	require.Len(t, items, 3)
	for _, it := range items {
		assert.Equal(t, MysteryName, it.DisplayName)
		assert.Equal(t, domain.TierGray, it.Tier)
	}
	assert.Empty(t, g.Generate(nil, 0, false))
}

func TestRarePool(t *testing.T) {
	pool := []domain.PoolItem{
		{Name: "a", Tier: domain.TierGray},
		{Name: "b", Tier: domain.TierRed},
		{Name: "c", Tier: domain.TierBlue},
		{Name: "d", Tier: domain.TierGold},
	}
	rare := RarePool(pool)
	require.Len(t, rare, 2)
	assert.Equal(t, "b", rare[0].Name)
	assert.Equal(t, "d", rare[1].Name)
	assert.Empty(t, RarePool(pool[:1]))
}

func TestGoldenPool(t *testing.T) {
	pool := []domain.PoolItem{
		{Name: "a", Weight: 10, WeightGolden: 40},
		{Name: "b", Weight: 10},
	}
	golden := GoldenPool(pool)
	assert.Equal(t, 40.0, golden[0].Weight)
	assert.Equal(t, 10.0, golden[1].Weight)
	assert.Equal(t, 10.0, pool[0].Weight, "input pool must not be modified")
}

func TestWinnerAndPlaceholder(t *testing.T) {
	g := NewGenerator(newRand(), false)

	w := g.Winner(domain.SpinOutcome{ItemName: "Crown", Tier: "legendary", Payout: 1234, ItemIcon: "crown.png"})
	assert.Equal(t, "Crown", w.DisplayName)
	assert.Equal(t, domain.TierGold, w.Tier)
	require.NotNil(t, w.Payout)
	assert.Equal(t, int64(1234), *w.Payout)
	assert.Equal(t, "+1,234", w.PayoutLabel)
	assert.False(t, w.IsPlaceholder)

	p := Placeholder()
	assert.True(t, p.IsPlaceholder)
	assert.Equal(t, PlaceholderName, p.DisplayName)
	assert.Nil(t, p.Payout)
}

func TestPayoutLabel(t *testing.T) {
	g := NewGenerator(nil, false)
	assert.Equal(t, "+0", g.PayoutLabel(0))
	assert.Equal(t, "+999", g.PayoutLabel(999))
	assert.Equal(t, "+1,000,000", g.PayoutLabel(1000000))
}

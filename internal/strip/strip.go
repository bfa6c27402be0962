// Package strip builds the decorative item strips a reel scrolls through.
// Strips never influence outcomes; the landing item always comes from the
// outcome record.
package strip

import (
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// Mystery is the degenerate item picked from an empty pool
func Mystery() domain.PoolItem {
	return domain.PoolItem{Name: MysteryName, Tier: domain.TierGray}
}

func weightOf(item domain.PoolItem) float64 {
	if item.Weight > 0 {
		return item.Weight
	}
	return DefaultWeight
}

// Pick draws one item with probability proportional to its weight.
func Pick(pool []domain.PoolItem, rnd *rand.Rand) domain.PoolItem {
	if len(pool) == 0 {
		return Mystery()
	}

	total := 0.0
	for _, item := range pool {
		total += weightOf(item)
	}

	r := rnd.Float64() * total
	for _, item := range pool {
		w := weightOf(item)
		if r < w {
			return item
		}
		r -= w
	}
	// float rounding can walk off the end
	return pool[0]
}

// RarePool filters a pool down to its top two tiers.
func RarePool(pool []domain.PoolItem) []domain.PoolItem {
	var rare []domain.PoolItem
	for _, item := range pool {
		if item.Tier.IsRare() {
			rare = append(rare, item)
		}
	}
	return rare
}

// GoldenPool returns a copy of pool weighted by the golden odds, used for
// golden spins. Items without golden odds keep their regular weight.
func GoldenPool(pool []domain.PoolItem) []domain.PoolItem {
	out := make([]domain.PoolItem, len(pool))
	for i, item := range pool {
		if item.WeightGolden > 0 {
			item.Weight = item.WeightGolden
		}
		out[i] = item
	}
	return out
}

// Generator builds strip cells from a weighted pool
type Generator struct {
	rnd          *rand.Rand
	disableTease bool
	printer      *message.Printer
}

// NewGenerator creates a generator drawing from rnd. With disableTease set rare
// items are always shown as themselves.
func NewGenerator(rnd *rand.Rand, disableTease bool) *Generator {
	if rnd == nil {
		//nolint:gosec // G404: strip filler is cosmetic, not security critical
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Generator{
		rnd:          rnd,
		disableTease: disableTease,
		printer:      message.NewPrinter(language.English),
	}
}

// TeaseDisabled reports whether the generator never disguises rare items
func (g *Generator) TeaseDisabled() bool {
	return g.disableTease
}

// Rand exposes the generator's source for callers that need matching draws
func (g *Generator) Rand() *rand.Rand {
	return g.rnd
}

// Generate draws count cells from pool. Until the lane has teased, rare items
// are disguised as the placeholder so the tease reveal stays a surprise.
func (g *Generator) Generate(pool []domain.PoolItem, count int, teased bool) []domain.StripItem {
	if count <= 0 {
		return nil
	}
	items := make([]domain.StripItem, 0, count)
	for i := 0; i < count; i++ {
		item := Pick(pool, g.rnd)
		cell := domain.StripItem{
			ID:          uuid.NewString(),
			DisplayName: item.Name,
			Tier:        domain.NormalizeTier(string(item.Tier)),
			Icon:        item.Image,
		}
		if !g.disableTease && !teased && item.Tier.IsRare() {
			cell.DisplayName = PlaceholderName
			cell.Tier = domain.TierGold
			cell.Icon = PlaceholderIcon
			cell.IsPlaceholder = true
		}
		items = append(items, cell)
	}
	return items
}

// Placeholder is the cell a lane stops on before a tease reveal.
func Placeholder() domain.StripItem {
	return domain.StripItem{
		ID:            teaseIDPrefix + uuid.NewString(),
		DisplayName:   PlaceholderName,
		Tier:          domain.TierGold,
		Icon:          PlaceholderIcon,
		IsPlaceholder: true,
	}
}

// Winner is the cell carrying the real outcome and its payout.
func (g *Generator) Winner(outcome domain.SpinOutcome) domain.StripItem {
	payout := outcome.Payout
	return domain.StripItem{
		ID:          winnerIDPrefix + uuid.NewString(),
		DisplayName: outcome.ItemName,
		Tier:        domain.NormalizeTier(string(outcome.Tier)),
		Icon:        outcome.ItemIcon,
		Payout:      &payout,
		PayoutLabel: g.PayoutLabel(payout),
	}
}

// PayoutLabel renders a payout as "+1,234".
func (g *Generator) PayoutLabel(payout int64) string {
	return g.printer.Sprintf("+%d", payout)
}

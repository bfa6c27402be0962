// Package catalog supplies the decorative item pools of boxes. Pools only feed
// strip filler; they never decide an outcome.
package catalog

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// ItemCatalog resolves a box name to its weighted pool
type ItemCatalog interface {
	Pool(ctx context.Context, boxName string) ([]domain.PoolItem, error)
}

// Box is one purchasable box
type Box struct {
	ID          int    `json:"box_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	PriceGolden int64  `json:"price_golden"`
	Image       string `json:"image,omitempty"`
}

// ItemRow is a box item as stored, before tier normalisation
type ItemRow struct {
	ItemID int    `json:"item_id"`
	Name   string `json:"item_name"`
	Value  int64  `json:"item_value"`
	Tier   string `json:"tier"`
	Image  string `json:"image,omitempty"`
}

// TierOdds is the total drop weight of a tier in a box
type TierOdds struct {
	Tier   string  `json:"tier"`
	Raw    float64 `json:"odds_raw"`
	Golden float64 `json:"odds_golden"`
}

var (
	quoteChars   = regexp.MustCompile(`['"’]`)
	punctuation  = regexp.MustCompile(`[.,!]`)
	pathSep      = regexp.MustCompile(`[/\\]`)
	whitespace   = regexp.MustCompile(`\s+`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// ImageName derives the image file of an item from its name. Hyphens are kept.
func ImageName(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	s := strings.TrimSpace(name)
	s = quoteChars.ReplaceAllString(s, "")
	s = punctuation.ReplaceAllString(s, "")
	s = pathSep.ReplaceAllString(s, "_")
	s = whitespace.ReplaceAllString(s, "_")
	s = underscoreRe.ReplaceAllString(s, "_")
	return s + imageExt
}

// BuildPool turns stored rows into a pool. A tier's odds are shared equally by
// its items; tiers without odds get DefaultTierOdds. Items are sorted by value.
func BuildPool(items []ItemRow, odds []TierOdds) []domain.PoolItem {
	tierOdds := make(map[domain.Tier]TierOdds, len(odds))
	for _, o := range odds {
		if o.Tier == "" {
			continue
		}
		tierOdds[domain.NormalizeTier(o.Tier)] = o
	}

	counts := make(map[domain.Tier]int)
	for _, it := range items {
		counts[domain.NormalizeTier(it.Tier)]++
	}

	pool := make([]domain.PoolItem, 0, len(items))
	for _, it := range items {
		tier := domain.NormalizeTier(it.Tier)
		o, ok := tierOdds[tier]
		if !ok {
			o = TierOdds{Raw: DefaultTierOdds, Golden: DefaultTierOdds}
		}
		count := float64(counts[tier])

		name := it.Name
		if name == "" {
			name = UnknownItemName
		}
		image := it.Image
		if image == "" {
			image = ImageName(it.Name)
		}

		pool = append(pool, domain.PoolItem{
			ItemID:       it.ItemID,
			Name:         name,
			Tier:         tier,
			Value:        it.Value,
			Image:        image,
			Weight:       o.Raw / count,
			WeightGolden: o.Golden / count,
		})
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Value < pool[j].Value })
	return pool
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// fileBox is one box entry of a catalog file
type fileBox struct {
	Box
	Items []ItemRow  `json:"items"`
	Odds  []TierOdds `json:"odds,omitempty"`
}

type fileCatalog struct {
	Boxes []fileBox `json:"boxes"`
}

// File is a catalog loaded once from a JSON file
type File struct {
	boxes   map[string]Box
	pools   map[string][]domain.PoolItem
	entries []fileBox
}

// LoadFile reads a catalog file of the form {"boxes": [{name, items, odds}]}
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextReadFile, err)
	}
	return ParseFile(data)
}

// ParseFile builds a catalog from file contents
func ParseFile(data []byte) (*File, error) {
	var raw fileCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextParseFile, err)
	}

	f := &File{
		boxes:   make(map[string]Box, len(raw.Boxes)),
		pools:   make(map[string][]domain.PoolItem, len(raw.Boxes)),
		entries: raw.Boxes,
	}
	for _, b := range raw.Boxes {
		f.boxes[b.Name] = b.Box
		f.pools[b.Name] = BuildPool(b.Items, b.Odds)
	}
	slog.Default().Info(LogMsgCatalogLoaded, "boxes", len(f.boxes))
	return f, nil
}

// Pool returns the pool of a box
func (f *File) Pool(_ context.Context, boxName string) ([]domain.PoolItem, error) {
	pool, ok := f.pools[boxName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBoxNotFound, boxName)
	}
	out := make([]domain.PoolItem, len(pool))
	copy(out, pool)
	return out, nil
}

// Boxes lists the boxes by ascending price
func (f *File) Boxes(_ context.Context) ([]Box, error) {
	out := make([]Box, 0, len(f.boxes))
	for _, b := range f.boxes {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

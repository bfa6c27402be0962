package outcome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// File reads outcomes from a directory holding battle-<id>.json and
// spin-<id>.json documents
type File struct {
	dir string
}

// NewFile creates a provider over dir
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Battle loads battle-<id>.json
func (f *File) Battle(_ context.Context, id int64) (*domain.BattleOutcome, error) {
	var out domain.BattleOutcome
	if err := f.read(fmt.Sprintf(battleFilePattern, id), domain.ErrBattleNotFound, &out); err != nil {
		return nil, err
	}
	if out.BattleID == 0 {
		out.BattleID = id
	}
	return &out, nil
}

// Spin loads spin-<id>.json
func (f *File) Spin(_ context.Context, id int64) (*domain.SpinOutcome, error) {
	var out domain.SpinOutcome
	if err := f.read(fmt.Sprintf(spinFilePattern, id), domain.ErrSpinNotFound, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	return &out, nil
}

func (f *File) read(name string, notFound error, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", notFound, name)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextReadOutcome, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", ErrContextParseOutcome, err)
	}
	return nil
}

package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSchemaValidator_Catalog(t *testing.T) {
	validator := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid catalog",
			data: `{"boxes": [{"box_id": 1, "name": "Starter", "price": 100,
				"items": [{"item_id": 1, "item_name": "Rock", "item_value": 5, "tier": "common"}],
				"odds": [{"tier": "common", "odds_raw": 90, "odds_golden": 50}]}]}`,
		},
		{
			name: "empty catalog",
			data: `{"boxes": []}`,
		},
		{
			name:      "missing boxes",
			data:      `{}`,
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "box without name",
			data:      `{"boxes": [{"price": 100}]}`,
			wantError: true,
			errorMsg:  "/boxes/0",
		},
		{
			name:      "negative item value",
			data:      `{"boxes": [{"name": "Starter", "items": [{"item_name": "Rock", "item_value": -1, "tier": "gray"}]}]}`,
			wantError: true,
			errorMsg:  "/boxes/0/items/0/item_value",
		},
		{
			name:      "invalid JSON",
			data:      `{"boxes": }`,
			wantError: true,
			errorMsg:  "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(tt.data), SchemaCatalog)
			if !tt.wantError {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error to contain %q, got: %v", tt.errorMsg, err)
			}
		})
	}
}

func TestSchemaValidator_Battle(t *testing.T) {
	validator := NewSchemaValidator()

	valid := `{"winner_team_id": 0, "total_pot": 800, "rule": "classic", "player_teams": [0, 1],
		"rounds": [{"box_name": "Starter", "rolls": [
			{"player_index": 0, "item_name": "Rock", "item_value": 500, "tier": "gray"}]}]}`
	if err := validator.ValidateBytes([]byte(valid), SchemaBattle); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	invalid := map[string]string{
		"unknown rule":      `{"rule": "sudden", "player_teams": [0], "rounds": []}`,
		"no players":        `{"player_teams": [], "rounds": []}`,
		"roll without tier": `{"player_teams": [0], "rounds": [{"rolls": [{"player_index": 0, "item_name": "Rock"}]}]}`,
	}
	for name, data := range invalid {
		t.Run(name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(data), SchemaBattle)
			if !errors.Is(err, ErrSchemaViolation) {
				t.Errorf("Expected a schema violation, got: %v", err)
			}
		})
	}
}

func TestSchemaValidator_Spin(t *testing.T) {
	validator := NewSchemaValidator()

	if err := validator.ValidateBytes([]byte(`{"item_name": "Crown", "payout": 900, "tier": "gold"}`), SchemaSpin); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := validator.ValidateBytes([]byte(`{"item_name": "Crown", "payout": -5, "tier": "gold"}`), SchemaSpin); err == nil {
		t.Error("Expected error for a negative payout")
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	validator := NewSchemaValidator()

	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(`{"boxes": []}`), 0644); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	if err := validator.ValidateFile(path, SchemaCatalog); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	err := validator.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), SchemaCatalog)
	if err == nil || !strings.Contains(err.Error(), "failed to read data file") {
		t.Errorf("Expected read error, got: %v", err)
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	if err == nil {
		t.Fatal("Expected error for unknown schema")
	}
	if !strings.Contains(err.Error(), "failed to load schema") {
		t.Errorf("Expected 'failed to load schema' error, got: %v", err)
	}
}

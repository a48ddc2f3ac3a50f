package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_ShippedFiles(t *testing.T) {
	v := NewSchemaValidator()

	assert.NoError(t, v.ValidateFile("../../configs/gacha_pools.yaml", SchemaGachaPools))
	assert.NoError(t, v.ValidateFile("../../configs/enchant_profiles.yaml", SchemaEnchantProfiles))
	assert.NoError(t, v.ValidateFile("../exptable/data/default.yaml", SchemaExpTable))
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		schema    string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name:   "valid pool",
			schema: SchemaGachaPools,
			data:   "pools:\n  - id: p\n    outcomes:\n      - {id: a, weight: 100}\n",
		},
		{
			name:   "json input",
			schema: SchemaGachaPools,
			data:   `{"pools":[{"id":"p","outcomes":[{"id":"a","weight":1.5,"rarity":"SS"}]}]}`,
		},
		{
			name:      "negative weight",
			schema:    SchemaGachaPools,
			data:      "pools:\n  - id: p\n    outcomes:\n      - {id: a, weight: -1}\n",
			wantError: true,
			errorMsg:  "/pools/0/outcomes/0/weight",
		},
		{
			name:      "unknown rarity",
			schema:    SchemaGachaPools,
			data:      "pools:\n  - id: p\n    outcomes:\n      - {id: a, weight: 1, rarity: SSS}\n",
			wantError: true,
			errorMsg:  "rarity",
		},
		{
			name:      "profile without slots",
			schema:    SchemaEnchantProfiles,
			data:      "profiles:\n  - id: x\n    equipment: [Plate]\n",
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "fractional slot id",
			schema:    SchemaEnchantProfiles,
			data:      "profiles:\n  - id: x\n    equipment: [Plate]\n    slots:\n      - {slot_id: 1.5, options: [{id: a, weight: 1}]}\n",
			wantError: true,
			errorMsg:  "slot_id",
		},
		{
			name:      "unknown exp table category",
			schema:    SchemaExpTable,
			data:      "early:\n  novice:\n    - {level: 1, required_exp: 9}\n",
			wantError: true,
			errorMsg:  "early",
		},
		{
			name:      "zero requirement",
			schema:    SchemaExpTable,
			data:      "mid:\n  - {level: 99, required_exp: 0}\n",
			wantError: true,
			errorMsg:  "required_exp",
		},
		{
			name:      "unparseable document",
			schema:    SchemaGachaPools,
			data:      "pools: [",
			wantError: true,
			errorMsg:  "failed to parse document",
		},
		{
			name:      "unknown schema",
			schema:    "nope",
			data:      "{}",
			wantError: true,
			errorMsg:  "unknown schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), tt.schema)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ViolationIsTyped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pools: []\n"), 0o600))

	err := NewSchemaValidator().ValidateFile(path, SchemaGachaPools)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaViolation)
	assert.Contains(t, err.Error(), path)
}

func TestSchemaValidator_MissingFile(t *testing.T) {
	err := NewSchemaValidator().ValidateFile(filepath.Join(t.TempDir(), "absent.yaml"), SchemaGachaPools)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

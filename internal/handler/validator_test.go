package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Category   string  `validate:"required,category"`
	ManualBook float64 `validate:"manualbook"`
	Level      int     `validate:"min=1,max=260"`
}

func TestValidator_Category(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		category string
		wantErr  bool
	}{
		{"pre advancement", "pre_advancement", false},
		{"doram uppercase", "DORAM", false},
		{"third class", "third_class", false},
		{"empty", "", true},
		{"unknown", "novice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(testStruct{Category: tt.category, Level: 10})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ManualBook(t *testing.T) {
	v := GetValidator()

	for _, tier := range []float64{0, 50, 100, 200} {
		assert.NoError(t, v.ValidateStruct(testStruct{Category: "doram", ManualBook: tier, Level: 1}))
	}
	assert.Error(t, v.ValidateStruct(testStruct{Category: "doram", ManualBook: 75, Level: 1}))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(testStruct{Category: "novice", ManualBook: 10, Level: 0})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid character category", fields["category"])
	assert.Equal(t, "Manual book must be 0, 50, 100 or 200", fields["manualbook"])
	assert.Equal(t, "Must be at least 1", fields["level"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, "Invalid request format", FormatValidationError(assert.AnError)["error"])
}

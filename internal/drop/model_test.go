package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidItemType(t *testing.T) {
	assert.True(t, ValidItemType("Dagger"))
	assert.True(t, ValidItemType("2h sword"))
	assert.False(t, ValidItemType("dagger"), "tags are case sensitive")
	assert.False(t, ValidItemType("Shield"))
	assert.False(t, ValidItemType(""))
}

func TestValidateRolls(t *testing.T) {
	tests := []struct {
		name          string
		mainRoll      int
		secondaryRoll int
		wantErr       bool
	}{
		{"both in range", 0, 0, false},
		{"bounds", -5, 1, false},
		{"upper bounds", 5, -1, false},
		{"main too low", -6, 0, true},
		{"main too high", 6, 0, true},
		{"secondary too low", 0, -2, true},
		{"secondary too high", 0, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRolls(tt.mainRoll, tt.secondaryRoll)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRollOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

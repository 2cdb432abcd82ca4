package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swatch struct {
	Name  string `validate:"required"`
	Color string `validate:"required,hexrgb"`
}

func TestHexRGB(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#d97706", true},
		{"d97706", true},
		{"#D97706", true},
		{"#d9770", false},
		{"#d977066", false},
		{"#g97706", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			errs := Struct(swatch{Name: "x", Color: tt.color})
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "Color", errs[0].Field)
			}
		})
	}
}

func TestStructReportsEveryField(t *testing.T) {
	errs := Struct(swatch{})
	require.Len(t, errs, 2)
	assert.Equal(t, "Name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "Color", errs[1].Field)
}

func TestInstanceIsShared(t *testing.T) {
	assert.Same(t, Instance(), Instance())
}

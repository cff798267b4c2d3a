package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits only", "6266271703", "6266271703"},
		{"dashes", "626-627-1703", "6266271703"},
		{"parens and spaces", "(626) 627 1703", "6266271703"},
		{"country code", "+1 626 627 1703", "16266271703"},
		{"letters stripped", "call 626x627x1703", "6266271703"},
		{"empty", "", ""},
		{"no digits", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeLast10(t *testing.T) {
	t.Run("exactly ten digits", func(t *testing.T) {
		got, ok := NormalizeLast10("626-627-1703")
		assert.True(t, ok)
		assert.Equal(t, "6266271703", got)
	})

	t.Run("country code trimmed to last ten", func(t *testing.T) {
		got, ok := NormalizeLast10("+1 (626) 627-1703")
		assert.True(t, ok)
		assert.Equal(t, "6266271703", got)
	})

	t.Run("too short", func(t *testing.T) {
		got, ok := NormalizeLast10("627-1703")
		assert.False(t, ok)
		assert.Equal(t, "6271703", got)
	})

	t.Run("empty", func(t *testing.T) {
		got, ok := NormalizeLast10("")
		assert.False(t, ok)
		assert.Empty(t, got)
	})
}

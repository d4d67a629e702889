package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", CleanEmail("  Asha@Example.COM "))
	assert.Equal(t, "", CleanEmail("   "))
}

func TestCleanIssues(t *testing.T) {
	assert.Equal(t, []string{"Screen", "Battery"}, CleanIssues([]string{" Screen ", "", "  ", "Battery"}))
	assert.Empty(t, CleanIssues(nil))
}

func TestFiniteOrNil(t *testing.T) {
	v := 12.5
	assert.Equal(t, &v, FiniteOrNil(&v))

	nan := math.NaN()
	assert.Nil(t, FiniteOrNil(&nan))

	inf := math.Inf(1)
	assert.Nil(t, FiniteOrNil(&inf))

	assert.Nil(t, FiniteOrNil(nil))
}

func TestNormalizePhoneForWhatsApp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already international", "+91 98765 43210", "+919876543210"},
		{"local gets country code", "98765-43210", "+919876543210"},
		{"formatting stripped", "(987) 654 3210", "+919876543210"},
		{"empty", "   ", ""},
		{"no digits", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhoneForWhatsApp(tt.input, "+91"))
		})
	}
}

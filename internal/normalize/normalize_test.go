package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "PIZZA", "pizza"},
		{"trims whitespace", "  sushi \n", "sushi"},
		{"strips polish diacritics", "Łódź", "lodz"},
		{"strips combining marks", "żółć", "zolc"},
		{"strips accents", "café", "cafe"},
		{"plain ascii unchanged", "penguin", "penguin"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}

func TestFold_GuessMatchesSecret(t *testing.T) {
	// Given: a guess with diacritics and mixed case, and an ascii secret
	guess := "Łódź"
	secret := "lodz"

	// Then: they fold to the same canonical form
	assert.Equal(t, Fold(secret), Fold(guess))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound8(t *testing.T) {
	testCases := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"exact conversion", 100 * 0.9, 90.0},
		{"truncates past eight decimals", 0.123456789, 0.12345679},
		{"keeps eight decimals", 0.00000001, 0.00000001},
		{"drops sub-precision noise", 0.1 + 0.2, 0.3},
		{"zero", 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Round8(tc.input))
		})
	}
}

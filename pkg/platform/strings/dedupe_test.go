package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  sui ", "move  ", "  xyz"},
			expected: []string{"sui", "move", "xyz"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"sui", "move", "sui", "xyz", "move"},
			expected: []string{"sui", "move", "xyz"},
		},
		{
			name:     "drops empty elements from a sloppy env list",
			input:    []string{"sui", "", "  ", "move"},
			expected: []string{"sui", "move"},
		},
		{
			name:     "is case sensitive",
			input:    []string{"Sui", "sui", "SUI"},
			expected: []string{"Sui", "sui", "SUI"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

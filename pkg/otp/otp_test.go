package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGOTPGenerator_Generate(t *testing.T) {
	g := NewGOTPGenerator(6)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code := g.Generate()
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "non digit in %q", code)
		}
		seen[code] = struct{}{}
	}

	// 200 draws out of 10^6 should practically never collide much
	assert.Greater(t, len(seen), 190)
}

func TestGOTPGenerator_LengthBounds(t *testing.T) {
	assert.Len(t, NewGOTPGenerator(0).Generate(), DefaultLength)
	assert.Len(t, NewGOTPGenerator(12).Generate(), DefaultLength)
	assert.Len(t, NewGOTPGenerator(8).Generate(), 8)
	assert.Len(t, NewGOTPGenerator(4).Generate(), 4)
}

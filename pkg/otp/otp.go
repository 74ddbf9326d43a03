package otp

import (
	"github.com/xlzd/gotp"
)

const (
	DefaultLength = 6
	MinLength     = 4
	MaxLength     = 8

	secretLength = 32
)

// Generator produces numeric one-time codes.
type Generator interface {
	Generate() string
}

// Hasher turns codes into digests that are safe to store.
type Hasher interface {
	Hash(code string) string
	Verify(code string, digest string) bool
}

// GOTPGenerator derives each code from a one-shot HOTP over a fresh random
// secret, which gives 10^length equiprobable outcomes up to truncation bias.
type GOTPGenerator struct {
	length int
}

func NewGOTPGenerator(length int) *GOTPGenerator {
	if length < MinLength || length > MaxLength {
		length = DefaultLength
	}
	return &GOTPGenerator{length: length}
}

func (g *GOTPGenerator) Generate() string {
	return gotp.NewHOTP(gotp.RandomSecret(secretLength), g.length, nil).At(0)
}

package generator

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of symbols a short code is drawn from.
	Alphabet = "0123456789abcdef"
	// CodeLength is the fixed number of symbols in a short code (24 bits).
	CodeLength = 6
)

// Random draws codes from crypto/rand through go-nanoid.
type Random struct{}

// New returns the default short code generator.
func New() Random {
	return Random{}
}

// Generate returns a random CodeLength-symbol lowercase hex code.
func (Random) Generate() (string, error) {
	code, err := gonanoid.Generate(Alphabet, CodeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate short code: %w", err)
	}
	return code, nil
}

// Func adapts a plain function into a code generator.
type Func func() (string, error)

func (f Func) Generate() (string, error) {
	return f()
}

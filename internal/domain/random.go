package domain

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the randomness provider for die faces.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// NewSource returns a pseudo-random source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// rollDie returns a face in 1..NumSides.
func rollDie(src Source) int {
	return src.Intn(NumSides) + 1
}

package main

import (
	"math/rand"
	"time"
)

// labelCharset is the letter-digit-hyphen alphabet of a DNS label
const labelCharset = "0123456789abcdefghijklmnopqrstuvwxyz-"

// newRandomSource returns the random source for a run
func newRandomSource(config *Config) *rand.Rand {
	seed := config.Seed
	if !config.Seeded {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomLabel creates a label of random length between 1 and maxSize.
//
// Hyphens are allowed anywhere, so the label may start or end with one.
func RandomLabel(rng *rand.Rand, maxSize int) string {
	length := rng.Intn(maxSize) + 1
	result := make([]byte, length)

	for i := range result {
		result[i] = labelCharset[rng.Intn(len(labelCharset))]
	}

	return string(result)
}

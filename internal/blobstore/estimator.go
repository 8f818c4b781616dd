package blobstore

import "math/rand"

const (
	minEstimate = 512 * 1024
	maxEstimate = 5632 * 1024
)

// RandomSizeEstimator reports plausible file sizes between 0.5 and 5.5 MB.
// The demo deployment records no real payloads, so sizes are cosmetic.
type RandomSizeEstimator struct {
	rng *rand.Rand
}

func NewRandomSizeEstimator(seed int64) *RandomSizeEstimator {
	return &RandomSizeEstimator{rng: rand.New(rand.NewSource(seed))}
}

func (e *RandomSizeEstimator) Estimate() int64 {
	return minEstimate + e.rng.Int63n(maxEstimate-minEstimate)
}

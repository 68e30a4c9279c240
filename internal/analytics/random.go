package analytics

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource is the randomness consumed by the Monte Carlo simulators.
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRandomSource returns a seeded source. A zero seed falls back to the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// LockedSource serializes access to a RandomSource shared between goroutines
type LockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedSource wraps src. A source that is already locked is returned as is.
func NewLockedSource(src RandomSource) RandomSource {
	if locked, ok := src.(*LockedSource); ok {
		return locked
	}
	return &LockedSource{src: src}
}

// Float64 implements RandomSource
func (l *LockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Intn implements RandomSource
func (l *LockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

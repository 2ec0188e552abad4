// Package pools reduces GC pressure on hot simulation paths by reusing
// sample buffers across runs.
package pools

import (
	"sync"
)

// Buffer size classes for sample slices, chosen to match common iteration
// counts. Buffers above MaxPooled are not pooled.
const (
	SmallRun  = 1_000
	MediumRun = 10_000
	LargeRun  = 100_000
	MaxPooled = LargeRun
)

// SamplePool provides size-class based pooling for float64 sample slices.
type SamplePool struct {
	small  sync.Pool // cap <= 1k samples
	medium sync.Pool // cap <= 10k samples
	large  sync.Pool // cap <= 100k samples
}

// NewSamplePool creates a sample pool with lazily allocated buffers.
func NewSamplePool() *SamplePool {
	return &SamplePool{
		small: sync.Pool{
			New: func() any {
				b := make([]float64, 0, SmallRun)
				return &b
			},
		},
		medium: sync.Pool{
			New: func() any {
				b := make([]float64, 0, MediumRun)
				return &b
			},
		},
		large: sync.Pool{
			New: func() any {
				b := make([]float64, 0, LargeRun)
				return &b
			},
		},
	}
}

// Get returns a zeroed slice of the requested length. Requests above
// MaxPooled are allocated directly and will not be pooled on Put.
func (p *SamplePool) Get(n int) []float64 {
	if n > MaxPooled {
		return make([]float64, n)
	}

	bp := p.classFor(n).Get().(*[]float64)
	if cap(*bp) < n {
		// A smaller buffer was Put into this class; don't reuse it here.
		return make([]float64, n)
	}
	buf := (*bp)[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Put returns a slice to the pool. Oversized slices are dropped.
func (p *SamplePool) Put(buf []float64) {
	c := cap(buf)
	if c == 0 || c > MaxPooled {
		return
	}
	b := buf[:0]
	p.classFor(c).Put(&b)
}

func (p *SamplePool) classFor(n int) *sync.Pool {
	switch {
	case n <= SmallRun:
		return &p.small
	case n <= MediumRun:
		return &p.medium
	default:
		return &p.large
	}
}

// defaultPool backs the package-level helpers.
var defaultPool = NewSamplePool()

// GetSamples returns a zeroed sample slice from the shared pool.
func GetSamples(n int) []float64 {
	return defaultPool.Get(n)
}

// PutSamples returns a sample slice to the shared pool.
func PutSamples(buf []float64) {
	defaultPool.Put(buf)
}

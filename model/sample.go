package model

import (
	"sync"
	"time"
)

// Sample is a single timestamped gateway/host measurement.
type Sample struct {
	TakenAt     time.Time
	HeartbeatMS float64
	CPUPercent  float64
}

// SampleBuffer is a fixed-capacity ring of samples. The oldest entry is
// evicted on overflow.
type SampleBuffer struct {
	mu       sync.Mutex
	capacity int
	samples  []Sample
}

func NewSampleBuffer(capacity int) *SampleBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &SampleBuffer{capacity: capacity}
}

func (b *SampleBuffer) Push(s Sample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) == b.capacity {
		copy(b.samples, b.samples[1:])
		b.samples[len(b.samples)-1] = s
		return
	}
	b.samples = append(b.samples, s)
}

func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Snapshot returns a copy of the buffered samples, oldest first.
func (b *SampleBuffer) Snapshot() []Sample {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// Latest returns the most recent sample, if any.
func (b *SampleBuffer) Latest() (Sample, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) == 0 {
		return Sample{}, false
	}
	return b.samples[len(b.samples)-1], true
}

package model

import (
	"testing"
	"time"
)

func TestSampleBufferEvictsOldest(t *testing.T) {
	buf := NewSampleBuffer(3)
	base := time.Now()
	for i := 0; i < 5; i++ {
		buf.Push(Sample{TakenAt: base.Add(time.Duration(i) * time.Minute), HeartbeatMS: float64(i)})
	}

	if buf.Len() != 3 {
		t.Fatalf("expected capacity-bounded length 3, got %d", buf.Len())
	}
	samples := buf.Snapshot()
	if samples[0].HeartbeatMS != 2 || samples[2].HeartbeatMS != 4 {
		t.Fatalf("expected oldest samples evicted, got %+v", samples)
	}
}

func TestSampleBufferLatest(t *testing.T) {
	buf := NewSampleBuffer(2)
	if _, ok := buf.Latest(); ok {
		t.Fatal("empty buffer must report no latest sample")
	}
	buf.Push(Sample{HeartbeatMS: 10})
	buf.Push(Sample{HeartbeatMS: 20})
	latest, ok := buf.Latest()
	if !ok || latest.HeartbeatMS != 20 {
		t.Fatalf("expected latest sample 20, got %+v (ok=%v)", latest, ok)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	buf := NewSampleBuffer(2)
	buf.Push(Sample{HeartbeatMS: 10})
	snap := buf.Snapshot()
	snap[0].HeartbeatMS = 99

	latest, _ := buf.Latest()
	if latest.HeartbeatMS != 10 {
		t.Fatal("mutating a snapshot must not affect the buffer")
	}
}

package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "transcribe") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0, "transcribe") {
		t.Fatal("first event should log")
	}
	if s.ShouldLog(4, "transcribe") {
		t.Fatal("same bucket should not log")
	}
	if !s.ShouldLog(12, "transcribe") {
		t.Fatal("new bucket should log")
	}
	if s.ShouldLog(5, "transcribe") {
		t.Fatal("going backwards should not log")
	}
	if !s.ShouldLog(150, "transcribe") {
		t.Fatal("completion should log")
	}
	if s.ShouldLog(100, "transcribe") {
		t.Fatal("completion should only log once")
	}
	if !s.ShouldLog(-1, "export") {
		t.Fatal("stage change should log even with unknown percent")
	}
	if s.ShouldLog(-1, "export") {
		t.Fatal("unknown percent in same stage should not log")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(5)
	s.ShouldLog(50, "transcribe")
	s.Reset()
	if !s.ShouldLog(50, "transcribe") {
		t.Fatal("expected log after reset")
	}
}

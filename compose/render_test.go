package compose

import (
	"testing"
)

func TestPartitionTwoWorkers(t *testing.T) {
	// Ten frames across two workers split into equal halves in order.
	spans := partition(10, 2)
	want := []span{{From: 0, To: 5}, {From: 5, To: 10}}
	if len(spans) != len(want) {
		t.Fatalf("partition(10, 2) = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestPartitionRemainder(t *testing.T) {
	// Early chunks absorb the remainder so sizes differ by at most one.
	spans := partition(10, 3)
	if len(spans) != 3 {
		t.Fatalf("partition(10, 3) produced %d spans, want 3", len(spans))
	}
	want := []span{{From: 0, To: 4}, {From: 4, To: 7}, {From: 7, To: 10}}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestPartitionCoversRangeContiguously(t *testing.T) {
	tests := []struct {
		name    string
		frames  int
		workers int
	}{
		{"one worker", 123, 1},
		{"even split", 120, 8},
		{"uneven split", 121, 8},
		{"more workers than frames", 3, 16},
		{"single frame", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := partition(tt.frames, tt.workers)
			if len(spans) == 0 {
				t.Fatal("no spans produced")
			}
			if len(spans) > tt.workers {
				t.Errorf("produced %d spans for %d workers", len(spans), tt.workers)
			}
			prev := 0
			total := 0
			for i, sp := range spans {
				if sp.From != prev {
					t.Errorf("span %d starts at %d, want %d", i, sp.From, prev)
				}
				if sp.frames() < 1 {
					t.Errorf("span %d is empty: %v", i, sp)
				}
				prev = sp.To
				total += sp.frames()
			}
			if total != tt.frames {
				t.Errorf("spans cover %d frames, want %d", total, tt.frames)
			}
			// No two chunk sizes differ by more than one frame.
			minSize, maxSize := spans[0].frames(), spans[0].frames()
			for _, sp := range spans[1:] {
				minSize = min(minSize, sp.frames())
				maxSize = max(maxSize, sp.frames())
			}
			if maxSize-minSize > 1 {
				t.Errorf("chunk sizes range from %d to %d frames", minSize, maxSize)
			}
		})
	}
}

func TestPartitionDegenerate(t *testing.T) {
	if spans := partition(0, 4); spans != nil {
		t.Errorf("partition(0, 4) = %v, want nil", spans)
	}
	if spans := partition(10, 0); spans != nil {
		t.Errorf("partition(10, 0) = %v, want nil", spans)
	}
	if spans := partition(-5, 2); spans != nil {
		t.Errorf("partition(-5, 2) = %v, want nil", spans)
	}
}

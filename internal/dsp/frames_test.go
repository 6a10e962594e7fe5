package dsp

import "testing"

func TestNumFrames(t *testing.T) {
	cases := []struct {
		nSamples int
		want     int
	}{
		{0, 0},
		{SamplesPerFrame - 1, 0},
		{SamplesPerFrame, 1},
		{SamplesPerFrame + IntervalBetweenFrames, 2},
		{SamplesPerFrame + IntervalBetweenFrames*9, 10},
	}
	for _, c := range cases {
		if got := NumFrames(c.nSamples); got != c.want {
			t.Errorf("NumFrames(%d) = %d, want %d", c.nSamples, got, c.want)
		}
	}
}

func TestBuildFrameBinsTooSmall(t *testing.T) {
	_, err := BuildFrameBins(make([]float32, SamplesPerFrame-1))
	if err == nil {
		t.Fatal("expected an error for input shorter than one frame")
	}
}

func TestBuildFrameBinsShape(t *testing.T) {
	nSamples := SamplesPerFrame + IntervalBetweenFrames*4
	samples := make([]float32, nSamples)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}

	bins, err := BuildFrameBins(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nFrames := NumFrames(nSamples)
	if len(bins) != nFrames*NumberOfBins {
		t.Fatalf("bins length = %d, want %d", len(bins), nFrames*NumberOfBins)
	}
}

package dsp

import (
	"math"
	"sync"
)

var (
	hannWindowOnce  sync.Once
	hannWindowTable [SamplesPerFrame]float32
)

func buildHannWindow() {
	for n := 0; n < SamplesPerFrame; n++ {
		hannWindowTable[n] = float32(0.5 * (1 - math.Cos(2*math.Pi*float64(n)/float64(SamplesPerFrame-1))))
	}
}

// HannWindow returns the shared, lazily-initialized SamplesPerFrame-long
// Hann window used to mitigate spectral leakage before each frame's FFT.
func HannWindow() [SamplesPerFrame]float32 {
	hannWindowOnce.Do(buildHannWindow)
	return hannWindowTable
}

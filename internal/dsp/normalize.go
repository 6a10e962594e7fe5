package dsp

import "math"

const (
	rmsScale = 10.0
	rmsMin   = 0.1
	rmsMax   = 3.0
)

// Normalize applies RMS-based amplitude normalization to samples in
// place, per spec.md §4.2. The 10x scale and the [0.1, 3.0] clamp bounds
// are canonical: any divergence changes every fingerprint downstream.
func Normalize(samples []float32) {
	var squareSum float64
	for _, s := range samples {
		squareSum += float64(s) * float64(s)
	}

	rms := math.Sqrt(squareSum/float64(len(samples))) * rmsScale
	if rms < rmsMin {
		rms = rmsMin
	} else if rms > rmsMax {
		rms = rmsMax
	}

	for i, s := range samples {
		v := float32(float64(s) / rms)
		if v < -1.0 {
			v = -1.0
		} else if v > 1.0 {
			v = 1.0
		}
		samples[i] = v
	}
}

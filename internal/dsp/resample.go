package dsp

import (
	"math"
	"sync"
)

// lowPassFilterTaps is the width of the windowed-sinc low-pass filter
// used by Resample, expressed as taps from -15 to 15 inclusive.
const lowPassFilterTaps = 31

var (
	lowPassFilterOnce  sync.Once
	lowPassFilterTable [lowPassFilterTaps]float32
)

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func blackmanWindow(x float64) float64 {
	return 0.42 - 0.5*math.Cos(2*math.Pi*(x+15)/30) + 0.08*math.Cos(4*math.Pi*(x+15)/30)
}

// buildLowPassFilter lazily initializes the 31-tap windowed-sinc low-pass
// filter used to avoid aliasing when decimating from 44100Hz to 5512Hz.
// See spec.md §4.1: c(x) = 0.125 * sinc(0.125*x) * blackman(x) for integer
// taps x in [-15, 15].
func buildLowPassFilter() {
	for x := -15; x <= 15; x++ {
		lowPassFilterTable[x+15] = float32(0.125 * sinc(0.125*float64(x)) * blackmanWindow(float64(x)))
	}
}

// lowPassFilter returns the shared, lazily-initialized low-pass filter
// table. Safe to call concurrently: sync.Once guards the first build,
// after which the table is read-only.
func lowPassFilter() [lowPassFilterTaps]float32 {
	lowPassFilterOnce.Do(buildLowPassFilter)
	return lowPassFilterTable
}

// Resample decimates samples44100Hz (mono float32 in [-1,1]) by
// DecimationFactor down to CoreSampleRate, applying the low-pass filter to
// avoid aliasing. Output sample i is the sum over j in [0,31) of
// input[8i+j] * filter[j], with out-of-range taps contributing zero.
func Resample(samples44100Hz []float32) []float32 {
	filter := lowPassFilter()

	n := len(samples44100Hz) / DecimationFactor
	out := make([]float32, n)

	for i := 0; i < n; i++ {
		start := i * DecimationFactor
		var sum float32
		for j := 0; j < lowPassFilterTaps && start+j < len(samples44100Hz); j++ {
			sum += samples44100Hz[start+j] * filter[j]
		}
		out[i] = sum
	}

	return out
}

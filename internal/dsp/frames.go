package dsp

import "github.com/media-luna/eureka/internal/errs"

// NumFrames returns the number of frames obtainable from nSamples
// samples, per spec.md §3: 1 + floor((nSamples - SamplesPerFrame) /
// IntervalBetweenFrames).
func NumFrames(nSamples int) int {
	if nSamples < SamplesPerFrame {
		return 0
	}
	return 1 + (nSamples-SamplesPerFrame)/IntervalBetweenFrames
}

// BuildFrameBins slides SamplesPerFrame-wide Hann-windowed frames over
// samples every IntervalBetweenFrames samples, FFTs each frame and folds
// it into NumberOfBins log-spaced bins. The result is a flat array of
// NumFrames(len(samples)) * NumberOfBins float32, one NumberOfBins-wide
// row per frame (spec.md §4.3).
//
// Frame computation is embarrassingly parallel: each worker owns a
// disjoint, contiguous range of frame indices and its own scratch
// buffers, so there is no shared mutable state between workers
// (spec.md §5).
func BuildFrameBins(samples []float32) ([]float32, error) {
	nFrames := NumFrames(len(samples))
	if nFrames == 0 {
		return nil, errs.New(errs.KindInputTooSmall, "fewer than one frame of audio samples")
	}

	bins := make([]float32, nFrames*NumberOfBins)
	hann := HannWindow()

	parallelRange(nFrames, func(first, last int) {
		windowed := make([]float32, SamplesPerFrame)
		real := make([]float32, SamplesPerFrame)
		imaginary := make([]float32, SamplesPerFrame)

		for i := first; i <= last; i++ {
			start := i * IntervalBetweenFrames
			for j := 0; j < SamplesPerFrame; j++ {
				windowed[j] = samples[start+j] * hann[j]
			}
			FFT(windowed, real, imaginary)
			CalculateBins(real, imaginary, bins[i*NumberOfBins:(i+1)*NumberOfBins])
		}
	})

	return bins, nil
}

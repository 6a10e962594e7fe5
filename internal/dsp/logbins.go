package dsp

import (
	"math"
	"sync"
)

var (
	binIndexOnce  sync.Once
	binIndexTable [NumberOfBins + 1]uint16
)

// frequencyToIndex maps a frequency in (0, CoreSampleRate/2] to the
// nearest FFT coefficient index, clamped to [1, SamplesPerFrame/2].
// frequency = CoreSampleRate * index / SamplesPerFrame, so
// index = round(frequency * SamplesPerFrame / CoreSampleRate).
func frequencyToIndex(frequency float64) uint16 {
	index := int(math.Round(float64(SamplesPerFrame/2) * frequency / (float64(CoreSampleRate) / 2)))
	if index < 1 {
		return 1
	}
	if index > SamplesPerFrame/2 {
		return SamplesPerFrame / 2
	}
	return uint16(index)
}

func buildBinIndexTable() {
	logMin := math.Log2(float64(MinimumFrequency))
	logMax := math.Log2(float64(MaximumFrequency))
	delta := (logMax - logMin) / NumberOfBins

	current := logMin
	for i := 0; i <= NumberOfBins; i++ {
		frequency := math.Pow(2, current)
		current += delta
		binIndexTable[i] = frequencyToIndex(frequency)
	}
}

// BinIndexTable returns the shared, lazily-initialized table of
// NumberOfBins+1 FFT-coefficient boundaries used to fold an FFT result
// into NumberOfBins logarithmic bins between MinimumFrequency and
// MaximumFrequency.
func BinIndexTable() [NumberOfBins + 1]uint16 {
	binIndexOnce.Do(buildBinIndexTable)
	return binIndexTable
}

// CalculateBins folds the real/imaginary FFT output of one frame into
// NumberOfBins log-spaced power bins, per spec.md §4.3: bin b is the mean
// over its FFT-index range of ((re/1024)^2 + (im/1024)^2).
func CalculateBins(real, imaginary []float32, bins []float32) {
	indexes := BinIndexTable()

	for i := 0; i < NumberOfBins; i++ {
		minIndex := indexes[i]
		maxIndex := indexes[i+1]

		var sum float32
		for j := minIndex; j < maxIndex; j++ {
			re := real[j] / 1024.0
			im := imaginary[j] / 1024.0
			sum += re*re + im*im
		}
		bins[i] = sum / float32(maxIndex-minIndex)
	}
}

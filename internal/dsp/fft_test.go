package dsp

import (
	"math"
	"testing"
)

func TestBitReversalTableIsInvolution(t *testing.T) {
	table := BitReversalTable()
	for i, r := range table {
		if int(table[r]) != i {
			t.Fatalf("bit reversal not involutive at %d: reverse=%d, reverse(reverse)=%d", i, r, table[r])
		}
	}
}

func TestFFTConstantSignalIsDCOnly(t *testing.T) {
	source := make([]float32, SamplesPerFrame)
	for i := range source {
		source[i] = 1.0
	}
	real := make([]float32, SamplesPerFrame)
	imaginary := make([]float32, SamplesPerFrame)
	FFT(source, real, imaginary)

	if math.Abs(float64(real[0])-float64(SamplesPerFrame)) > 1e-2 {
		t.Fatalf("DC bin real = %v, want ~%d", real[0], SamplesPerFrame)
	}
	for k := 1; k < SamplesPerFrame; k++ {
		if math.Abs(float64(real[k])) > 1e-2 || math.Abs(float64(imaginary[k])) > 1e-2 {
			t.Fatalf("bin %d = (%v, %v), want (0,0) for a constant signal", k, real[k], imaginary[k])
		}
	}
}

func TestFFTSingleToneHasEnergyAtExpectedBin(t *testing.T) {
	const cyclesPerFrame = 16
	source := make([]float32, SamplesPerFrame)
	for i := range source {
		source[i] = float32(math.Sin(2 * math.Pi * cyclesPerFrame * float64(i) / float64(SamplesPerFrame)))
	}
	real := make([]float32, SamplesPerFrame)
	imaginary := make([]float32, SamplesPerFrame)
	FFT(source, real, imaginary)

	energy := func(k int) float64 {
		return float64(real[k])*float64(real[k]) + float64(imaginary[k])*float64(imaginary[k])
	}

	peakEnergy := energy(cyclesPerFrame)
	for k := 1; k < SamplesPerFrame/2; k++ {
		if k == cyclesPerFrame {
			continue
		}
		if energy(k) > peakEnergy {
			t.Fatalf("bin %d has more energy (%v) than the tone's bin %d (%v)", k, energy(k), cyclesPerFrame, peakEnergy)
		}
	}
}

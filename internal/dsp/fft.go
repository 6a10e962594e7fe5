package dsp

import (
	"math"
	"sync"
)

var (
	bitReversalOnce  sync.Once
	bitReversalTable [SamplesPerFrame]uint16
)

// reverseBits reverses the rightmost 11 bits of n (SamplesPerFrame=2048
// needs 11 bits of index).
func reverseBits(n uint16) uint16 {
	var res uint16
	for i := 0; i < 11; i++ {
		if n&(1<<uint(i)) != 0 {
			res |= 1 << uint(10-i)
		}
	}
	return res
}

func buildBitReversalTable() {
	for i := 0; i < SamplesPerFrame; i++ {
		bitReversalTable[i] = reverseBits(uint16(i))
	}
}

// BitReversalTable returns the shared, lazily-initialized 11-bit
// bit-reversal permutation table used by the in-place FFT.
func BitReversalTable() [SamplesPerFrame]uint16 {
	bitReversalOnce.Do(buildBitReversalTable)
	return bitReversalTable
}

// FFT computes the in-place radix-2 Cooley-Tukey transform of the
// SamplesPerFrame real-valued source samples, writing the real and
// imaginary parts of the SamplesPerFrame complex coefficients into real
// and imaginary (both must be pre-allocated with length SamplesPerFrame).
//
// Implemented by hand rather than via a general-purpose FFT library: the
// exact bit-reversal permutation and butterfly order are part of the
// fingerprint format (spec.md §4.3, §6), not an implementation detail.
func FFT(source []float32, real, imaginary []float32) {
	reversed := BitReversalTable()

	for i := 0; i < SamplesPerFrame; i++ {
		real[i] = source[i]
		imaginary[i] = 0
	}

	for k := 0; k < SamplesPerFrame; k++ {
		j := reversed[k]
		if int(j) > k {
			real[j], real[k] = real[k], real[j]
			imaginary[j], imaginary[k] = imaginary[k], imaginary[j]
		}
	}

	for l := 2; l <= SamplesPerFrame; l *= 2 {
		for k := 0; k < l/2; k++ {
			kth := -2.0 * float64(k) * math.Pi / float64(l)
			wReal := float32(math.Cos(kth))
			wImaginary := float32(math.Sin(kth))

			for j := 0; j < SamplesPerFrame/l; j++ {
				index := j*l + k + l/2
				taoReal := wReal*real[index] - wImaginary*imaginary[index]
				taoImaginary := wReal*imaginary[index] + wImaginary*real[index]

				index2 := j*l + k
				real[index] = real[index2] - taoReal
				imaginary[index] = imaginary[index2] - taoImaginary

				real[index2] += taoReal
				imaginary[index2] += taoImaginary
			}
		}
	}
}

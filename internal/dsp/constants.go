// Package dsp implements the deterministic signal-processing pipeline
// that turns a mono float32 sample buffer at 44100Hz into MinHash
// signatures: resampling, RMS normalization, Hann-windowed FFT framing,
// logarithmic frequency binning, spectral-image construction, the 2-D
// Haar transform, raw tri-state fingerprint extraction and finally
// MinHash signing. Every numeric constant in this file is canonical per
// the fingerprint format: changing any of them changes every fingerprint
// this package has ever produced.
package dsp

const (
	// InputSampleRate is the sample rate the pipeline expects its input
	// audio to already be resampled/decoded to (mono, 16-bit PCM origin).
	InputSampleRate = 44100

	// CoreSampleRate is the sample rate all DSP stages after the
	// resampler operate at.
	CoreSampleRate = 5512

	// DecimationFactor is how much the resampler divides the input
	// sample rate by to reach CoreSampleRate (44100/8 = 5512.5, the
	// fractional remainder is simply dropped per spec.md §4.1).
	DecimationFactor = 8

	// SamplesPerFrame is the FFT window size, in samples at
	// CoreSampleRate. Must be a power of two for the Cooley-Tukey FFT.
	SamplesPerFrame = 2048

	// IntervalBetweenFrames is the hop size, in samples, between the
	// start of consecutive frames.
	IntervalBetweenFrames = 64

	// NumberOfBins is how many logarithmic frequency bins a frame folds
	// down to.
	NumberOfBins = 32

	// MinimumFrequency and MaximumFrequency bound the logarithmic bin
	// range, in Hz.
	MinimumFrequency = 318
	MaximumFrequency = 2000

	// SpectralImageWidth is how many consecutive bin-rows make up one
	// spectral image (must be a power of two for the Haar transform).
	SpectralImageWidth = 128

	// DistanceBetweenSpectralImageStart is the hop, in frames, between
	// the start of consecutive spectral images.
	DistanceBetweenSpectralImageStart = 8

	// TopWavelets is how many Haar coefficients (by absolute value) are
	// retained per spectral image when building a raw fingerprint.
	TopWavelets = 200

	// WaveletZeroThreshold is the magnitude below which a retained
	// wavelet coefficient is treated as zero (neither bit set).
	WaveletZeroThreshold = 0.001

	// RawFingerprintBits is the number of tri-state cells in a raw
	// fingerprint: two bits per spectral-image cell.
	RawFingerprintBits = SpectralImageWidth * NumberOfBins * 2

	// RawFingerprintBytes is RawFingerprintBits packed 8 to a byte.
	RawFingerprintBytes = RawFingerprintBits / 8

	// SilenceMinimumStrongCells is the minimum number of top-200 cells
	// that must exceed SilenceStrongMagnitude in absolute value for a
	// fingerprint to be considered non-silent.
	SilenceMinimumStrongCells = 10
	SilenceStrongMagnitude    = 1.0

	// SignatureLength is the number of MinHash components per signature.
	SignatureLength = 100

	// PermutationCount is how many independent permutations the MinHash
	// signer uses.
	PermutationCount = 100

	// PermutationLength is how many indices of each permutation are
	// retained (and therefore examined) when computing one MinHash
	// component.
	PermutationLength = 255

	// PermutationDomain is the size of the bit array a permutation is
	// drawn over: one entry per raw-fingerprint bit.
	PermutationDomain = RawFingerprintBits

	// PermutationSentinel is the MinHash component value emitted when
	// none of the first PermutationLength permuted bits were set.
	PermutationSentinel = PermutationLength

	// PermutationSeed is the fixed seed for the portable LCG used to
	// build the permutation set. It must never change: indexing and
	// querying must derive identical permutations.
	PermutationSeed = 678233

	// DefaultWorkerPoolSize is the target number of worker goroutines
	// used to parallelize frames/spectral-image/Haar/raw-fingerprint
	// stages.
	DefaultWorkerPoolSize = 8
)

// Package fingerprint orchestrates the DSP pipeline (internal/dsp) that
// turns a mono 44100Hz sample buffer into a set of MinHash signatures:
// resample -> normalize -> frame/FFT/logbin -> spectral image -> Haar ->
// raw fingerprint -> MinHash. It replaces the teacher's original
// constellation-peak-pair hashing (Shazam-style) with the
// locality-sensitive Haar/MinHash pipeline this spec calls for, while
// keeping the same package name and the same "hand audio samples in, get
// fingerprints out" entry point the rest of the application already
// expects.
package fingerprint

import (
	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
)

// Result is the outcome of fingerprinting one audio sample buffer.
type Result struct {
	// Signatures are the MinHash signatures of every non-silent,
	// non-degenerate spectral image, in chronological order.
	Signatures []dsp.Signature

	// NumImages is the total number of spectral images the input
	// produced, including the ones that were silent or degenerate and
	// therefore excluded from Signatures.
	NumImages int
}

// Generate runs the full pipeline on samples44100Hz, a mono float32
// buffer in [-1,1] at 44100Hz (the canonical rate produced by
// internal/wavio and internal/convert). Returns errs.KindInputTooSmall
// if there are too few samples to build even one spectral image.
func Generate(samples44100Hz []float32) (*Result, error) {
	if err := checkMinSamples(len(samples44100Hz)); err != nil {
		return nil, err
	}

	samples := dsp.Resample(samples44100Hz)
	dsp.Normalize(samples)

	bins, err := dsp.BuildFrameBins(samples)
	if err != nil {
		return nil, err
	}
	nFrames := dsp.NumFrames(len(samples))

	images, err := dsp.BuildSpectralImages(bins, nFrames)
	if err != nil {
		return nil, err
	}

	dsp.ApplyHaarTransform(images)

	rawFingerprints := dsp.BuildRawFingerprints(images)
	signatures := dsp.BuildSignatures(rawFingerprints)

	return &Result{
		Signatures: signatures,
		NumImages:  len(images),
	}, nil
}

// IsSilent reports whether the input produced spectral images but none
// of them yielded a signature (spec.md §8 boundary behavior): each was
// either flagged as silence or gave a degenerate signature.
func (r *Result) IsSilent() bool {
	return r.NumImages > 0 && len(r.Signatures) == 0
}

// checkMinSamples is a small guard used by callers that want a clearer
// error than the generic "too small" one BuildFrameBins would eventually
// raise, e.g. right after decoding a WAV file. It only guarantees enough
// samples for one resampled FFT frame; BuildSpectralImages is what
// actually rejects input with too few frames for a full spectral image.
func checkMinSamples(n int) error {
	if n < dsp.SamplesPerFrame*dsp.DecimationFactor {
		return errs.New(errs.KindInputTooSmall, "audio shorter than one spectral image requires")
	}
	return nil
}

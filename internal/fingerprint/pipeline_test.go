package fingerprint

import (
	"math"
	"testing"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
)

func toneSamples(seconds float64) []float32 {
	n := int(float64(dsp.InputSampleRate) * seconds)
	samples := make([]float32, n)
	for i := range samples {
		t := float64(i) / float64(dsp.InputSampleRate)
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*t))
	}
	return samples
}

func TestGenerateTooSmall(t *testing.T) {
	_, err := Generate(make([]float32, 100))
	if err == nil {
		t.Fatal("expected an error for an input far too short to fingerprint")
	}
	if errs.Of(err) != errs.KindInputTooSmall {
		t.Fatalf("got error kind %v, want KindInputTooSmall", errs.Of(err))
	}
}

func TestGenerateProducesSpectralImages(t *testing.T) {
	result, err := Generate(toneSamples(2.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumImages == 0 {
		t.Fatal("expected at least one spectral image from 2 seconds of audio")
	}
}

func TestGenerateSilenceIsFlagged(t *testing.T) {
	result, err := Generate(make([]float32, dsp.InputSampleRate*2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsSilent() {
		t.Fatal("expected two seconds of digital silence to be flagged as silent")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	samples := toneSamples(2.0)
	a, err := Generate(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Signatures) != len(b.Signatures) {
		t.Fatalf("signature count differs across runs: %d vs %d", len(a.Signatures), len(b.Signatures))
	}
	for i := range a.Signatures {
		if a.Signatures[i] != b.Signatures[i] {
			t.Fatalf("signature %d differs across runs", i)
		}
	}
}

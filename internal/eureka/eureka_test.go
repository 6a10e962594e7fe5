package eureka

import (
	"testing"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/libraryio"
)

func sigFilledWith(b byte) dsp.Signature {
	var s dsp.Signature
	for i := range s {
		s[i] = b
	}
	return s
}

func TestSearchLibraryFindsSelfMatch(t *testing.T) {
	sigs := make([]dsp.Signature, 40)
	for i := range sigs {
		sigs[i] = sigFilledWith(byte(i))
	}

	library := []libraryio.Entry{
		{Filename: "track-a.wav", Signatures: sigs},
		{Filename: "track-b.wav", Signatures: []dsp.Signature{sigFilledWith(200)}},
	}

	result, err := searchLibrary(sigs, library, false)
	if err != nil {
		t.Fatalf("searchLibrary returned error: %v", err)
	}
	if result.Name != "track-a.wav" {
		t.Errorf("expected track-a.wav to win, got %s", result.Name)
	}
}

func TestSearchLibraryNoMatchOnEmptyLibrary(t *testing.T) {
	sigs := []dsp.Signature{sigFilledWith(1)}
	_, err := searchLibrary(sigs, nil, false)
	if errs.Of(err) != errs.KindNoMatch {
		t.Fatalf("expected KindNoMatch, got %v", err)
	}
}

func TestSearchLibraryVerboseStillFindsMatch(t *testing.T) {
	sigs := make([]dsp.Signature, 40)
	for i := range sigs {
		sigs[i] = sigFilledWith(byte(i))
	}
	library := []libraryio.Entry{{Filename: "track-a.wav", Signatures: sigs}}

	result, err := searchLibrary(sigs, library, true)
	if err != nil {
		t.Fatalf("searchLibrary returned error: %v", err)
	}
	if result.Name != "track-a.wav" {
		t.Errorf("expected track-a.wav to win, got %s", result.Name)
	}
}

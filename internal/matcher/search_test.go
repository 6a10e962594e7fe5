package matcher

import (
	"testing"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/lshindex"
)

func makeSignatures(n int, fill byte) []dsp.Signature {
	sigs := make([]dsp.Signature, n)
	for i := range sigs {
		for j := range sigs[i] {
			sigs[i][j] = fill
		}
	}
	return sigs
}

func TestSearchFindsSelfMatch(t *testing.T) {
	target := makeSignatures(20, 42)
	other := makeSignatures(20, 200)

	entries := []Entry{
		{Name: "target.wav", Signatures: target},
		{Name: "other.wav", Signatures: other},
	}
	idx := lshindex.Build([]lshindex.Entry{
		{Signatures: target},
		{Signatures: other},
	})

	result, err := Search(target, entries, idx, false)
	if err != nil {
		t.Fatalf("unexpected error searching for an exact self-match: %v", err)
	}
	if result.Name != "target.wav" {
		t.Fatalf("matched %q, want target.wav", result.Name)
	}
}

func TestSearchNoMatchWhenLibraryEmpty(t *testing.T) {
	sample := makeSignatures(5, 7)
	idx := lshindex.Build(nil)

	_, err := Search(sample, nil, idx, false)
	if err == nil {
		t.Fatal("expected an error when the library has no entries")
	}
	if errs.Of(err) != errs.KindNoMatch {
		t.Fatalf("got error kind %v, want KindNoMatch", errs.Of(err))
	}
}

func TestCompareHashesCountsIdenticalBytes(t *testing.T) {
	a := makeSignatures(1, 5)[0]
	b := a
	b[0] = 99
	b[1] = 98

	got := compareHashes(a, b)
	want := dsp.SignatureLength - 2
	if got != want {
		t.Fatalf("compareHashes = %d, want %d", got, want)
	}
}

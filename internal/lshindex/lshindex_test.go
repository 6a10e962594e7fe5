package lshindex

import (
	"testing"

	"github.com/media-luna/eureka/internal/dsp"
)

func sigWithByte(b byte) dsp.Signature {
	var s dsp.Signature
	for i := range s {
		s[i] = b
	}
	return s
}

func TestBuildAndLookupFindsExactMatch(t *testing.T) {
	entries := []Entry{
		{Signatures: []dsp.Signature{sigWithByte(1)}},
		{Signatures: []dsp.Signature{sigWithByte(2)}},
	}
	idx := Build(entries)

	refs := idx.Lookup(sigWithByte(1))
	found := false
	for _, r := range refs {
		if r.EntryIndex == 0 && r.SignatureIndex == 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected lookup of an indexed signature to find its own entry")
	}
}

func TestLookupCountsOneHitPerBucket(t *testing.T) {
	entries := []Entry{
		{Signatures: []dsp.Signature{sigWithByte(7)}},
	}
	idx := Build(entries)

	refs := idx.Lookup(sigWithByte(7))
	count := 0
	for _, r := range refs {
		if r.EntryIndex == 0 && r.SignatureIndex == 0 {
			count++
		}
	}
	if count != NumBuckets {
		t.Fatalf("identical signature should collide in all %d buckets, got %d", NumBuckets, count)
	}
}

func TestLookupOnEmptyIndex(t *testing.T) {
	idx := Build(nil)
	refs := idx.Lookup(sigWithByte(9))
	if len(refs) != 0 {
		t.Fatalf("expected no matches in an empty index, got %d", len(refs))
	}
}

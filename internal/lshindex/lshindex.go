// Package lshindex builds and queries a locality-sensitive-hashing index
// over a library of MinHash signatures. Instead of comparing a query
// signature against every signature in the library, the signature's
// SIGNATURE_LENGTH bytes are split into NumBuckets 4-byte slices; two
// signatures that share even one 4-byte slice land in the same bucket of
// that table and become cheap-to-find candidates for the full comparison
// done in internal/matcher. Grounded on the reference lsh.c/lsh.h.
package lshindex

import (
	"encoding/binary"

	"github.com/media-luna/eureka/internal/dsp"
)

// BytesPerBucketHash is the width, in bytes, of the slice of a signature
// that keys one bucket table.
const BytesPerBucketHash = 4

// NumBuckets is the number of independent hash tables, one per
// consecutive 4-byte slice of a SignatureLength-byte signature.
const NumBuckets = dsp.SignatureLength / BytesPerBucketHash

// Ref identifies one signature stored in a library: which entry it
// belongs to, and which of that entry's signatures it is.
type Ref struct {
	EntryIndex     int
	SignatureIndex int
}

// Index is the set of NumBuckets hash tables built over a library.
type Index struct {
	tableSize uint32
	buckets   [NumBuckets]map[uint32][]Ref
}

// Entry is the minimal view of a library entry the index needs: the
// signatures it owns, identified by EntryIndex as assigned by the caller.
type Entry struct {
	Signatures []dsp.Signature
}

func bucketKey(sig dsp.Signature, bucket int) uint32 {
	base := bucket * BytesPerBucketHash
	return binary.BigEndian.Uint32(sig[base : base+BytesPerBucketHash])
}

// Build constructs an Index over entries. The table size is half the
// total number of signatures across all entries (rounded down), matching
// the reference implementation's sizing heuristic; a minimum of 1 keeps
// the modulus below from dividing by zero on tiny libraries.
func Build(entries []Entry) *Index {
	total := 0
	for _, e := range entries {
		total += len(e.Signatures)
	}
	size := uint32(total / 2)
	if size == 0 {
		size = 1
	}

	idx := &Index{tableSize: size}
	for b := range idx.buckets {
		idx.buckets[b] = make(map[uint32][]Ref)
	}

	for entryIndex, e := range entries {
		for sigIndex, sig := range e.Signatures {
			for b := 0; b < NumBuckets; b++ {
				key := bucketKey(sig, b) % idx.tableSize
				idx.buckets[b][key] = append(idx.buckets[b][key], Ref{EntryIndex: entryIndex, SignatureIndex: sigIndex})
			}
		}
	}

	return idx
}

// Lookup returns every Ref that collides with hash in at least one of the
// NumBuckets tables. The same Ref may appear more than once: once per
// bucket it collided on. Counting duplicates is exactly how the matcher
// package measures bucket-collision strength, so callers must not
// deduplicate this slice before handing it to the matcher.
func (idx *Index) Lookup(hash dsp.Signature) []Ref {
	var out []Ref
	for b := 0; b < NumBuckets; b++ {
		key := bucketKey(hash, b) % idx.tableSize
		out = append(out, idx.buckets[b][key]...)
	}
	return out
}

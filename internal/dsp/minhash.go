package dsp

// Signature is the MinHash summary of one RawFingerprint: SignatureLength
// bytes, each either the index of the first set bit found when scanning
// the fingerprint through one of the PermutationCount permutations, or
// PermutationSentinel if none of the first PermutationLength permuted
// bits were set.
type Signature [SignatureLength]byte

// BuildSignature computes the MinHash signature of fp. The returned bool
// is false iff every component equals PermutationSentinel (a "degenerate"
// signature, spec.md §4.7), in which case sig has no discriminatory
// power and should be discarded.
func BuildSignature(fp *RawFingerprint) (sig Signature, meaningful bool) {
	for k := 0; k < SignatureLength; k++ {
		permutation := GetPermutation(k)
		sig[k] = PermutationSentinel
		for j := 0; j < PermutationLength; j++ {
			bitIndex := int(permutation[j])
			if fp.Bit(bitIndex) {
				sig[k] = byte(j)
				meaningful = true
				break
			}
		}
	}
	return sig, meaningful
}

// BuildSignatures computes a signature for every raw fingerprint that is
// neither flagged silent nor produces a degenerate signature (spec.md
// §3, §4.7). Order is preserved relative to the surviving fingerprints,
// but the index into the original rawFingerprints slice is not retained
// here — callers that need frame/image alignment should track it
// themselves alongside the fingerprints.
func BuildSignatures(rawFingerprints []*RawFingerprint) []Signature {
	out := make([]Signature, 0, len(rawFingerprints))
	for _, fp := range rawFingerprints {
		if fp.IsSilence {
			continue
		}
		sig, meaningful := BuildSignature(fp)
		if !meaningful {
			continue
		}
		out = append(out, sig)
	}
	return out
}

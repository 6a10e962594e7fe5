package matcher

// Thresholds controlling how aggressively search results are filtered and
// ranked. Values and their rationale are canonical, grounded on the
// reference search.c: changing them changes what counts as a match.
const (
	// MinBucketMatch is the minimum number of LSH bucket collisions a
	// (query signature, library signature) pair must accumulate before a
	// full byte-by-byte comparison is even attempted.
	MinBucketMatch = 2

	// MinScore is the minimum number of identical bytes (out of
	// dsp.SignatureLength) a full comparison must find to count as a
	// signature match at all.
	MinScore = 30

	// MinSignatureMatches is the minimum number of signature matches a
	// library entry must accumulate to be considered as a candidate
	// result.
	MinSignatureMatches = 10

	// MinAverageScore is the minimum average score (mean MinScore-passing
	// comparison value) a candidate entry must reach to be returned.
	MinAverageScore = 30

	// GoodScore is high enough that an entry needs only half as many
	// signature matches to still qualify.
	GoodScore = 35

	// maxRanked bounds how many top-ranked candidates are examined for
	// the final best match, mirroring the reference implementation's
	// fixed limit.
	maxRanked = 10
)

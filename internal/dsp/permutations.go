package dsp

// lcg is a portable 32-bit linear-congruential generator (the
// "Numerical Recipes" constants: x[n+1] = 1664525*x[n] + 1013904223 mod
// 2^32). Used instead of the host language's PRNG so that the
// permutation set used to build MinHash signatures is bit-for-bit
// reproducible across platforms, compilers and Go versions — see
// spec.md §4.7 and §9.
type lcg struct {
	state uint32
}

func newLCG(seed uint32) *lcg {
	return &lcg{state: seed}
}

func (g *lcg) next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// permutations holds PermutationCount permutations of PermutationLength
// distinct indices into [0, PermutationDomain). It is built once, eagerly,
// at package initialization time (see init below) rather than on
// first-use: a read-only table built before any worker goroutine starts
// needs no synchronization, which replaces the C reference's
// first-touch-via-sentinel pattern (spec.md §5, §9).
var permutations [PermutationCount][PermutationLength]uint16

func init() {
	permutations = buildPermutations(PermutationSeed)
}

func buildPermutations(seed uint32) [PermutationCount][PermutationLength]uint16 {
	var result [PermutationCount][PermutationLength]uint16

	gen := newLCG(seed)
	var scratch [PermutationDomain]uint16

	for p := 0; p < PermutationCount; p++ {
		// Each permutation starts from a fresh identity array; the LCG
		// stream itself is never reset, so permutation p+1 continues
		// drawing from where permutation p left off.
		for i := range scratch {
			scratch[i] = uint16(i)
		}
		shuffle(&scratch, gen)
		copy(result[p][:], scratch[:PermutationLength])
	}

	return result
}

// shuffle performs a Fisher-Yates shuffle of data (length
// PermutationDomain) using gen, per spec.md §4.7.
func shuffle(data *[PermutationDomain]uint16, gen *lcg) {
	for i := 0; i < PermutationDomain-1; i++ {
		j := i + int(gen.next()%uint32(PermutationDomain-i))
		data[i], data[j] = data[j], data[i]
	}
}

// GetPermutation returns the n'th permutation's first PermutationLength
// indices into [0, PermutationDomain). n must be in [0, PermutationCount).
func GetPermutation(n int) [PermutationLength]uint16 {
	return permutations[n]
}

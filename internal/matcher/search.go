// Package matcher ranks library entries against a query's MinHash
// signatures using an LSH index for candidate discovery. Grounded on the
// reference search.c.
package matcher

import (
	"fmt"
	"sort"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/lshindex"
	"github.com/media-luna/eureka/utils/logger"
)

// Entry is the minimal view of a library entry the matcher needs to
// score: its signatures, in the same order and indices used to build the
// lshindex.Index being searched.
type Entry struct {
	Name       string
	Signatures []dsp.Signature
}

// Result is the outcome of a successful search.
type Result struct {
	EntryIndex   int
	Name         string
	AverageScore float64
	NumMatches   int
}

type entryScore struct {
	entryIndex int
	score      float64
	numMatches int
}

func (s entryScore) average() float64 {
	if s.numMatches == 0 {
		return 0
	}
	return s.score / float64(s.numMatches)
}

// compareHashes counts how many of the SignatureLength bytes are
// identical between two signatures.
func compareHashes(a, b dsp.Signature) int {
	n := 0
	for i := range a {
		if a[i] == b[i] {
			n++
		}
	}
	return n
}

// compareEntryScores reports whether a should sort before b, i.e. whether
// a is the better match. This intentionally reproduces the reference
// comparator's quirks rather than a "clean" monotone scoring function:
// scores within 3 points of each other fall back to comparing match
// counts before falling back to comparing scores again.
func compareEntryScores(a, b entryScore) bool {
	avgA, avgB := a.average(), b.average()

	// The reference implementation takes the C standard library's
	// integer abs() of a float difference, which truncates the
	// difference toward zero before taking its absolute value. That
	// truncation is part of the ranking behavior, not a rounding
	// accident to be "fixed": reproduce it exactly so ranking order
	// matches bit-for-bit.
	truncated := int(avgA - avgB)
	scoreDelta := float64(truncated)
	if scoreDelta < 0 {
		scoreDelta = -scoreDelta
	}

	if scoreDelta <= 3 {
		if scoreDelta <= 5 && a.numMatches >= b.numMatches+5 {
			return true
		}
		if b.numMatches >= a.numMatches+5 {
			return false
		}
	}

	if scoreDelta < 0.5 {
		if a.numMatches > b.numMatches {
			return true
		}
		if a.numMatches < b.numMatches {
			return false
		}
	}

	if avgA > avgB {
		return true
	}
	if avgB > avgA {
		return false
	}
	return false
}

// Search ranks entries against sample (a query's surviving MinHash
// signatures) using idx for candidate discovery, and returns the best
// match. Returns an errs.KindNoMatch error if nothing clears the
// configured thresholds.
func Search(sample []dsp.Signature, entries []Entry, idx *lshindex.Index, verbose bool) (*Result, error) {
	scores := make([]entryScore, len(entries))
	for i := range entries {
		scores[i].entryIndex = i
	}

	for _, querySig := range sample {
		refs := idx.Lookup(querySig)
		if len(refs) == 0 {
			continue
		}

		sort.Slice(refs, func(i, j int) bool {
			if refs[i].EntryIndex != refs[j].EntryIndex {
				return refs[i].EntryIndex < refs[j].EntryIndex
			}
			return refs[i].SignatureIndex < refs[j].SignatureIndex
		})

		runStart := 0
		flush := func(end int) {
			runLen := end - runStart
			if runLen < MinBucketMatch {
				return
			}
			ref := refs[runStart]
			score := compareHashes(entries[ref.EntryIndex].Signatures[ref.SignatureIndex], querySig)
			if score >= MinScore {
				scores[ref.EntryIndex].score += float64(score)
				scores[ref.EntryIndex].numMatches++
			}
		}

		for j := 1; j < len(refs); j++ {
			if refs[j] == refs[j-1] {
				continue
			}
			flush(j)
			runStart = j
		}
		flush(len(refs))
	}

	sort.Slice(scores, func(i, j int) bool {
		return compareEntryScores(scores[i], scores[j])
	})

	best := -1
	bestScore := 0.0
	limit := len(scores)
	if limit > maxRanked {
		limit = maxRanked
	}
	for i := 0; i < limit; i++ {
		s := scores[i]
		avg := s.average()
		if verbose {
			logger.Info(fmt.Sprintf("average_score=%.2f n_matches=%d (%s)", avg, s.numMatches, entries[s.entryIndex].Name))
		}
		qualifies := s.numMatches >= MinSignatureMatches ||
			(avg >= GoodScore && s.numMatches >= MinSignatureMatches/2)
		if qualifies && avg >= MinAverageScore && avg > bestScore {
			bestScore = avg
			best = s.entryIndex
		}
	}

	if best == -1 {
		return nil, errs.New(errs.KindNoMatch, "no library entry matched the sample")
	}

	return &Result{
		EntryIndex:   best,
		Name:         entries[best].Name,
		AverageScore: bestScore,
		NumMatches:   scoresByEntry(scores, best).numMatches,
	}, nil
}

func scoresByEntry(scores []entryScore, entryIndex int) entryScore {
	for _, s := range scores {
		if s.entryIndex == entryIndex {
			return s
		}
	}
	return entryScore{}
}

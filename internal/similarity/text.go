// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// TextConfig tunes the TF-IDF vectorizer.
type TextConfig struct {
	// MaxVocabulary caps the number of retained terms; the terms with the
	// highest total corpus count win, ties broken alphabetically. 0 means
	// no cap.
	MaxVocabulary int
	// MinDocFreq is the minimum number of documents a term must appear in
	// to enter the vocabulary. If the constraint empties the vocabulary
	// (small corpora), Fit retries once with MinDocFreq 1.
	MinDocFreq int
}

// termWeight is one vocabulary term's weight inside a document vector.
// Vectors keep their termWeights sorted by term index so pairwise dot
// products run as linear merges.
type termWeight struct {
	term   int
	weight float64
}

// TextKernel builds TF-IDF document vectors for a corpus of text blobs
// and scores pairs with cosine similarity. Fit must be called before
// Vectorize or Matrix. A kernel is not safe for concurrent use during
// Fit; after Fit it is read-only.
type TextKernel struct {
	cfg          TextConfig
	vocabulary   []string       // index -> term, alphabetical
	index        map[string]int // term -> index
	idf          []float64      // smoothed idf per term index
	usedFallback bool
}

// NewTextKernel creates a text kernel with the given configuration.
// Non-positive MinDocFreq is treated as 1.
func NewTextKernel(cfg TextConfig) *TextKernel {
	if cfg.MinDocFreq < 1 {
		cfg.MinDocFreq = 1
	}
	return &TextKernel{cfg: cfg}
}

// Fit builds the vocabulary and IDF table from the corpus. A term enters
// the vocabulary when it survives tokenization (>= 2 runes, not a
// stopword) and appears in at least MinDocFreq documents; if that leaves
// the vocabulary empty and MinDocFreq was above 1, Fit retries once with
// the constraint relaxed to 1. An empty vocabulary after the fallback is
// not an error: every vector is then zero and the text channel scores 0
// everywhere.
func (k *TextKernel) Fit(blobs []string) {
	k.usedFallback = false
	k.fit(blobs, k.cfg.MinDocFreq)
	if len(k.vocabulary) == 0 && k.cfg.MinDocFreq > 1 {
		k.fit(blobs, 1)
		k.usedFallback = true
	}
}

func (k *TextKernel) fit(blobs []string, minDF int) {
	docFreq := make(map[string]int)
	corpusCount := make(map[string]int)
	for _, blob := range blobs {
		for term, count := range countTokens(tokenize(blob)) {
			docFreq[term]++
			corpusCount[term] += count
		}
	}

	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= minDF {
			candidates = append(candidates, term)
		}
	}

	if k.cfg.MaxVocabulary > 0 && len(candidates) > k.cfg.MaxVocabulary {
		sort.Slice(candidates, func(i, j int) bool {
			if corpusCount[candidates[i]] != corpusCount[candidates[j]] {
				return corpusCount[candidates[i]] > corpusCount[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:k.cfg.MaxVocabulary]
	}
	sort.Strings(candidates)

	k.vocabulary = candidates
	k.index = make(map[string]int, len(candidates))
	for i, term := range candidates {
		k.index[term] = i
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1. The +1 terms keep zero
	// divisions impossible and unseen-everywhere terms finite.
	n := len(blobs)
	k.idf = make([]float64, len(candidates))
	for i, term := range candidates {
		k.idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1.0
	}
}

// VocabularySize returns the number of retained terms.
func (k *TextKernel) VocabularySize() int {
	return len(k.vocabulary)
}

// UsedFallback reports whether Fit had to relax MinDocFreq to 1.
func (k *TextKernel) UsedFallback() bool {
	return k.usedFallback
}

// Vectorize turns one text blob into an L2-normalized sparse TF-IDF
// vector. Returns nil for blobs with no vocabulary terms; nil vectors
// score 0 against everything, including themselves.
func (k *TextKernel) Vectorize(blob string) []termWeight {
	if len(k.vocabulary) == 0 {
		return nil
	}

	counts := countTokens(tokenize(blob))
	vec := make([]termWeight, 0, len(counts))
	for term, count := range counts {
		idx, ok := k.index[term]
		if !ok {
			continue
		}
		vec = append(vec, termWeight{term: idx, weight: float64(count) * k.idf[idx]})
	}
	if len(vec) == 0 {
		return nil
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })

	// L2 normalize so cosine similarity reduces to a dot product.
	var sumSq float64
	for _, tw := range vec {
		sumSq += tw.weight * tw.weight
	}
	if sumSq == 0 {
		return nil
	}
	invNorm := 1.0 / math.Sqrt(sumSq)
	for i := range vec {
		vec[i].weight *= invNorm
	}
	return vec
}

// Matrix computes the full pairwise cosine similarity matrix for the
// corpus. Pairs involving an empty vector stay at 0; the self-similarity
// of a non-empty vector is exactly 1 (set directly rather than recomputed,
// avoiding float drift on the diagonal).
func (k *TextKernel) Matrix(blobs []string) *Matrix {
	n := len(blobs)
	m := NewMatrix(n)

	vecs := make([][]termWeight, n)
	for i, blob := range blobs {
		vecs[i] = k.Vectorize(blob)
	}

	for i := 0; i < n; i++ {
		if len(vecs[i]) == 0 {
			continue
		}
		m.Set(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			if len(vecs[j]) == 0 {
				continue
			}
			m.SetSym(i, j, dotSparse(vecs[i], vecs[j]))
		}
	}
	return m
}

// dotSparse computes the dot product of two sparse vectors sorted by term
// index, as a linear merge.
func dotSparse(a, b []termWeight) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term < b[j].term:
			i++
		case a[i].term > b[j].term:
			j++
		default:
			dot += a[i].weight * b[j].weight
			i++
			j++
		}
	}
	return dot
}

// tokenize lowercases a blob (after NFKC normalization, so full-width and
// composed forms compare equal) and splits it on any run of non-letter,
// non-digit characters. Tokens shorter than two runes and stopwords are
// dropped.
func tokenize(blob string) []string {
	normalized := strings.ToLower(norm.NFKC.String(blob))
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if englishStopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// countTokens folds a token slice into per-term counts.
func countTokens(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

package usecase

import (
	"math"
	"strings"
	"unicode"
)

// Term-frequency vectors over the shared vocabulary of both texts. The
// tokenizer keeps lowercase ASCII alphanumerics and splits on everything
// else, which makes the vocabulary deterministic across runs.

func termFrequencies(text string) map[string]float64 {
	tf := make(map[string]float64, 64)
	for _, token := range tokenizeAlphaNum(text) {
		tf[token]++
	}
	return tf
}

// lexicalCosine computes cosine similarity between the term-frequency
// vectors of two texts, in [0, 1]. Disjoint or empty vocabularies yield 0.
// Identical frequency vectors yield exactly 1.
func lexicalCosine(textA, textB string) float64 {
	tfA := termFrequencies(textA)
	tfB := termFrequencies(textB)
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}
	if equalFrequencies(tfA, tfB) {
		return 1
	}

	var dot, normA, normB float64
	for term, a := range tfA {
		normA += a * a
		if b, ok := tfB[term]; ok {
			dot += a * b
		}
	}
	for _, b := range tfB {
		normB += b * b
	}
	if dot == 0 {
		return 0
	}
	return dot / math.Sqrt(normA*normB)
}

func equalFrequencies(a, b map[string]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for term, va := range a {
		if vb, ok := b[term]; !ok || va != vb {
			return false
		}
	}
	return true
}

func tokenizeAlphaNum(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

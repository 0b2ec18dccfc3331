package search

import "math"

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or a zero-norm vector yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// combineSemantic blends a keyword-derived score with a semantic similarity
// score. Both inputs and the result are on the 0 to 100 scale.
func combineSemantic(score, semantic int) int {
	return int(float64(score)*0.7 + float64(semantic)*0.3)
}

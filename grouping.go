package docnorm

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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

// SimilarityMatrix computes the pairwise cosine similarity of a set of
// embeddings. The matrix is symmetric with ones on the diagonal.
func SimilarityMatrix(embeddings [][]float32) [][]float64 {
	matrix := make([][]float64, len(embeddings))
	for i := range embeddings {
		matrix[i] = make([]float64, len(embeddings))
		matrix[i][i] = 1
	}
	for i := range embeddings {
		for j := i + 1; j < len(embeddings); j++ {
			sim := CosineSimilarity(embeddings[i], embeddings[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix
}

// GroupSimilar pairs each document with the later-indexed documents whose
// similarity exceeds the threshold. Only forward pairings are reported, so
// a pair never appears twice. Documents with no similar peers are omitted.
func GroupSimilar(matrix [][]float64, threshold float64) map[int][]int {
	groups := make(map[int][]int)
	for i, row := range matrix {
		var similar []int
		for j := i + 1; j < len(row); j++ {
			if row[j] > threshold {
				similar = append(similar, j)
			}
		}
		if len(similar) > 0 {
			groups[i] = similar
		}
	}
	return groups
}

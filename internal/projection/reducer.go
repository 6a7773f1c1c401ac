// Package projection reduces high-dimensional embedding vectors to 2-D or
// 3-D coordinates for plotting, via PCA or t-SNE.
package projection

import (
	"fmt"

	"github.com/hyperjump/kotoba/internal/models"
)

// TSNEConfig holds t-SNE hyperparameters. Seed makes repeated runs on
// identical input reproduce results; randomness is never taken from
// process-global state.
type TSNEConfig struct {
	// Perplexity is the effective neighborhood size per point. The useful
	// range is roughly 5-50 and it must be strictly less than the number of
	// input points.
	Perplexity   float64
	LearningRate float64
	MaxIter      int
	Seed         int64
}

// DefaultTSNEConfig returns the standard hyperparameters.
func DefaultTSNEConfig() TSNEConfig {
	return TSNEConfig{
		Perplexity:   30,
		LearningRate: 200,
		MaxIter:      1000,
		Seed:         42,
	}
}

// Reduce projects vectors to dims coordinates with the given method,
// preserving input order and count. It fails with ErrInsufficientPoints for
// fewer than 2 vectors and with InvalidParameterError for a target
// dimensionality outside {2,3}, inconsistent vector lengths, or (for t-SNE)
// a perplexity outside its valid range.
func Reduce(vectors [][]float64, method models.Method, dims int, cfg TSNEConfig) ([]models.Point, error) {
	if dims != 2 && dims != 3 {
		return nil, &models.InvalidParameterError{Param: "n_components",
			Reason: fmt.Sprintf("must be 2 or 3, got %d", dims)}
	}
	if len(vectors) < 2 {
		return nil, models.ErrInsufficientPoints
	}
	width := len(vectors[0])
	if width == 0 {
		return nil, &models.InvalidParameterError{Param: "vectors", Reason: "vectors are empty"}
	}
	for i, vec := range vectors {
		if len(vec) != width {
			return nil, &models.InvalidParameterError{Param: "vectors",
				Reason: fmt.Sprintf("vector %d has length %d, expected %d", i, len(vec), width)}
		}
	}

	switch method {
	case models.MethodPCA:
		return PCA(vectors, dims)
	case models.MethodTSNE:
		return TSNE(vectors, dims, cfg)
	default:
		return nil, &models.InvalidParameterError{Param: "method",
			Reason: fmt.Sprintf("unknown method %q", method)}
	}
}

// toPoints converts row-major coordinates (k columns, k <= dims) to Points,
// zero-padding when fewer than dims components are available.
func toPoints(coords [][]float64, dims int) []models.Point {
	points := make([]models.Point, len(coords))
	for i, row := range coords {
		var c [3]float64
		copy(c[:], row)
		if dims == 3 {
			points[i] = models.NewPoint3D(c[0], c[1], c[2])
		} else {
			points[i] = models.NewPoint2D(c[0], c[1])
		}
	}
	return points
}

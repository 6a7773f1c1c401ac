package projection

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hyperjump/kotoba/internal/models"
)

// TSNE embeds vectors into dims coordinates with exact (O(n²)) t-distributed
// stochastic neighbor embedding: Gaussian affinities in the input space with
// per-point bandwidths matched to cfg.Perplexity, a Student-t kernel in the
// output space, and gradient descent with momentum, gains, and early
// exaggeration. All randomness comes from cfg.Seed, so repeated calls on
// identical input produce identical results.
func TSNE(vectors [][]float64, dims int, cfg TSNEConfig) ([]models.Point, error) {
	n := len(vectors)
	if cfg.Perplexity < 1 {
		return nil, &models.InvalidParameterError{Param: "perplexity",
			Reason: fmt.Sprintf("must be at least 1, got %g", cfg.Perplexity)}
	}
	if cfg.Perplexity >= float64(n) {
		return nil, &models.InvalidParameterError{Param: "perplexity",
			Reason: fmt.Sprintf("must be less than the number of points (%d), got %g", n, cfg.Perplexity)}
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 200
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 1000
	}

	p := jointProbabilities(squaredDistances(vectors), cfg.Perplexity)

	// Early exaggeration amplifies attractive forces so clusters separate
	// before fine-tuning.
	const exaggeration = 12.0
	exaggerationIters := cfg.MaxIter / 4
	for i := range p {
		for j := range p[i] {
			p[i][j] *= exaggeration
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	y := make([][]float64, n)
	velocity := make([][]float64, n)
	gains := make([][]float64, n)
	for i := range y {
		y[i] = make([]float64, dims)
		velocity[i] = make([]float64, dims)
		gains[i] = make([]float64, dims)
		for k := 0; k < dims; k++ {
			y[i][k] = rng.NormFloat64() * 1e-4
			gains[i][k] = 1
		}
	}

	grad := make([][]float64, n)
	for i := range grad {
		grad[i] = make([]float64, dims)
	}
	qNum := make([][]float64, n)
	for i := range qNum {
		qNum[i] = make([]float64, n)
	}

	for iter := 0; iter < cfg.MaxIter; iter++ {
		if iter == exaggerationIters {
			for i := range p {
				for j := range p[i] {
					p[i][j] /= exaggeration
				}
			}
		}
		momentum := 0.5
		if iter >= exaggerationIters {
			momentum = 0.8
		}

		// Student-t numerators and their sum.
		sumQ := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				var dist2 float64
				for k := 0; k < dims; k++ {
					diff := y[i][k] - y[j][k]
					dist2 += diff * diff
				}
				num := 1.0 / (1.0 + dist2)
				qNum[i][j] = num
				qNum[j][i] = num
				sumQ += 2 * num
			}
		}
		if sumQ < 1e-12 {
			sumQ = 1e-12
		}

		// Gradient: dC/dy_i = 4 Σ_j (p_ij - q_ij) (1+||y_i-y_j||²)^-1 (y_i - y_j).
		for i := 0; i < n; i++ {
			for k := 0; k < dims; k++ {
				grad[i][k] = 0
			}
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				q := qNum[i][j] / sumQ
				if q < 1e-12 {
					q = 1e-12
				}
				mult := 4 * (p[i][j] - q) * qNum[i][j]
				for k := 0; k < dims; k++ {
					grad[i][k] += mult * (y[i][k] - y[j][k])
				}
			}
		}

		for i := 0; i < n; i++ {
			for k := 0; k < dims; k++ {
				if (grad[i][k] > 0) == (velocity[i][k] > 0) {
					gains[i][k] *= 0.8
				} else {
					gains[i][k] += 0.2
				}
				if gains[i][k] < 0.01 {
					gains[i][k] = 0.01
				}
				velocity[i][k] = momentum*velocity[i][k] - cfg.LearningRate*gains[i][k]*grad[i][k]
				y[i][k] += velocity[i][k]
			}
		}
		recenter(y, dims)
	}

	coords := make([][]float64, n)
	for i := range coords {
		coords[i] = y[i]
	}
	return toPoints(coords, dims), nil
}

// squaredDistances returns the pairwise squared Euclidean distance matrix.
func squaredDistances(vectors [][]float64) [][]float64 {
	n := len(vectors)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var dist2 float64
			for k := range vectors[i] {
				diff := vectors[i][k] - vectors[j][k]
				dist2 += diff * diff
			}
			d[i][j] = dist2
			d[j][i] = dist2
		}
	}
	return d
}

// jointProbabilities converts distances to symmetric joint probabilities,
// binary-searching each point's Gaussian bandwidth until the conditional
// distribution's perplexity matches the target.
func jointProbabilities(dist2 [][]float64, perplexity float64) [][]float64 {
	n := len(dist2)
	target := math.Log(perplexity)
	cond := make([][]float64, n)

	for i := 0; i < n; i++ {
		cond[i] = make([]float64, n)
		beta := 1.0
		betaMin := math.Inf(-1)
		betaMax := math.Inf(1)

		for attempt := 0; attempt < 50; attempt++ {
			// Conditional distribution and its Shannon entropy for this beta.
			sum := 0.0
			for j := 0; j < n; j++ {
				if j == i {
					cond[i][j] = 0
					continue
				}
				cond[i][j] = math.Exp(-dist2[i][j] * beta)
				sum += cond[i][j]
			}
			if sum < 1e-300 {
				sum = 1e-300
			}
			entropy := 0.0
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				cond[i][j] /= sum
				if cond[i][j] > 1e-12 {
					entropy -= cond[i][j] * math.Log(cond[i][j])
				}
			}

			diff := entropy - target
			if math.Abs(diff) < 1e-5 {
				break
			}
			if diff > 0 {
				betaMin = beta
				if math.IsInf(betaMax, 1) {
					beta *= 2
				} else {
					beta = (beta + betaMax) / 2
				}
			} else {
				betaMax = beta
				if math.IsInf(betaMin, -1) {
					beta /= 2
				} else {
					beta = (beta + betaMin) / 2
				}
			}
		}
	}

	// Symmetrize and normalize to a joint distribution.
	p := make([][]float64, n)
	for i := range p {
		p[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := (cond[i][j] + cond[j][i]) / (2 * float64(n))
			if v < 1e-12 {
				v = 1e-12
			}
			if i != j {
				p[i][j] = v
			}
		}
	}
	return p
}

// recenter shifts the embedding to zero mean, keeping it from drifting.
func recenter(y [][]float64, dims int) {
	n := float64(len(y))
	for k := 0; k < dims; k++ {
		mean := 0.0
		for i := range y {
			mean += y[i][k]
		}
		mean /= n
		for i := range y {
			y[i][k] -= mean
		}
	}
}

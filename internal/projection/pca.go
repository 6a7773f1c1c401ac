package projection

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hyperjump/kotoba/internal/models"
)

// PCA projects vectors onto their dims directions of maximum variance.
// The data is mean-centered and decomposed with thin SVD; the right singular
// vectors are the principal components. Deterministic: the sign of each
// component is pinned so the loading with the largest magnitude is
// non-negative, making repeated runs bit-identical.
//
// When the input supports fewer than dims components (e.g. 2 points in 3-D),
// the remaining coordinates are zero.
func PCA(vectors [][]float64, dims int) ([]models.Point, error) {
	n := len(vectors)
	d := len(vectors[0])

	data := make([]float64, n*d)
	for i, vec := range vectors {
		copy(data[i*d:(i+1)*d], vec)
	}
	x := mat.NewDense(n, d, data)
	centerColumns(x)

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("pca: svd factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)

	_, available := v.Dims()
	k := dims
	if k > available {
		k = available
	}
	pinComponentSigns(&v, k)

	var projected mat.Dense
	projected.Mul(x, v.Slice(0, d, 0, k))

	coords := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		for j := 0; j < k; j++ {
			row[j] = projected.At(i, j)
		}
		coords[i] = row
	}
	return toPoints(coords, dims), nil
}

// centerColumns subtracts each column's mean in place, so the components
// capture variance around the centroid rather than its absolute position.
func centerColumns(x *mat.Dense) {
	n, d := x.Dims()
	for j := 0; j < d; j++ {
		mean := stat.Mean(mat.Col(nil, j, x), nil)
		for i := 0; i < n; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}
}

// pinComponentSigns flips each of the first k component columns so its
// largest-magnitude loading is non-negative. SVD signs are otherwise
// arbitrary, which would make output flip between runs and libraries.
func pinComponentSigns(v *mat.Dense, k int) {
	d, _ := v.Dims()
	for j := 0; j < k; j++ {
		maxAbs := 0.0
		sign := 1.0
		for i := 0; i < d; i++ {
			if a := math.Abs(v.At(i, j)); a > maxAbs {
				maxAbs = a
				sign = 1.0
				if v.At(i, j) < 0 {
					sign = -1.0
				}
			}
		}
		if sign < 0 {
			for i := 0; i < d; i++ {
				v.Set(i, j, -v.At(i, j))
			}
		}
	}
}

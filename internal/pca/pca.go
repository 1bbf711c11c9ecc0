// Package pca performs principal component analysis by mean-centering a data
// matrix and taking its thin singular value decomposition.
package pca

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyMatrix is returned for matrices with no rows or no columns.
	ErrEmptyMatrix = errors.New("pca: empty matrix")
	// ErrNoConvergence is returned when the SVD fails to converge.
	ErrNoConvergence = errors.New("pca: svd did not converge")
)

// Result holds the decomposition of a centered r×c matrix Xc = P·diag(D)·Qᵀ,
// with k = min(r, c).
type Result struct {
	// Means are the column means subtracted before factorization (len c).
	Means []float64
	// P holds the left singular vectors (r×k), orthonormal columns.
	P *mat.Dense
	// D holds the singular values in non-increasing order (len k).
	D []float64
	// Q holds the right singular vectors, the component loadings, as
	// orthonormal columns (c×k).
	Q *mat.Dense
	// Projection is Xc·Q (r×k): the coordinates of each centered row in the
	// principal component basis.
	Projection *mat.Dense
}

// Decompose centers a copy of m by column means and factorizes it. m itself
// is never modified. Columns with zero variance are allowed and yield a
// singular value of (numerically) zero.
func Decompose(m mat.Matrix) (*Result, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	xc, means := center(m)

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w (%d×%d)", ErrNoConvergence, r, c)
	}
	res := &Result{Means: means, D: svd.Values(nil), P: &mat.Dense{}, Q: &mat.Dense{}, Projection: &mat.Dense{}}
	svd.UTo(res.P)
	svd.VTo(res.Q)
	res.Projection.Mul(xc, res.Q)
	return res, nil
}

// center returns a centered copy of m and its column means.
func center(m mat.Matrix) (*mat.Dense, []float64) {
	r, c := m.Dims()
	xc := mat.DenseCopyOf(m)
	means := make([]float64, c)
	for j := 0; j < c; j++ {
		var s float64
		for i := 0; i < r; i++ {
			s += xc.At(i, j)
		}
		means[j] = s / float64(r)
	}
	xc.Apply(func(_, j int, v float64) float64 { return v - means[j] }, xc)
	return xc, means
}

// VarianceExplained returns, for each component i, D[i]² / Σ D[j]². A matrix
// with no variance yields all zeros.
func (r *Result) VarianceExplained() []float64 {
	out := make([]float64, len(r.D))
	var total float64
	for _, d := range r.D {
		total += d * d
	}
	if total == 0 {
		return out
	}
	for i, d := range r.D {
		out[i] = d * d / total
	}
	return out
}

// Components returns the first n columns of the projection, clamped to the
// number of components available.
func (r *Result) Components(n int) *mat.Dense {
	rows, k := r.Projection.Dims()
	if n > k {
		n = k
	}
	if n <= 0 {
		return nil
	}
	return mat.DenseCopyOf(r.Projection.Slice(0, rows, 0, n))
}

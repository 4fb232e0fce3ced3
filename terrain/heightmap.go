// Package terrain reconstructs a green's heightfield from traced contours
// and a boundary polygon, and represents it as a queryable HeightMap with
// precomputed gradients.
package terrain

import (
	"math"
	"sort"

	"github.com/arl/assertgo"

	"github.com/arl/greenreader"
)

// HeightMap owns a uniform (X,Z,Y) grid in feet, a validity mask, and (once
// ComputeGradients has been called) the gradient fields the roll simulator
// needs.
//
// Coordinate convention: X east(+), Z north(+), Y up. All three are in
// feet.
type HeightMap struct {
	X, Z, Y  [][]float64 // nz x nx
	ResFt    float64
	Mask     [][]bool // true = inside boundary = valid cell
	GradX    [][]float64
	GradZ    [][]float64
	Slope    [][]float64
	xAxis    []float64
	zAxis    []float64
	gradsSet bool
}

// NewHeightMap validates that X, Z and Y share a shape and stores them. If
// mask is nil it defaults to ¬isNaN(Y).
func NewHeightMap(X, Z, Y [][]float64, resFt float64, mask [][]bool) (*HeightMap, error) {
	if !sameShape(X, Z) || !sameShape(X, Y) {
		return nil, ErrShapeMismatch
	}
	if mask != nil && !sameShape(X, mask2D(mask)) {
		return nil, ErrShapeMismatch
	}

	if mask == nil {
		mask = make([][]bool, len(Y))
		for i, row := range Y {
			mask[i] = make([]bool, len(row))
			for j, v := range row {
				mask[i][j] = !math.IsNaN(v)
			}
		}
	}

	hm := &HeightMap{X: X, Z: Z, Y: Y, ResFt: resFt, Mask: mask}
	hm.xAxis = axisOf(X, false)
	hm.zAxis = axisOf(Z, true)
	return hm, nil
}

// Circular builds a flat circular green of the given radius, centered at
// (0,0), for use in tests: Y=0 inside the disc, NaN outside.
func Circular(radiusFt, resFt float64) *HeightMap {
	n := int(math.Floor(2*radiusFt/resFt+1e-9)) + 1
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = -radiusFt + float64(i)*resFt
	}

	X := make([][]float64, n)
	Z := make([][]float64, n)
	Y := make([][]float64, n)
	mask := make([][]bool, n)
	for i := 0; i < n; i++ {
		X[i] = make([]float64, n)
		Z[i] = make([]float64, n)
		Y[i] = make([]float64, n)
		mask[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			X[i][j] = axis[j]
			Z[i][j] = axis[i]
			inside := axis[j]*axis[j]+axis[i]*axis[i] <= radiusFt*radiusFt
			mask[i][j] = inside
			if inside {
				Y[i][j] = 0
			} else {
				Y[i][j] = math.NaN()
			}
		}
	}

	hm, err := NewHeightMap(X, Z, Y, resFt, mask)
	if err != nil {
		// Shapes are constructed consistently above; this would be a bug
		// in this function, not a caller error.
		panic(err)
	}
	return hm
}

// AddPlanarSlope adds Y += sx*X + sz*Z on masked cells. sx, sz are
// dimensionless rise/run.
func (hm *HeightMap) AddPlanarSlope(sx, sz float64) {
	for i := range hm.Y {
		for j := range hm.Y[i] {
			if hm.Mask[i][j] {
				hm.Y[i][j] += sx*hm.X[i][j] + sz*hm.Z[i][j]
			}
		}
	}
}

// AddGaussianBump adds a smooth bump (h>0) or bowl (h<0) on masked cells.
func (hm *HeightMap) AddGaussianBump(cx, cz, h, sigma float64) {
	for i := range hm.Y {
		for j := range hm.Y[i] {
			if !hm.Mask[i][j] {
				continue
			}
			dx := hm.X[i][j] - cx
			dz := hm.Z[i][j] - cz
			hm.Y[i][j] += h * math.Exp(-(dx*dx+dz*dz)/(2*sigma*sigma))
		}
	}
}

// Normalize shifts Y so that min(Y | mask) == 0.
func (hm *HeightMap) Normalize() {
	min := math.Inf(1)
	for i := range hm.Y {
		for j := range hm.Y[i] {
			if hm.Mask[i][j] && hm.Y[i][j] < min {
				min = hm.Y[i][j]
			}
		}
	}
	if math.IsInf(min, 1) {
		return // nothing masked in; nothing to shift.
	}
	for i := range hm.Y {
		for j := range hm.Y[i] {
			if hm.Mask[i][j] {
				hm.Y[i][j] -= min
			}
		}
	}
}

// ComputeGradients computes centered finite-difference gradients of Y along
// both axes at spacing ResFt. Out-of-mask cells are filled with 0 before
// differencing so the boundary doesn't corrupt interior derivatives; the
// resulting gradients (and Slope) are set back to NaN at out-of-mask cells.
// Must be called before GradientAt. ctx (nil-safe) times the computation and
// emits one progress line.
func (hm *HeightMap) ComputeGradients(ctx *greenreader.BuildContext) {
	ctx.StartTimer(greenreader.StageGradients)
	defer ctx.StopTimer(greenreader.StageGradients)

	nz := len(hm.Y)
	nx := 0
	if nz > 0 {
		nx = len(hm.Y[0])
	}

	filled := make([][]float64, nz)
	for i := 0; i < nz; i++ {
		filled[i] = make([]float64, nx)
		for j := 0; j < nx; j++ {
			if hm.Mask[i][j] {
				filled[i][j] = hm.Y[i][j]
			}
		}
	}

	gradX := make([][]float64, nz)
	gradZ := make([][]float64, nz)
	slope := make([][]float64, nz)
	for i := 0; i < nz; i++ {
		gradX[i] = make([]float64, nx)
		gradZ[i] = make([]float64, nx)
		slope[i] = make([]float64, nx)
		for j := 0; j < nx; j++ {
			gx := centeredDiff(filled[i], j, hm.ResFt)
			var col []float64
			if nx > 0 {
				col = make([]float64, nz)
				for k := 0; k < nz; k++ {
					col[k] = filled[k][j]
				}
			}
			gz := centeredDiff(col, i, hm.ResFt)

			if hm.Mask[i][j] {
				gradX[i][j] = gx
				gradZ[i][j] = gz
				slope[i][j] = math.Sqrt(gx*gx + gz*gz)
			} else {
				gradX[i][j] = math.NaN()
				gradZ[i][j] = math.NaN()
				slope[i][j] = math.NaN()
			}
		}
	}

	hm.GradX, hm.GradZ, hm.Slope = gradX, gradZ, slope
	hm.gradsSet = true
	ctx.Progressf(greenreader.StageGradients, "computed gradients over %dx%d grid", nz, nx)
}

// centeredDiff returns the centered finite-difference derivative of vals at
// index idx with spacing h, falling back to a one-sided difference at the
// array's edges (matching numpy.gradient's edge behavior).
func centeredDiff(vals []float64, idx int, h float64) float64 {
	n := len(vals)
	if n < 2 {
		return 0
	}
	switch {
	case idx == 0:
		return (vals[1] - vals[0]) / h
	case idx == n-1:
		return (vals[n-1] - vals[n-2]) / h
	default:
		return (vals[idx+1] - vals[idx-1]) / (2 * h)
	}
}

// IndexOf returns the nearest-lower-or-equal grid index (iz, ix) for
// (x,z), clamped to the valid range. Deliberately not bilinear: the roll
// simulator is stable with a piecewise-constant gradient under small dt.
func (hm *HeightMap) IndexOf(xFt, zFt float64) (iz, ix int) {
	ix = lowerBound(hm.xAxis, xFt)
	iz = lowerBound(hm.zAxis, zFt)
	assert.True(ix >= 0 && ix < len(hm.xAxis), "IndexOf: ix out of range")
	assert.True(iz >= 0 && iz < len(hm.zAxis), "IndexOf: iz out of range")
	return iz, ix
}

// lowerBound returns the index of the largest value in axis that is <= v,
// clamped to [0, len(axis)-1].
func lowerBound(axis []float64, v float64) int {
	i := sort.Search(len(axis), func(k int) bool { return axis[k] > v })
	i-- // sort.Search returns the first index > v; we want <=.
	if i < 0 {
		i = 0
	}
	if i >= len(axis) {
		i = len(axis) - 1
	}
	return i
}

// HeightAt returns Y at the grid cell nearest (x,z). Never errors: an
// out-of-mask query point clamps to the nearest valid index.
func (hm *HeightMap) HeightAt(xFt, zFt float64) float64 {
	iz, ix := hm.IndexOf(xFt, zFt)
	return hm.Y[iz][ix]
}

// InsideAt reports whether the grid cell nearest (x,z) is inside the mask.
func (hm *HeightMap) InsideAt(xFt, zFt float64) bool {
	iz, ix := hm.IndexOf(xFt, zFt)
	return hm.Mask[iz][ix]
}

// GradientAt returns (dY/dX, dY/dZ) at the grid cell nearest (x,z). Fails
// with ErrGradientsNotComputed if ComputeGradients has not been called.
func (hm *HeightMap) GradientAt(xFt, zFt float64) (gx, gz float64, err error) {
	if !hm.gradsSet {
		return 0, 0, ErrGradientsNotComputed
	}
	iz, ix := hm.IndexOf(xFt, zFt)
	return hm.GradX[iz][ix], hm.GradZ[iz][ix], nil
}

func sameShape(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
	}
	return true
}

func mask2D(m [][]bool) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
	}
	return out
}

// axisOf extracts the 1D axis vector from a meshgrid: the x-axis runs along
// columns of a row (rowMajor=false), the z-axis along rows of a column
// (rowMajor=true).
func axisOf(mesh [][]float64, rowMajor bool) []float64 {
	if len(mesh) == 0 {
		return nil
	}
	if !rowMajor {
		row := mesh[0]
		out := make([]float64, len(row))
		copy(out, row)
		return out
	}
	out := make([]float64, len(mesh))
	for i, row := range mesh {
		if len(row) > 0 {
			out[i] = row[0]
		}
	}
	return out
}

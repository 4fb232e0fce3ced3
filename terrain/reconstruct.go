package terrain

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/arl/greenreader"
)

// Point is an (x,z) location in feet.
type Point struct {
	X, Z float64
}

// Contour is a single traced iso-elevation polyline at an absolute
// elevation in feet.
type Contour struct {
	HeightFt float64
	Points   []Point
}

// ReconstructOptions tunes the scattered-data reconstruction. Zero values
// select the documented defaults.
type ReconstructOptions struct {
	SampleStepFt float64 // default 1.0
	Smoothing    float64 // default 0.25
}

func (o ReconstructOptions) withDefaults() ReconstructOptions {
	if o.SampleStepFt == 0 {
		o.SampleStepFt = 1.0
	}
	// Smoothing's useful default (0.25) is distinct from its zero value
	// (exact interpolation), so a caller must opt into the default
	// explicitly via DefaultReconstructOptions rather than leaving the
	// field unset.
	return o
}

// DefaultReconstructOptions returns the documented defaults
// (SampleStepFt=1.0, Smoothing=0.25).
func DefaultReconstructOptions() ReconstructOptions {
	return ReconstructOptions{SampleStepFt: 1.0, Smoothing: 0.25}
}

// Reconstruct fits a thin-plate-spline radial basis function over contour
// samples densified at ~opts.SampleStepFt, evaluates it on the grid (X,Z),
// masks cells outside boundary, and normalizes so min(Y|inside)==0.
//
// Failure modes: ErrInsufficientSamples (<10 contour sample points),
// ErrSingularFit (the RBF linear system is too ill-conditioned to solve),
// ErrEmptyGrid (no grid cell falls inside boundary).
//
// ctx (nil-safe) times the reconstruction and emits one progress line; no
// reconstruction decision depends on it.
func Reconstruct(ctx *greenreader.BuildContext, boundary []Point, contours []Contour, X, Z [][]float64, opts ReconstructOptions) (Y [][]float64, inside [][]bool, err error) {
	ctx.StartTimer(greenreader.StageReconstruct)
	defer ctx.StopTimer(greenreader.StageReconstruct)

	opts = opts.withDefaults()

	samples := densifyContours(contours, opts.SampleStepFt)
	if len(samples) < 10 {
		return nil, nil, ErrInsufficientSamples
	}

	weights, poly, err := fitThinPlateSpline(samples, opts.Smoothing)
	if err != nil {
		return nil, nil, err
	}

	nz := len(X)
	Y = make([][]float64, nz)
	inside = make([][]bool, nz)
	anyInside := false

	for i := 0; i < nz; i++ {
		nx := len(X[i])
		Y[i] = make([]float64, nx)
		inside[i] = make([]bool, nx)
		for j := 0; j < nx; j++ {
			x, z := X[i][j], Z[i][j]
			if pointInPolygon(boundary, x, z) {
				inside[i][j] = true
				Y[i][j] = evalThinPlateSpline(samples, weights, poly, x, z)
				anyInside = true
			} else {
				Y[i][j] = math.NaN()
			}
		}
	}

	if !anyInside {
		return nil, nil, ErrEmptyGrid
	}

	normalizeInPlace(Y, inside)
	ctx.Progressf(greenreader.StageReconstruct, "reconstructed %dx%d grid from %d contour samples", nz, len(X[0]), len(samples))
	return Y, inside, nil
}

type sample struct {
	x, z, h float64
}

// densifyContours resamples each contour polyline at approximately stepFt
// along its segments, per segment: n = max(1, floor(len/step)) sub-samples
// at t linearly spaced over [0,1), plus the final endpoint.
func densifyContours(contours []Contour, stepFt float64) []sample {
	var out []sample
	for _, c := range contours {
		pts := c.Points
		for i := 0; i+1 < len(pts); i++ {
			x1, z1 := pts[i].X, pts[i].Z
			x2, z2 := pts[i+1].X, pts[i+1].Z
			dx, dz := x2-x1, z2-z1
			dist := math.Hypot(dx, dz)
			n := int(dist / stepFt)
			if n < 1 {
				n = 1
			}
			for k := 0; k < n; k++ {
				t := float64(k) / float64(n)
				out = append(out, sample{x: x1 + t*dx, z: z1 + t*dz, h: c.HeightFt})
			}
		}
		if len(pts) > 0 {
			last := pts[len(pts)-1]
			out = append(out, sample{x: last.X, z: last.Z, h: c.HeightFt})
		}
	}
	return out
}

// tpsKernel is the thin-plate-spline radial basis function phi(r) = r^2*ln(r),
// with phi(0) := 0 (the removable singularity at r=0).
func tpsKernel(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return r * r * math.Log(r)
}

// fitThinPlateSpline solves the augmented thin-plate-spline system
//
//	[K + smoothing*I   P] [w]   [h]
//	[P^T               0] [c] = [0]
//
// where K_ij = phi(|p_i - p_j|) and P's rows are [1, x_i, z_i]. Returns the
// per-sample weights w and the 3 polynomial coefficients c (constant, x,
// z).
func fitThinPlateSpline(samples []sample, smoothing float64) (w, poly []float64, err error) {
	n := len(samples)
	size := n + 3

	A := mat.NewDense(size, size, nil)
	b := mat.NewDense(size, 1, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx := samples[i].x - samples[j].x
			dz := samples[i].z - samples[j].z
			v := tpsKernel(math.Hypot(dx, dz))
			if i == j {
				v += smoothing
			}
			A.Set(i, j, v)
		}
		A.Set(i, n, 1)
		A.Set(i, n+1, samples[i].x)
		A.Set(i, n+2, samples[i].z)
		A.Set(n, i, 1)
		A.Set(n+1, i, samples[i].x)
		A.Set(n+2, i, samples[i].z)
		b.Set(i, 0, samples[i].h)
	}

	var x mat.Dense
	if err := x.Solve(A, b); err != nil {
		return nil, nil, ErrSingularFit
	}

	w = make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = x.At(i, 0)
	}
	poly = []float64{x.At(n, 0), x.At(n+1, 0), x.At(n+2, 0)}
	return w, poly, nil
}

// evalThinPlateSpline evaluates the fitted surface at (x,z).
func evalThinPlateSpline(samples []sample, w, poly []float64, x, z float64) float64 {
	sum := poly[0] + poly[1]*x + poly[2]*z
	for i, s := range samples {
		dx := x - s.x
		dz := z - s.z
		sum += w[i] * tpsKernel(math.Hypot(dx, dz))
	}
	return sum
}

// pointInPolygon is a winding-number containment test. Points exactly on an
// edge are treated as inside (see DESIGN.md's Open Question decisions).
func pointInPolygon(poly []Point, x, z float64) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	winding := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]

		if onSegment(a, b, x, z) {
			return true
		}

		if a.Z <= z {
			if b.Z > z && isLeft(a, b, x, z) > 0 {
				winding++
			}
		} else {
			if b.Z <= z && isLeft(a, b, x, z) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

// isLeft returns >0 if (x,z) is left of the line a->b, <0 if right, 0 if on
// it.
func isLeft(a, b Point, x, z float64) float64 {
	return (b.X-a.X)*(z-a.Z) - (x-a.X)*(b.Z-a.Z)
}

func onSegment(a, b Point, x, z float64) bool {
	const eps = 1e-9
	cross := isLeft(a, b, x, z)
	if math.Abs(cross) > eps {
		return false
	}
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minZ, maxZ := math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)
	return x >= minX-eps && x <= maxX+eps && z >= minZ-eps && z <= maxZ+eps
}

// normalizeInPlace shifts Y so that min(Y | inside) == 0.
func normalizeInPlace(Y [][]float64, inside [][]bool) {
	min := math.Inf(1)
	for i := range Y {
		for j := range Y[i] {
			if inside[i][j] && Y[i][j] < min {
				min = Y[i][j]
			}
		}
	}
	if math.IsInf(min, 1) {
		return
	}
	for i := range Y {
		for j := range Y[i] {
			if inside[i][j] {
				Y[i][j] -= min
			}
		}
	}
}

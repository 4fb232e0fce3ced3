package terrain

import "errors"

// Sentinel errors with a fixed, synchronous disposition: none of them are
// retried, and all of them are fatal to the green (or, for ShapeMismatch
// and ErrGradientsNotComputed, to the caller's own precondition).
var (
	// ErrShapeMismatch is returned by NewHeightMap when X, Z and Y don't
	// share the same shape.
	ErrShapeMismatch = errors.New("terrain: X, Z, Y shapes do not match")

	// ErrInsufficientSamples is returned by Reconstruct when fewer than 10
	// contour sample points were produced.
	ErrInsufficientSamples = errors.New("terrain: fewer than 10 contour samples; trace more/longer contours")

	// ErrSingularFit is returned by Reconstruct when the thin-plate-spline
	// linear system is too ill-conditioned to solve.
	ErrSingularFit = errors.New("terrain: thin-plate-spline fit is singular")

	// ErrEmptyGrid is returned by Reconstruct when no grid cell falls
	// inside the boundary polygon.
	ErrEmptyGrid = errors.New("terrain: no grid cells inside boundary polygon")

	// ErrGradientsNotComputed is returned by GradientAt when
	// ComputeGradients has not yet been called.
	ErrGradientsNotComputed = errors.New("terrain: gradients not computed; call ComputeGradients first")
)

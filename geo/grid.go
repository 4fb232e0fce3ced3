package geo

import "math"

// Grid is a uniform axis-aligned (x,z) grid in feet, centered on the
// green-local origin.
type Grid struct {
	XAxis []float64 // nx monotonically increasing x-coordinates
	ZAxis []float64 // nz monotonically increasing z-coordinates
	X     [][]float64 // nz x nx mesh, X[i][j] == XAxis[j]
	Z     [][]float64 // nz x nx mesh, Z[i][j] == ZAxis[i]
	ResFt float64
}

// MakeLocalGrid builds an axis-aligned grid in feet, centered at (0,0),
// starting at (-widthFt/2, -heightFt/2) at resolution resFt. The far
// endpoint is included when it falls on a cell boundary; otherwise each axis
// ends at the first sample past it, less than one resFt beyond +widthFt/2
// (or +heightFt/2).
func MakeLocalGrid(widthFt, heightFt, resFt float64) Grid {
	xAxis := axisRange(-widthFt/2, widthFt/2, resFt)
	zAxis := axisRange(-heightFt/2, heightFt/2, resFt)

	nz, nx := len(zAxis), len(xAxis)
	X := make([][]float64, nz)
	Z := make([][]float64, nz)
	for i := 0; i < nz; i++ {
		X[i] = make([]float64, nx)
		Z[i] = make([]float64, nx)
		for j := 0; j < nx; j++ {
			X[i][j] = xAxis[j]
			Z[i][j] = zAxis[i]
		}
	}

	return Grid{XAxis: xAxis, ZAxis: zAxis, X: X, Z: Z, ResFt: resFt}
}

// axisRange produces a monotonically increasing axis from lo to hi spaced by
// step. The last sample is the first one at or past hi (within 1e-9), so it
// is hi itself when hi lands on a cell boundary and otherwise lies less than
// one step beyond hi.
func axisRange(lo, hi, step float64) []float64 {
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	axis := make([]float64, n)
	for i := 0; i < n; i++ {
		axis[i] = lo + float64(i)*step
	}
	// Ensure the last sample reaches (or exceeds) hi, appending one more
	// sample if it doesn't.
	if axis[n-1] < hi-1e-9 {
		axis = append(axis, axis[n-1]+step)
	}
	return axis
}

// PixelToFeet converts between image pixel coordinates (u right, v down,
// origin top-left) and green-local feet (x right, z up, origin image
// center).
type PixelToFeet struct {
	ImgWPx        int
	ImgHPx        int
	GreenWidthFt  float64
	GreenHeightFt float64
}

// FtPerPxX is the number of feet spanned by one pixel along the x-axis.
func (t PixelToFeet) FtPerPxX() float64 { return t.GreenWidthFt / float64(t.ImgWPx) }

// FtPerPxZ is the number of feet spanned by one pixel along the z-axis.
func (t PixelToFeet) FtPerPxZ() float64 { return t.GreenHeightFt / float64(t.ImgHPx) }

// UVToXZ converts image pixel coordinates to green-local feet.
func (t PixelToFeet) UVToXZ(uPx, vPx float64) (xFt, zFt float64) {
	xFt = (uPx - float64(t.ImgWPx)/2) * t.FtPerPxX()
	zFt = -(vPx - float64(t.ImgHPx)/2) * t.FtPerPxZ()
	return xFt, zFt
}

// XZToUV converts green-local feet to image pixel coordinates. It is the
// exact inverse of UVToXZ.
func (t PixelToFeet) XZToUV(xFt, zFt float64) (uPx, vPx float64) {
	uPx = xFt/t.FtPerPxX() + float64(t.ImgWPx)/2
	vPx = -zFt/t.FtPerPxZ() + float64(t.ImgHPx)/2
	return uPx, vPx
}

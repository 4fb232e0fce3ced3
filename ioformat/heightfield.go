package ioformat

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/arl/greenreader/terrain"
)

// HeightfieldUnits documents the artifact's length units, always feet.
type HeightfieldUnits struct {
	X string `json:"x"`
	Z string `json:"z"`
	Y string `json:"y"`
}

// HeightfieldGrid describes the binary grid's shape and placement.
type HeightfieldGrid struct {
	Nx           int     `json:"nx"`
	Nz           int     `json:"nz"`
	ResolutionFt float64 `json:"resolution_ft"`
	XMinFt       float64 `json:"x_min_ft"`
	ZMinFt       float64 `json:"z_min_ft"`
}

// HeightfieldMask documents the sidecar's explicit mask plane, applying the
// spec.md §9 fix directly: the mask is always persisted alongside the float
// grid rather than re-derived from Y>0 on reload.
type HeightfieldMask struct {
	Format string `json:"format"`
	Note   string `json:"note"`
}

// HeightfieldSidecar is the JSON record that accompanies the binary
// heightfield grid.
type HeightfieldSidecar struct {
	Units     HeightfieldUnits `json:"units"`
	Grid      HeightfieldGrid  `json:"grid"`
	Mask      HeightfieldMask  `json:"mask"`
	HoleXZFt  *XZPoint         `json:"hole_xz_ft,omitempty"`
}

// WriteHeightfield writes the binary row-major nz*nx single-precision grid
// (NaN cells stored as 0.0, little-endian) to bin, an explicit row-major
// uint8 mask plane (1=inside) to mask, and the sidecar JSON record (which
// describes the mask format but does not contain it) to sidecarMeta.
func WriteHeightfield(bin, mask io.Writer, sidecarMeta io.Writer, hm *terrain.HeightMap, resFt, xMinFt, zMinFt float64, hole *XZPoint) error {
	nz := len(hm.Y)
	if nz == 0 {
		return errors.New("write heightfield: empty grid")
	}
	nx := len(hm.Y[0])

	if err := writeFloat32Grid(bin, hm.Y); err != nil {
		return errors.Wrap(err, "write heightfield binary")
	}
	if err := writeMaskPlane(mask, hm.Mask); err != nil {
		return errors.Wrap(err, "write heightfield mask plane")
	}

	sc := HeightfieldSidecar{
		Units: HeightfieldUnits{X: "ft", Z: "ft", Y: "ft"},
		Grid: HeightfieldGrid{
			Nx: nx, Nz: nz,
			ResolutionFt: resFt,
			XMinFt:       xMinFt,
			ZMinFt:       zMinFt,
		},
		Mask:     HeightfieldMask{Format: "uint8", Note: "1=inside green, persisted explicitly; do not derive from Y>0"},
		HoleXZFt: hole,
	}
	if err := json.NewEncoder(sidecarMeta).Encode(sc); err != nil {
		return errors.Wrap(err, "write heightfield sidecar")
	}
	return nil
}

// ReadHeightfield reads a binary grid, its mask plane, and its sidecar
// record, returning a fully reconstructed terrain.HeightMap with gradients
// NOT yet computed (the caller must call ComputeGradients, in double
// precision, before running a simulation).
func ReadHeightfield(bin, mask io.Reader, sidecarMeta io.Reader) (*terrain.HeightMap, *HeightfieldSidecar, error) {
	var sc HeightfieldSidecar
	if err := json.NewDecoder(sidecarMeta).Decode(&sc); err != nil {
		return nil, nil, errors.Wrap(err, "read heightfield sidecar")
	}

	Y, err := readFloat32Grid(bin, sc.Grid.Nz, sc.Grid.Nx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read heightfield binary")
	}
	maskPlane, err := readMaskPlane(mask, sc.Grid.Nz, sc.Grid.Nx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read heightfield mask plane")
	}

	X := make([][]float64, sc.Grid.Nz)
	Z := make([][]float64, sc.Grid.Nz)
	for i := 0; i < sc.Grid.Nz; i++ {
		X[i] = make([]float64, sc.Grid.Nx)
		Z[i] = make([]float64, sc.Grid.Nx)
		zVal := sc.Grid.ZMinFt + float64(i)*sc.Grid.ResolutionFt
		for j := 0; j < sc.Grid.Nx; j++ {
			X[i][j] = sc.Grid.XMinFt + float64(j)*sc.Grid.ResolutionFt
			Z[i][j] = zVal

			// NaN cells were persisted as 0.0; restore NaN outside the mask
			// so ComputeGradients applies the same NaN-fill-then-mask rule
			// it would on a freshly reconstructed heightmap.
			if !maskPlane[i][j] {
				Y[i][j] = math.NaN()
			}
		}
	}

	hm, err := terrain.NewHeightMap(X, Z, Y, sc.Grid.ResolutionFt, maskPlane)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reconstruct heightmap")
	}
	return hm, &sc, nil
}

func writeFloat32Grid(w io.Writer, Y [][]float64) error {
	for _, row := range Y {
		for _, v := range row {
			f := float32(v)
			if math.IsNaN(v) {
				f = 0.0
			}
			if err := binary.Write(w, binary.LittleEndian, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func readFloat32Grid(r io.Reader, nz, nx int) ([][]float64, error) {
	Y := make([][]float64, nz)
	for i := 0; i < nz; i++ {
		Y[i] = make([]float64, nx)
		for j := 0; j < nx; j++ {
			var f float32
			if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
				return nil, err
			}
			Y[i][j] = float64(f)
		}
	}
	return Y, nil
}

func writeMaskPlane(w io.Writer, mask [][]bool) error {
	for _, row := range mask {
		for _, inside := range row {
			var b byte
			if inside {
				b = 1
			}
			if _, err := w.Write([]byte{b}); err != nil {
				return err
			}
		}
	}
	return nil
}

func readMaskPlane(r io.Reader, nz, nx int) ([][]bool, error) {
	mask := make([][]bool, nz)
	buf := make([]byte, 1)
	for i := 0; i < nz; i++ {
		mask[i] = make([]bool, nx)
		for j := 0; j < nx; j++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, err
			}
			mask[i][j] = buf[0] != 0
		}
	}
	return mask, nil
}

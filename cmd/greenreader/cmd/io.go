package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/arl/greenreader/ioformat"
	"github.com/arl/greenreader/terrain"
)

// readJSON opens path and decodes it with decode, wrapping any error with
// path context.
func readJSON[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := openFile(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return zero, errors.Wrapf(err, "read %q", path)
	}
	return v, nil
}

func writeHeightfieldArtifact(outDir string, hm *terrain.HeightMap, resFt, xMinFt, zMinFt float64) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %q", outDir)
	}

	bin, err := createFile(filepath.Join(outDir, "heightfield.bin"))
	if err != nil {
		return err
	}
	defer bin.Close()

	mask, err := createFile(filepath.Join(outDir, "heightfield.mask"))
	if err != nil {
		return err
	}
	defer mask.Close()

	meta, err := createFile(filepath.Join(outDir, "heightfield.json"))
	if err != nil {
		return err
	}
	defer meta.Close()

	if err := ioformat.WriteHeightfield(bin, mask, meta, hm, resFt, xMinFt, zMinFt, nil); err != nil {
		return errors.Wrapf(err, "write heightfield artifact to %q", outDir)
	}
	return nil
}

func readHeightfieldArtifact(dir string) (*terrain.HeightMap, error) {
	bin, err := openFile(filepath.Join(dir, "heightfield.bin"))
	if err != nil {
		return nil, err
	}
	defer bin.Close()

	mask, err := openFile(filepath.Join(dir, "heightfield.mask"))
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	meta, err := openFile(filepath.Join(dir, "heightfield.json"))
	if err != nil {
		return nil, err
	}
	defer meta.Close()

	hm, _, err := ioformat.ReadHeightfield(bin, mask, meta)
	if err != nil {
		return nil, errors.Wrapf(err, "read heightfield artifact from %q", dir)
	}
	return hm, nil
}

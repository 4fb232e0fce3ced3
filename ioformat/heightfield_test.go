package ioformat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/greenreader/terrain"
)

func TestHeightfieldRoundTrip(t *testing.T) {
	hm := terrain.Circular(10, 1.0)
	hm.AddPlanarSlope(0.01, -0.02)
	hm.Normalize()

	var bin, mask, sidecar bytes.Buffer
	err := WriteHeightfield(&bin, &mask, &sidecar, hm, 1.0, -10, -10, nil)
	assert.NoError(t, err)

	got, sc, err := ReadHeightfield(&bin, &mask, &sidecar)
	assert.NoError(t, err)
	assert.Equal(t, "ft", sc.Units.X)
	assert.Equal(t, "uint8", sc.Mask.Format)
	assert.Equal(t, len(hm.Y), len(got.Y))
	assert.Equal(t, len(hm.Y[0]), len(got.Y[0]))

	for i := range hm.Y {
		for j := range hm.Y[i] {
			if !hm.Mask[i][j] {
				continue
			}
			assert.InDelta(t, hm.Y[i][j], got.Y[i][j], 1e-4, "cell (%d,%d)", i, j)
			assert.True(t, got.Mask[i][j])
		}
	}
}

func TestHeightfieldMaskPersistedExplicitly(t *testing.T) {
	hm := terrain.Circular(5, 1.0)

	var bin, mask, sidecar bytes.Buffer
	err := WriteHeightfield(&bin, &mask, &sidecar, hm, 1.0, -5, -5, nil)
	assert.NoError(t, err)

	got, _, err := ReadHeightfield(&bin, &mask, &sidecar)
	assert.NoError(t, err)

	for i := range hm.Mask {
		for j := range hm.Mask[i] {
			assert.Equal(t, hm.Mask[i][j], got.Mask[i][j])
		}
	}
}

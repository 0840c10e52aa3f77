package checkin

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestPrepareImage_DownscalesLandscape(t *testing.T) {
	data := testPhoto(t, 1024, 768)

	out, err := PrepareImage(data, DefaultPrepOptions())
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 512, w)
	assert.Equal(t, 384, h)
}

func TestPrepareImage_DownscalesPortrait(t *testing.T) {
	data := testPhoto(t, 300, 900)

	out, err := PrepareImage(data, DefaultPrepOptions())
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 170, w)
	assert.Equal(t, 512, h)
}

func TestPrepareImage_SmallImageKeepsDimensions(t *testing.T) {
	data := testPhoto(t, 200, 100)

	out, err := PrepareImage(data, DefaultPrepOptions())
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestPrepareImage_RespectsSizeCeiling(t *testing.T) {
	data := testPhoto(t, 512, 512)

	opts := DefaultPrepOptions()
	opts.MaxBytes = 20 * 1024

	out, err := PrepareImage(data, opts)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out), opts.MaxBytes)
}

func TestPrepareImage_StopsAtQualityFloor(t *testing.T) {
	data := testPhoto(t, 512, 512)

	// A ceiling no encoding can meet: the floor-quality payload is
	// returned rather than an error.
	opts := DefaultPrepOptions()
	opts.MaxBytes = 10

	out, err := PrepareImage(data, opts)
	require.NoError(t, err)
	assert.Greater(t, len(out), opts.MaxBytes)
}

func TestPrepareImage_RejectsGarbage(t *testing.T) {
	_, err := PrepareImage([]byte("not an image"), DefaultPrepOptions())
	assert.Error(t, err)
}

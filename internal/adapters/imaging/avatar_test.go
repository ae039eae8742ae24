package imaging

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "upload")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestPrepareAvatar_ResizesToSquareJPEG(t *testing.T) {
	src := writePNG(t, 640, 320)
	p := NewAvatarProcessor(100)

	out, err := p.PrepareAvatar(context.Background(), src)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(out) })

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
	assert.FileExists(t, src)
}

func TestPrepareAvatar_RejectsNonImage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "upload")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 not an image"), 0o600))

	_, err := NewAvatarProcessor(0).PrepareAvatar(context.Background(), src)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
}

func TestCenterSquare(t *testing.T) {
	assert.Equal(t, image.Rect(160, 0, 480, 320), centerSquare(image.Rect(0, 0, 640, 320)))
	assert.Equal(t, image.Rect(0, 10, 50, 60), centerSquare(image.Rect(0, 0, 50, 70)))
}

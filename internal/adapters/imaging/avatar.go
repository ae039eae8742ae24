// Package imaging normalizes uploaded avatars into square JPEGs.
package imaging

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/gabriel-vasile/mimetype"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultAvatarSize = 250
	jpegQuality       = 85
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// AvatarProcessor crops the centre square of an image and scales it to Size x Size.
type AvatarProcessor struct {
	Size int
}

var _ portssvc.ImageProcessor = (*AvatarProcessor)(nil)

func NewAvatarProcessor(size int) *AvatarProcessor {
	if size <= 0 {
		size = DefaultAvatarSize
	}
	return &AvatarProcessor{Size: size}
}

// PrepareAvatar sniffs the content type, rejecting anything that is not a supported image,
// and writes the resized JPEG to a new temporary file.
func (p *AvatarProcessor) PrepareAvatar(ctx context.Context, srcPath string) (string, error) {
	mtype, err := mimetype.DetectFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", apperrors.NewBadRequestError("Unsupported image type " + mtype.String())
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", apperrors.NewBadRequestError("Could not decode image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := os.CreateTemp("", "avatar-*.jpg")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := jpeg.Encode(out, p.resize(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("close avatar: %w", err)
	}
	return out.Name(), nil
}

func (p *AvatarProcessor) resize(img image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, centerSquare(img.Bounds()), xdraw.Src, nil)
	return dst
}

func centerSquare(b image.Rectangle) image.Rectangle {
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}

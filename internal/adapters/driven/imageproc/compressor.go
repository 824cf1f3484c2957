// Package imageproc decodes, resizes and re-encodes raster images.
//
// The Compressor implements driven.ImageCompressor for captured photos.
// Normalize and Inspect are used by the report renderers, which can only
// embed baseline JPEG and PNG data.
package imageproc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/logger"
)

const (
	minQuality    = 30
	qualityStep   = 10
	shrinkFactor  = 0.8
	maxShrinkPass = 6
)

// Ensure Compressor implements the interface.
var _ driven.ImageCompressor = (*Compressor)(nil)

// Compressor resizes photos to fit a bounding box and re-encodes them as JPEG,
// lowering quality and then dimensions until the size target is met.
type Compressor struct{}

// NewCompressor creates a new compressor.
func NewCompressor() *Compressor {
	return &Compressor{}
}

// Compress implements driven.ImageCompressor.
func (c *Compressor) Compress(ctx context.Context, data []byte, mediaType string, opts driven.CompressionOptions) ([]byte, string, error) {
	defer logger.Timed("compress image")()

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", mediaType, err)
	}

	bounds := img.Bounds()
	withinBox := opts.MaxDimension <= 0 ||
		(bounds.Dx() <= opts.MaxDimension && bounds.Dy() <= opts.MaxDimension)
	if !withinBox {
		img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
	}
	img = flatten(img)

	quality := int(opts.Quality * 100)
	if quality <= 0 || quality > 100 {
		quality = 70
	}

	var out []byte
	for pass := 0; pass <= maxShrinkPass; pass++ {
		for q := quality; q >= minQuality; q -= qualityStep {
			if err := ctx.Err(); err != nil {
				return nil, "", err
			}
			out, err = encodeJPEG(img, q)
			if err != nil {
				return nil, "", err
			}
			if opts.MaxBytes <= 0 || len(out) <= opts.MaxBytes {
				if keepOriginal(data, mediaType, out, withinBox) {
					return data, mediaType, nil
				}
				return out, "image/jpeg", nil
			}
		}
		b := img.Bounds()
		w := int(float64(b.Dx()) * shrinkFactor)
		h := int(float64(b.Dy()) * shrinkFactor)
		if w < 1 || h < 1 {
			break
		}
		logger.Debug("image still %d bytes at quality %d, shrinking to %dx%d", len(out), minQuality, w, h)
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	// Best effort: the smallest encoding produced.
	return out, "image/jpeg", nil
}

// keepOriginal is true when the input is already a JPEG inside the
// bounding box and no larger than the re-encoded version.
func keepOriginal(orig []byte, mediaType string, encoded []byte, withinBox bool) bool {
	return withinBox && mediaType == "image/jpeg" && len(orig) <= len(encoded)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten composites translucent images onto white; JPEG has no alpha.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Info describes a decoded image header.
type Info struct {
	Width  int
	Height int
	Format string
}

// Inspect reads only the image header.
func Inspect(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("reading image header: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Normalize decodes any supported image and re-encodes it as JPEG
// (photos) or PNG (when alpha must be kept), returning the new bytes,
// the format name understood by PDF writers, and the pixel size.
func Normalize(data []byte, keepAlpha bool) ([]byte, string, Info, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", Info{}, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	info := Info{Width: b.Dx(), Height: b.Dy()}

	var buf bytes.Buffer
	if keepAlpha {
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, "", Info{}, fmt.Errorf("encoding png: %w", err)
		}
		info.Format = "png"
		return buf.Bytes(), "PNG", info, nil
	}
	if err := imaging.Encode(&buf, flatten(img), imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, "", Info{}, fmt.Errorf("encoding jpeg: %w", err)
	}
	info.Format = "jpeg"
	return buf.Bytes(), "JPG", info, nil
}

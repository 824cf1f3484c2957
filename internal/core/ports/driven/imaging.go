package driven

import "context"

// CompressionOptions bounds the output of an ImageCompressor.
type CompressionOptions struct {
	// MaxBytes is the target upper bound of the encoded size.
	MaxBytes int

	// MaxDimension is the longest allowed side in pixels.
	MaxDimension int

	// Quality is the starting encoder quality in (0, 1].
	Quality float64
}

// DefaultCompressionOptions are applied to every captured photo.
func DefaultCompressionOptions() CompressionOptions {
	return CompressionOptions{
		MaxBytes:     700 * 1024,
		MaxDimension: 1280,
		Quality:      0.7,
	}
}

// ImageCompressor resizes and recompresses raster images.
type ImageCompressor interface {
	// Compress returns the re-encoded image and its media type.
	Compress(ctx context.Context, data []byte, mediaType string, opts CompressionOptions) ([]byte, string, error)
}

// HeaderAssetProvider supplies branding assets for report headers.
type HeaderAssetProvider interface {
	// Logo returns the logo bytes. The boolean is false when no logo
	// is available; errors are reported only for unexpected failures.
	Logo(ctx context.Context) ([]byte, bool, error)
}

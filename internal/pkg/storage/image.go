package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor normalizes uploaded court and profile images.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Normalize decodes the uploaded image, downscales it to fit within
// maxWidth x maxHeight, and re-encodes it as JPEG. Re-encoding strips
// whatever the client uploaded down to a known-safe format.
func (p *ImageProcessor) Normalize(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}

// Thumbnail creates a small preview from the source image as a JPEG.
func (p *ImageProcessor) Thumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, nil
}

package worker

import (
	"fmt"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/you/blogsvc/domain"
)

// ImagingOptimizer implements domain.ImageOptimizer: resize to the requested
// box and transcode to webp.
type ImagingOptimizer struct{}

// NewImagingOptimizer creates the default optimizer.
func NewImagingOptimizer() *ImagingOptimizer {
	return &ImagingOptimizer{}
}

// Optimize reads the original, resizes it and writes the webp derivative.
// Writing to the final path directly is fine: a retried job overwrites the
// same file.
func (o *ImagingOptimizer) Optimize(srcPath, dstPath string, width, height, quality int) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	defer out.Close()

	if err := webp.Encode(out, resized, &webp.Options{Quality: float32(quality)}); err != nil {
		return fmt.Errorf("encode %s: %w", dstPath, err)
	}
	return nil
}

var _ domain.ImageOptimizer = (*ImagingOptimizer)(nil)

package dsp

import (
	"math"

	"github.com/media-luna/eureka/internal/errs"
)

// ImageCells is the number of float32 cells in one spectral image:
// SpectralImageWidth rows of NumberOfBins bins each.
const ImageCells = SpectralImageWidth * NumberOfBins

// NumImages returns the number of spectral images obtainable from
// nFrames bin-rows, per spec.md §3: 1 + floor((nFrames -
// SpectralImageWidth) / DistanceBetweenSpectralImageStart).
func NumImages(nFrames int) int {
	if nFrames < SpectralImageWidth {
		return 0
	}
	return 1 + (nFrames-SpectralImageWidth)/DistanceBetweenSpectralImageStart
}

func logScale(value, max float32) float32 {
	scaled := 255.0 * value / max
	if scaled > 255.0 {
		scaled = 255.0
	}
	if scaled < 0 {
		scaled = 0
	}
	return float32(math.Log2(float64(1+scaled)) / math.Log2(256))
}

// scaleToFullSpectrum rescales one spectral image's cells in place to
// [0,1] by log-compressing against the image's own maximum, per
// spec.md §4.4.
func scaleToFullSpectrum(image []float32) {
	max := image[0]
	for _, v := range image[1:] {
		if v > max {
			max = v
		}
	}

	for i, v := range image {
		image[i] = logScale(v, max)
	}
}

// BuildSpectralImages groups nFrames consecutive bin-rows (flattened,
// NumberOfBins wide each, as produced by BuildFrameBins) into
// overlapping SpectralImageWidth-row images and normalizes each image to
// [0,1] in place. Image construction is embarrassingly parallel across
// images (spec.md §5).
func BuildSpectralImages(bins []float32, nFrames int) ([][]float32, error) {
	nImages := NumImages(nFrames)
	if nImages == 0 {
		return nil, errs.New(errs.KindInputTooSmall, "fewer than one spectral image's worth of frames")
	}

	images := make([][]float32, nImages)

	parallelRange(nImages, func(first, last int) {
		for i := first; i <= last; i++ {
			image := make([]float32, ImageCells)
			start := i * DistanceBetweenSpectralImageStart * NumberOfBins
			copy(image, bins[start:start+ImageCells])
			scaleToFullSpectrum(image)
			images[i] = image
		}
	})

	return images, nil
}

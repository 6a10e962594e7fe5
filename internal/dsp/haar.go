package dsp

import "math"

var sqrt2 = float32(math.Sqrt2)

// transformArray applies the standard 1-D Haar transform in place to a
// power-of-two-length array, per spec.md §4.5: repeatedly halve the
// active length, averaging/differencing adjacent pairs into the low and
// high half of a scratch buffer, until one element remains.
func transformArray(data []float32) {
	size := len(data)
	if size != NumberOfBins && size != SpectralImageWidth {
		panic("dsp: Haar transform array length must be NumberOfBins or SpectralImageWidth")
	}

	var tmp [SpectralImageWidth]float32
	for size > 1 {
		size /= 2
		for i := 0; i < size; i++ {
			tmp[i] = (data[2*i] + data[2*i+1]) / sqrt2
			tmp[i+size] = (data[2*i] - data[2*i+1]) / sqrt2
		}
		copy(data[:2*size], tmp[:2*size])
	}
}

// transformImage applies the 2-D standard Haar transform to one spectral
// image: first a length-SpectralImageWidth transform along the frame
// axis for each of the NumberOfBins bins, then a length-NumberOfBins
// transform along the bin axis for each of the SpectralImageWidth
// frames. The image is laid out frame-major (image[frame*NumberOfBins +
// bin]), so the bin-axis transforms operate on already-contiguous
// NumberOfBins-wide blocks while the frame-axis transforms need a
// strided gather/scatter.
func transformImage(image []float32) {
	var column [SpectralImageWidth]float32

	for bin := 0; bin < NumberOfBins; bin++ {
		for frame := 0; frame < SpectralImageWidth; frame++ {
			column[frame] = image[frame*NumberOfBins+bin]
		}
		transformArray(column[:])
		for frame := 0; frame < SpectralImageWidth; frame++ {
			image[frame*NumberOfBins+bin] = column[frame]
		}
	}

	for frame := 0; frame < SpectralImageWidth; frame++ {
		transformArray(image[frame*NumberOfBins : (frame+1)*NumberOfBins])
	}
}

// ApplyHaarTransform runs the 2-D Haar transform over every image in
// place. Transforms are embarrassingly parallel across images
// (spec.md §5).
func ApplyHaarTransform(images [][]float32) {
	parallelRange(len(images), func(first, last int) {
		for i := first; i <= last; i++ {
			transformImage(images[i])
		}
	})
}

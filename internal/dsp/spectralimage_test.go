package dsp

import "testing"

func TestNumImages(t *testing.T) {
	cases := []struct {
		nFrames int
		want    int
	}{
		{0, 0},
		{SpectralImageWidth - 1, 0},
		{SpectralImageWidth, 1},
		{SpectralImageWidth + DistanceBetweenSpectralImageStart, 2},
	}
	for _, c := range cases {
		if got := NumImages(c.nFrames); got != c.want {
			t.Errorf("NumImages(%d) = %d, want %d", c.nFrames, got, c.want)
		}
	}
}

func TestBuildSpectralImagesTooSmall(t *testing.T) {
	bins := make([]float32, (SpectralImageWidth-1)*NumberOfBins)
	_, err := BuildSpectralImages(bins, SpectralImageWidth-1)
	if err == nil {
		t.Fatal("expected an error for fewer than one image's worth of frames")
	}
}

func TestBuildSpectralImagesNormalizesToUnitRange(t *testing.T) {
	nFrames := SpectralImageWidth + DistanceBetweenSpectralImageStart*3
	bins := make([]float32, nFrames*NumberOfBins)
	for i := range bins {
		bins[i] = float32(i % 17)
	}

	images, err := BuildSpectralImages(bins, nFrames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != NumImages(nFrames) {
		t.Fatalf("got %d images, want %d", len(images), NumImages(nFrames))
	}

	for _, img := range images {
		if len(img) != ImageCells {
			t.Fatalf("image has %d cells, want %d", len(img), ImageCells)
		}
		for _, v := range img {
			if v < -1e-6 || v > 1+1e-6 {
				t.Fatalf("cell %v outside [0,1]", v)
			}
		}
	}
}

package dsp

import "testing"

func TestBuildRawFingerprintSilenceFlag(t *testing.T) {
	image := make([]float32, ImageCells)
	fp := BuildRawFingerprint(image)
	if !fp.IsSilence {
		t.Fatal("an all-zero image should be flagged as silence")
	}
}

func TestBuildRawFingerprintNotSilence(t *testing.T) {
	image := make([]float32, ImageCells)
	for i := 0; i < SilenceMinimumStrongCells+5; i++ {
		image[i] = SilenceStrongMagnitude + float32(i) + 1
	}
	fp := BuildRawFingerprint(image)
	if fp.IsSilence {
		t.Fatal("an image with enough strong cells should not be flagged as silence")
	}
}

func TestBuildRawFingerprintSetsExpectedBits(t *testing.T) {
	image := make([]float32, ImageCells)
	image[0] = 5.0
	image[1] = -5.0
	fp := BuildRawFingerprint(image)
	if !fp.Bit(0) {
		t.Error("expected bit 0 (positive coefficient at index 0) to be set")
	}
	if fp.Bit(1) {
		t.Error("did not expect bit 1 (negative side of index 0) to be set for a positive coefficient")
	}
	if !fp.Bit(3) {
		t.Error("expected bit 3 (negative coefficient at index 1) to be set")
	}
}

func TestBuildRawFingerprintsParallel(t *testing.T) {
	images := make([][]float32, 20)
	for i := range images {
		images[i] = make([]float32, ImageCells)
		images[i][i%ImageCells] = 2.0
	}
	fps := BuildRawFingerprints(images)
	if len(fps) != len(images) {
		t.Fatalf("got %d fingerprints, want %d", len(fps), len(images))
	}
}

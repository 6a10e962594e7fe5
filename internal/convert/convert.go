// Package convert turns non-WAV audio inputs into the 44100Hz mono
// float32 sample buffers the fingerprinting pipeline expects. FLAC and
// MP3 are decoded in-process via github.com/faiface/beep (its flac
// decoder is backed by github.com/mewkiz/flac); any other container
// falls back to shelling out to ffmpeg, the way the original tool did
// (see ffmpeg.c).
package convert

import (
	"bufio"
	"os"
	"os/exec"
	"strings"

	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"

	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/wavio"
)

// Metadata mirrors wavio.Metadata so callers don't need to import both
// packages just to pass tags around.
type Metadata = wavio.Metadata

// DecodeFLAC decodes a FLAC file into mono float32 samples at its native
// sample rate, downmixing stereo by averaging channels.
func DecodeFLAC(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errs.Wrap(err, errs.KindInputAbsent, "opening flac file")
	}
	defer f.Close()

	streamer, format, err := flac.Decode(f)
	if err != nil {
		return nil, 0, errs.Wrap(err, errs.KindInputMalformed, "decoding flac stream")
	}
	defer streamer.Close()

	var samples []float32
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			left, right := buf[i][0], buf[i][1]
			samples = append(samples, float32((left+right)/2))
		}
		if !ok {
			break
		}
	}

	return samples, int(format.SampleRate), nil
}

// DecodeMP3 decodes an MP3 file into mono float32 samples at its native
// sample rate, downmixing stereo by averaging channels. Mirrors DecodeFLAC;
// both streams a beep.StreamSeekCloser the same way.
func DecodeMP3(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errs.Wrap(err, errs.KindInputAbsent, "opening mp3 file")
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, 0, errs.Wrap(err, errs.KindInputMalformed, "decoding mp3 stream")
	}
	defer streamer.Close()

	var samples []float32
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			left, right := buf[i][0], buf[i][1]
			samples = append(samples, float32((left+right)/2))
		}
		if !ok {
			break
		}
	}

	return samples, int(format.SampleRate), nil
}

// ViaFFmpeg shells out to ffmpeg to transcode input (any container
// ffmpeg understands) to a temporary 44100Hz 16-bit mono WAV file,
// mirroring the original tool's fallback path (ffmpeg.c). It returns the
// decoded samples and whatever ID3/format metadata ffmpeg could extract.
// The temporary files are removed before returning.
func ViaFFmpeg(input string) ([]float32, Metadata, error) {
	wavPath, err := tempPath("eureka-wav-*.wav")
	if err != nil {
		return nil, Metadata{}, err
	}
	defer os.Remove(wavPath)

	metaPath, err := tempPath("eureka-meta-*.txt")
	if err != nil {
		return nil, Metadata{}, err
	}
	defer os.Remove(metaPath)

	cmd := exec.Command("ffmpeg", "-y",
		"-i", input,
		"-acodec", "pcm_s16le", "-ar", "44100", "-ac", "1", "-f", "wav", wavPath,
		"-f", "ffmetadata", metaPath,
	)
	if err := cmd.Run(); err != nil {
		return nil, Metadata{}, errs.Wrap(err, errs.KindInputMalformed, "converting input with ffmpeg")
	}

	decoded, err := wavio.ReadFile(wavPath)
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := parseFFMetadata(metaPath)
	return decoded.Samples, meta, nil
}

func tempPath(pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", errs.Wrap(err, errs.KindResourceExhausted, "creating temp file for ffmpeg conversion")
	}
	path := f.Name()
	f.Close()
	return path, nil
}

// parseFFMetadata reads an ffmetadata text file (key=value lines) and
// extracts artist/title/album, matching the original's parse_metadata.
// Absence of the file or of any given key is not an error.
func parseFFMetadata(path string) Metadata {
	var meta Metadata

	f, err := os.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case meta.Artist == "" && strings.HasPrefix(line, "artist="):
			meta.Artist = strings.TrimPrefix(line, "artist=")
		case meta.TrackTitle == "" && strings.HasPrefix(line, "title="):
			meta.TrackTitle = strings.TrimPrefix(line, "title=")
		case meta.AlbumTitle == "" && strings.HasPrefix(line, "album="):
			meta.AlbumTitle = strings.TrimPrefix(line, "album=")
		}
	}

	return meta
}

// Package wavio reads and writes 16-bit PCM WAV files, producing the mono
// float32 sample buffers the fingerprinting pipeline expects. PCM
// decoding itself is delegated to github.com/go-audio/wav and
// github.com/go-audio/audio; this package adds input validation
// (spec.md's "unsupported wave format" cases) and a small hand-rolled
// scan for the optional LIST/INFO metadata chunk (artist/title/album),
// which go-audio/wav does not expose.
package wavio

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
)

// Metadata holds the optional track information found in a WAV file's
// LIST/INFO chunk.
type Metadata struct {
	Artist     string
	TrackTitle string
	AlbumTitle string
}

// Decoded is the result of reading a WAV file: mono float32 samples in
// [-1, 1] at the file's native sample rate, plus whatever metadata could
// be found.
type Decoded struct {
	Samples    []float32
	SampleRate int
	Metadata   Metadata
}

// ReadFile opens path and decodes it as a 16-bit PCM WAV file.
func ReadFile(path string) (*Decoded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(err, errs.KindInputAbsent, "opening wav file")
		}
		return nil, errs.Wrap(err, errs.KindInputAbsent, "reading wav file")
	}
	return Decode(raw)
}

// Decode decodes raw WAV bytes, validating that the format is mono-or-
// stereo 16-bit PCM (any sample rate: the pipeline's own resampler
// expects 44100Hz input, but decoding itself is not where that is
// enforced — see internal/eureka's decodeInput).
func Decode(raw []byte) (*Decoded, error) {
	decoder := wav.NewDecoder(bytes.NewReader(raw))
	if !decoder.IsValidFile() {
		return nil, errs.New(errs.KindInputMalformed, "not a recognizable wav file")
	}

	if decoder.BitDepth != 16 {
		return nil, errs.New(errs.KindInputUnsupported, "only 16-bit PCM wav files are supported")
	}
	if decoder.NumChans == 0 || decoder.NumChans > 2 {
		return nil, errs.New(errs.KindInputUnsupported, "only mono or stereo wav files are supported")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, errs.Wrap(err, errs.KindInputMalformed, "reading wav pcm data")
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, errs.New(errs.KindInputTooSmall, "wav file contains no audio samples")
	}

	channels := int(decoder.NumChans)
	samples := downmixToMono(buf.Data, channels)

	return &Decoded{
		Samples:    samples,
		SampleRate: int(decoder.SampleRate),
		Metadata:   scanListInfoChunk(raw),
	}, nil
}

// downmixToMono averages channels sample by sample and rescales from
// 16-bit PCM integer range to [-1, 1], per spec.md §4.1's channel
// handling.
func downmixToMono(data []int, channels int) []float32 {
	n := len(data) / channels
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum int
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c]
		}
		out[i] = float32(sum) / float32(channels) / 32767.0
	}
	return out
}

// scanListInfoChunk walks the RIFF chunk list looking for a LIST/INFO
// chunk holding IART (artist), INAM (title) or IPRD (album) sub-chunks.
// Absence of the chunk, or of any of its fields, is not an error: they
// simply stay empty.
func scanListInfoChunk(raw []byte) Metadata {
	var meta Metadata
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return meta
	}

	pos := 12
	for pos+8 <= len(raw) {
		chunkID := string(raw[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		bodyStart := pos + 8
		bodyEnd := bodyStart + chunkSize
		if bodyEnd > len(raw) {
			break
		}

		if chunkID == "LIST" && chunkSize >= 4 && string(raw[bodyStart:bodyStart+4]) == "INFO" {
			scanInfoSubchunks(raw[bodyStart+4:bodyEnd], &meta)
		}

		pos = bodyEnd
		if chunkSize%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}

	return meta
}

func scanInfoSubchunks(body []byte, meta *Metadata) {
	pos := 0
	for pos+8 <= len(body) {
		id := string(body[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(body[pos+4 : pos+8]))
		start := pos + 8
		end := start + size
		if end > len(body) {
			return
		}

		value := trimNullTerminated(body[start:end])
		switch id {
		case "IART":
			meta.Artist = value
		case "INAM":
			meta.TrackTitle = value
		case "IPRD":
			meta.AlbumTitle = value
		}

		pos = end
		if size%2 == 1 {
			pos++
		}
	}
}

func trimNullTerminated(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// WriteFile is a thin convenience wrapper used by tests and tools that
// need to materialize a WAV file from mono float32 samples (e.g. to feed
// to internal/convert's ffmpeg fallback). It writes 16-bit PCM at
// sampleRate.
func WriteFile(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "creating wav file")
	}
	defer f.Close()
	return Write(f, samples, sampleRate)
}

// Write encodes samples as 16-bit mono PCM WAV to w.
func Write(w io.WriteSeeker, samples []float32, sampleRate int) error {
	encoder := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	intData := make([]int, len(samples))
	for i, s := range samples {
		v := s * 32767.0
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		intData[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   intData,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "writing wav pcm data")
	}
	return encoder.Close()
}

// RawFingerprintSanityCheck is exposed so callers (the CLI, tests) can
// cheaply check whether a decoded buffer even has a chance of producing
// a fingerprint before running the full pipeline.
func RawFingerprintSanityCheck(d *Decoded) error {
	if len(d.Samples) < dsp.SamplesPerFrame {
		return errs.New(errs.KindInputTooSmall, "wav file too short to fingerprint")
	}
	return nil
}

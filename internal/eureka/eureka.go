// Package eureka ties the fingerprinting pipeline, the plain-text
// library index, the LSH index, the matcher and the optional SQL
// catalog together behind the small set of operations the CLI exposes:
// saving a track to the library, recognizing an unknown sample against
// it, listing/deleting/cleaning up catalog entries, and live microphone
// recognition. Adapted from the teacher's Eureka facade, replacing its
// constellation-hash recognition with the Haar/MinHash/LSH pipeline.
package eureka

import (
	"fmt"
	"path/filepath"

	config "github.com/media-luna/eureka/configs"
	"github.com/media-luna/eureka/internal/capture"
	"github.com/media-luna/eureka/internal/convert"
	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/fingerprint"
	"github.com/media-luna/eureka/internal/librarydb"
	"github.com/media-luna/eureka/internal/libraryio"
	"github.com/media-luna/eureka/internal/lshindex"
	"github.com/media-luna/eureka/internal/matcher"
	"github.com/media-luna/eureka/internal/wavio"
	"github.com/media-luna/eureka/utils/logger"
)

// Eureka is the application facade: every CLI command is a thin wrapper
// around one of its methods.
type Eureka struct {
	cfg     config.Config
	catalog librarydb.Catalog
}

// NewEureka wires up the optional SQL catalog (if cfg.Database.Type is
// set) and returns a ready-to-use facade.
func NewEureka(cfg config.Config) (*Eureka, error) {
	dsp.SetPoolSize(cfg.Fingerprint.WorkerPoolSize)

	catalog, err := librarydb.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	if catalog != nil {
		if err := catalog.Setup(); err != nil {
			return nil, err
		}
	}
	return &Eureka{cfg: cfg, catalog: catalog}, nil
}

// TrackSummary is a catalog-agnostic view of one listed track.
type TrackSummary struct {
	ID            int
	Filename      string
	Artist        string
	TrackTitle    string
	NumSignatures int
}

// requiredSampleRate is the rate the fingerprinting pipeline's resampler
// is built around (spec.md §4); any decoded input at a different rate is
// routed through the ffmpeg fallback, which always normalizes to it.
const requiredSampleRate = dsp.InputSampleRate

// decodeInput loads path as 44100Hz mono float32 samples. A plain WAV at
// the right rate is read directly; a FLAC or MP3 file is decoded
// in-process; anything else (or a WAV/FLAC/MP3 at the wrong rate) falls
// back to an
// ffmpeg-backed conversion, mirroring the original tool's fallback
// behavior (ffmpeg.c).
func decodeInput(path string) ([]float32, convert.Metadata, error) {
	if decoded, err := wavio.ReadFile(path); err == nil {
		if decoded.SampleRate == requiredSampleRate {
			if err := wavio.RawFingerprintSanityCheck(decoded); err != nil {
				return nil, convert.Metadata{}, err
			}
			return decoded.Samples, decoded.Metadata, nil
		}
		logger.Info(fmt.Sprintf("%s is %dHz, converting with ffmpeg", path, decoded.SampleRate))
	} else if !errs.Is(err, errs.KindInputMalformed) && !errs.Is(err, errs.KindInputUnsupported) {
		return nil, convert.Metadata{}, err
	}

	switch filepath.Ext(path) {
	case ".flac":
		if samples, rate, err := convert.DecodeFLAC(path); err == nil && rate == requiredSampleRate {
			return samples, convert.Metadata{}, nil
		}
	case ".mp3":
		if samples, rate, err := convert.DecodeMP3(path); err == nil && rate == requiredSampleRate {
			return samples, convert.Metadata{}, nil
		}
	}

	logger.Info(fmt.Sprintf("converting %s with ffmpeg", path))
	samples, meta, convErr := convert.ViaFFmpeg(path)
	if convErr != nil {
		return nil, convert.Metadata{}, convErr
	}
	return samples, meta, nil
}

// Fingerprint decodes the audio file at path and builds the
// libraryio.Entry for it, without writing it anywhere. This is the
// standalone operation behind the spec's `index <input>` contract command
// (spec.md §6): it needs no configuration or catalog, just the file.
func Fingerprint(path string) (libraryio.Entry, error) {
	samples, meta, err := decodeInput(path)
	if err != nil {
		return libraryio.Entry{}, err
	}

	result, err := fingerprint.Generate(samples)
	if err != nil {
		return libraryio.Entry{}, err
	}
	if result.IsSilent() {
		logger.Info(fmt.Sprintf("%s produced no usable fingerprint (silence)", path))
	}

	return libraryio.Entry{
		Filename:   filepath.Base(path),
		Artist:     meta.Artist,
		TrackTitle: meta.TrackTitle,
		AlbumTitle: meta.AlbumTitle,
		Signatures: result.Signatures,
	}, nil
}

// RecognizeAgainstIndex fingerprints the audio file at path and searches
// for it against the library index file at indexPath, explicitly given
// rather than read from configuration. This is the standalone operation
// behind the spec's `search <input> <index>` contract command (spec.md
// §6). verbose reproduces the reference search.c's top-candidate
// diagnostic logging.
func RecognizeAgainstIndex(path, indexPath string, verbose bool) (*matcher.Result, error) {
	samples, _, err := decodeInput(path)
	if err != nil {
		return nil, err
	}

	result, err := fingerprint.Generate(samples)
	if err != nil {
		return nil, err
	}

	library, err := libraryio.ReadIndex(indexPath)
	if err != nil {
		return nil, err
	}

	return searchLibrary(result.Signatures, library, verbose)
}

// Save fingerprints the audio file at path and appends it to the
// library: the plain-text index always, and the SQL catalog if one is
// configured.
func (e *Eureka) Save(path string) error {
	entry, err := Fingerprint(path)
	if err != nil {
		return err
	}

	if err := libraryio.AppendEntry(e.cfg.Library.IndexPath, entry); err != nil {
		return err
	}

	if e.catalog != nil {
		_, err := e.catalog.InsertTrack(librarydb.Track{
			Filename:      entry.Filename,
			Artist:        entry.Artist,
			TrackTitle:    entry.TrackTitle,
			AlbumTitle:    entry.AlbumTitle,
			NumSignatures: len(entry.Signatures),
		})
		if err != nil {
			return err
		}
	}

	logger.Info(fmt.Sprintf("saved %s (%d signatures)", entry.Filename, len(entry.Signatures)))
	return nil
}

// Recognize fingerprints the audio file at path and searches for it in
// the plain-text library index named by configuration. verbose reproduces
// the reference search.c's top-candidate diagnostic logging.
func (e *Eureka) Recognize(path string, verbose bool) (*matcher.Result, error) {
	return RecognizeAgainstIndex(path, e.cfg.Library.IndexPath, verbose)
}

func searchLibrary(sample []dsp.Signature, library []libraryio.Entry, verbose bool) (*matcher.Result, error) {
	idxEntries := make([]lshindex.Entry, len(library))
	matchEntries := make([]matcher.Entry, len(library))
	for i, e := range library {
		idxEntries[i] = lshindex.Entry{Signatures: e.Signatures}
		matchEntries[i] = matcher.Entry{Name: e.Filename, Signatures: e.Signatures}
	}

	idx := lshindex.Build(idxEntries)
	return matcher.Search(sample, matchEntries, idx, verbose)
}

// List returns every track currently in the library. If a SQL catalog is
// configured it is used as the source; otherwise the plain-text index is
// summarized directly.
func (e *Eureka) List() ([]TrackSummary, error) {
	if e.catalog != nil {
		tracks, err := e.catalog.ListTracks()
		if err != nil {
			return nil, err
		}
		out := make([]TrackSummary, len(tracks))
		for i, t := range tracks {
			out[i] = TrackSummary{
				ID: t.ID, Filename: t.Filename, Artist: t.Artist,
				TrackTitle: t.TrackTitle, NumSignatures: t.NumSignatures,
			}
		}
		return out, nil
	}

	library, err := libraryio.ReadIndex(e.cfg.Library.IndexPath)
	if err != nil {
		return nil, err
	}
	out := make([]TrackSummary, len(library))
	for i, e := range library {
		out[i] = TrackSummary{
			ID: i, Filename: e.Filename, Artist: e.Artist,
			TrackTitle: e.TrackTitle, NumSignatures: len(e.Signatures),
		}
	}
	return out, nil
}

// Delete removes a track by ID. Only meaningful when a SQL catalog is
// configured: the plain-text index has no stable IDs to delete by.
func (e *Eureka) Delete(id int) error {
	if e.catalog == nil {
		return errs.New(errs.KindInputUnsupported, "deleting by id requires a configured SQL catalog")
	}
	return e.catalog.DeleteTrack(id)
}

// Cleanup removes catalog entries that never received any signatures
// (failed or silent fingerprint attempts left behind).
func (e *Eureka) Cleanup() error {
	if e.catalog == nil {
		return errs.New(errs.KindInputUnsupported, "cleanup requires a configured SQL catalog")
	}
	return e.catalog.Cleanup()
}

// RecognizeFromMicrophone listens on the default input device and
// reports the first confident match. It keeps listening until a window
// matches or a search fails with an error other than no-match; there is
// no time limit. verbose reproduces
// the reference search.c's top-candidate diagnostic logging.
func (e *Eureka) RecognizeFromMicrophone(verbose bool) (*matcher.Result, error) {
	library, err := libraryio.ReadIndex(e.cfg.Library.IndexPath)
	if err != nil {
		return nil, err
	}

	recorder, err := capture.NewRecorder()
	if err != nil {
		return nil, err
	}
	defer recorder.Close()

	if err := recorder.Start(); err != nil {
		return nil, err
	}

	for sample := range recorder.Samples() {
		if sample.Err != nil {
			logger.Error(sample.Err)
			continue
		}
		if sample.Result.IsSilent() {
			continue
		}

		result, err := searchLibrary(sample.Result.Signatures, library, verbose)
		if err == nil {
			return result, nil
		}
		if !errs.Is(err, errs.KindNoMatch) {
			return nil, err
		}
	}

	return nil, errs.New(errs.KindNoMatch, "microphone recognition ended without a match")
}

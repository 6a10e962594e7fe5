// Package libraryio reads and writes the plain-text library index
// format: one entry per fingerprinted track, stored as five header lines
// (filename, artist, track title, album title, signature count) followed
// by one hex-encoded signature per line. Grounded on the reference
// fingerprintio.c.
package libraryio

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
)

// Entry is one fingerprinted track as stored in (or read from) a library
// index file.
type Entry struct {
	Filename   string
	Artist     string
	TrackTitle string
	AlbumTitle string
	Signatures []dsp.Signature
}

// WriteEntry writes one entry to w in the canonical text format.
func WriteEntry(w io.Writer, e Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, e.Filename)
	fmt.Fprintln(bw, e.Artist)
	fmt.Fprintln(bw, e.TrackTitle)
	fmt.Fprintln(bw, e.AlbumTitle)
	fmt.Fprintln(bw, len(e.Signatures))
	for _, sig := range e.Signatures {
		fmt.Fprintln(bw, hex.EncodeToString(sig[:]))
	}
	return bw.Flush()
}

// AppendEntry opens path for appending (creating it if necessary) and
// writes a single entry, matching how the original tool built a library
// incrementally by concatenating per-track "index" output.
func AppendEntry(path string, e Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "opening library index for append")
	}
	defer f.Close()
	return WriteEntry(f, e)
}

// ReadIndex reads every entry from a library index file.
func ReadIndex(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(err, errs.KindInputAbsent, "opening library index")
		}
		return nil, errs.Wrap(err, errs.KindInputAbsent, "opening library index")
	}
	defer f.Close()
	return Read(f)
}

// Read parses every entry from r.
func Read(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	for {
		entry, ok, err := readEntry(scanner)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

func readEntry(scanner *bufio.Scanner) (Entry, bool, error) {
	filename, ok := readLine(scanner)
	if !ok {
		return Entry{}, false, nil
	}

	artist, ok := readLine(scanner)
	if !ok {
		return Entry{}, false, errs.New(errs.KindInputMalformed, "library index truncated before artist line")
	}
	trackTitle, ok := readLine(scanner)
	if !ok {
		return Entry{}, false, errs.New(errs.KindInputMalformed, "library index truncated before track title line")
	}
	albumTitle, ok := readLine(scanner)
	if !ok {
		return Entry{}, false, errs.New(errs.KindInputMalformed, "library index truncated before album title line")
	}

	countLine, ok := readLine(scanner)
	if !ok {
		return Entry{}, false, errs.New(errs.KindInputMalformed, "library index truncated before signature count")
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || count < 0 {
		return Entry{}, false, errs.New(errs.KindInputMalformed, "invalid signature count in library index")
	}

	signatures := make([]dsp.Signature, count)
	for i := 0; i < count; i++ {
		line, ok := readLine(scanner)
		if !ok {
			return Entry{}, false, errs.New(errs.KindInputMalformed, "library index truncated mid-signature")
		}
		if len(line) != dsp.SignatureLength*2 {
			return Entry{}, false, errs.New(errs.KindInputMalformed, "signature line has the wrong length")
		}
		decoded, err := hex.DecodeString(line)
		if err != nil {
			return Entry{}, false, errs.Wrap(err, errs.KindInputMalformed, "decoding hex signature")
		}
		copy(signatures[i][:], decoded)
	}

	return Entry{
		Filename:   filename,
		Artist:     artist,
		TrackTitle: trackTitle,
		AlbumTitle: albumTitle,
		Signatures: signatures,
	}, true, nil
}

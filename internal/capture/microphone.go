// Package capture records audio from the default input device and feeds
// rolling windows of it to the fingerprinting pipeline, for "what's
// playing right now" style recognition. Adapted from the teacher's
// portaudio-based microphone recorder.
package capture

import (
	"github.com/gordonklaus/portaudio"

	"github.com/media-luna/eureka/internal/dsp"
	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/fingerprint"
	"github.com/media-luna/eureka/utils/logger"
)

const (
	framesPerBuffer = 1024
	maxBufferedSecs = 10
	windowSecs      = 5
)

// Sample is one fingerprinted window pulled from the live microphone
// buffer.
type Sample struct {
	Result *fingerprint.Result
	Err    error
}

// Recorder captures mono audio from the default input device at
// dsp.InputSampleRate and periodically fingerprints a rolling window of
// it, delivering each attempt on Samples.
type Recorder struct {
	stream  *portaudio.Stream
	buffer  []float32
	samples chan Sample
}

// NewRecorder initializes PortAudio and prepares a Recorder. Callers must
// call Close when done to release PortAudio resources.
func NewRecorder() (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errs.Wrap(err, errs.KindResourceExhausted, "initializing portaudio")
	}
	return &Recorder{
		buffer:  make([]float32, 0, dsp.InputSampleRate*maxBufferedSecs),
		samples: make(chan Sample, 4),
	}, nil
}

// Start opens the default input device and begins recording. Once the
// rolling buffer holds windowSecs seconds of audio, every audio callback
// fingerprints the most recent windowSecs seconds in its own goroutine
// and delivers the result on Samples.
func (r *Recorder) Start() error {
	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "finding default input device")
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(dsp.InputSampleRate),
		FramesPerBuffer: framesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, r.onAudio)
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "opening audio stream")
	}
	r.stream = stream

	if err := r.stream.Start(); err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "starting audio stream")
	}
	logger.Info("microphone recording started")
	return nil
}

func (r *Recorder) onAudio(in []float32) {
	if len(in) == 0 {
		return
	}
	r.buffer = append(r.buffer, in...)

	maxSamples := dsp.InputSampleRate * maxBufferedSecs
	if len(r.buffer) > maxSamples {
		drop := len(r.buffer) - maxSamples
		copy(r.buffer, r.buffer[drop:])
		r.buffer = r.buffer[:maxSamples]
	}

	window := dsp.InputSampleRate * windowSecs
	if len(r.buffer) < window {
		return
	}

	segment := make([]float32, window)
	copy(segment, r.buffer[len(r.buffer)-window:])
	go r.fingerprintSegment(segment)
}

func (r *Recorder) fingerprintSegment(segment []float32) {
	result, err := fingerprint.Generate(segment)
	select {
	case r.samples <- Sample{Result: result, Err: err}:
	default:
		// A consumer that falls behind drops samples rather than
		// blocking the audio callback goroutine.
	}
}

// Samples returns the channel on which fingerprinted windows are
// delivered.
func (r *Recorder) Samples() <-chan Sample {
	return r.samples
}

// Stop stops the stream but keeps PortAudio initialized.
func (r *Recorder) Stop() error {
	if r.stream == nil {
		return nil
	}
	if err := r.stream.Stop(); err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "stopping audio stream")
	}
	return r.stream.Close()
}

// Close stops the stream (if running) and terminates PortAudio.
func (r *Recorder) Close() error {
	_ = r.Stop()
	return portaudio.Terminate()
}

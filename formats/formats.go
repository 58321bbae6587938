// Package formats defines the audio stream contracts used by the file
// front-ends and an extension-keyed decoder registry. Format support lives
// in subpackages which register themselves on import:
//
//	import (
//		_ "github.com/cwbudde/algo-flange/formats/aiff"
//		_ "github.com/cwbudde/algo-flange/formats/mp3"
//		_ "github.com/cwbudde/algo-flange/formats/vorbis"
//		_ "github.com/cwbudde/algo-flange/formats/wav"
//	)
package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrUnknownFormat is returned by Open for extensions with no registered
// decoder.
var ErrUnknownFormat = errors.New("formats: unknown format")

// Source supplies interleaved float64 samples in [-1, 1].
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo, ...).
	Channels() int
	// ReadSamples fills dst and returns the number of values written.
	// n == 0 with io.EOF signals the end of the stream.
	ReadSamples(dst []float64) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Sink consumes interleaved float64 samples in [-1, 1].
type Sink interface {
	WriteSamples(samples []float64) error
	Close() error
}

// Decoder constructs a Source from seekable input.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry maps file extensions to decoders.
type Registry struct {
	mtx    sync.Mutex
	codecs map[string]Decoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register adds a decoder for the given extension (without dot).
func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(ext)] = d
}

// Get returns the decoder for the given extension.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(ext)]

	return d, ok
}

// Extensions returns the registered extensions.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}

	return exts
}

var defaultRegistry = NewRegistry()

// Register adds a decoder to the default registry. Format subpackages call
// this from their init functions.
func Register(ext string, d Decoder) {
	defaultRegistry.Register(ext, d)
}

// Open opens an audio file, selecting the decoder by file extension from
// the default registry. Closing the returned Source closes the file.
func Open(path string) (Source, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	dec, ok := defaultRegistry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("formats: opening %s: %w", path, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("formats: decoding %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

type fileSource struct {
	Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()

	if cerr := s.f.Close(); err == nil {
		err = cerr
	}

	return err
}

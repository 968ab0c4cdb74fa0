package encode

import (
	"fmt"
	"path/filepath"
	"strings"

	"interlace/internal/services"
)

// Container identifies the output container chosen by the output extension.
type Container int

const (
	ContainerWav Container = iota
	ContainerFlac
)

// String returns the lowercase container name.
func (c Container) String() string {
	switch c {
	case ContainerWav:
		return "wav"
	case ContainerFlac:
		return "flac"
	default:
		return fmt.Sprintf("container(%d)", int(c))
	}
}

// ContainerForPath derives the output container from the path extension.
func ContainerForPath(path string) (Container, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return ContainerWav, nil
	case ".flac":
		return ContainerFlac, nil
	default:
		return 0, services.Wrap(services.ErrConfiguration, "resolve", "output container",
			fmt.Sprintf("unsupported output extension %q (want .wav or .flac)", ext), nil)
	}
}

// Codec pairs an encoder name with its bit depth.
type Codec struct {
	Name     string
	BitDepth int
}

// Target describes the final encode: codec, sample representation, and
// whether that representation was coerced away from the source format.
type Target struct {
	Codec        string
	SampleFormat string
	BitDepth     int
	Coerced      bool
}

var intermediates = map[string]Codec{
	"flt":  {Name: "pcm_f32le", BitDepth: 32},
	"fltp": {Name: "pcm_f32le", BitDepth: 32},
	"s32":  {Name: "pcm_s32le", BitDepth: 32},
	"s16":  {Name: "pcm_s16le", BitDepth: 16},
	"s16p": {Name: "pcm_s16le", BitDepth: 16},
	"u8":   {Name: "pcm_u8", BitDepth: 8},
	"u8p":  {Name: "pcm_u8", BitDepth: 8},
}

var floatFormats = map[string]bool{
	"flt":  true,
	"fltp": true,
}

// PackedFormat maps a planar sample format to its packed equivalent. Encoder
// sample_fmt flags only accept packed layouts.
func PackedFormat(sampleFormat string) string {
	return strings.TrimSuffix(sampleFormat, "p")
}

// ResolveIntermediate returns the lossless codec used for per-segment renders.
func ResolveIntermediate(sampleFormat string) (Codec, error) {
	codec, ok := intermediates[sampleFormat]
	if !ok {
		return Codec{}, services.Wrap(services.ErrConfiguration, "resolve", "sample format",
			fmt.Sprintf("unsupported sample format %q", sampleFormat), nil)
	}
	return codec, nil
}

// ResolveFinal returns the final encode target for the output container. WAV
// output is identical to the intermediate resolution. FLAC always uses the
// flac encoder; floating-point sources are redirected to a 32-bit integer
// representation and flagged as coerced so the caller can warn about it.
func ResolveFinal(sampleFormat string, container Container) (Target, error) {
	codec, err := ResolveIntermediate(sampleFormat)
	if err != nil {
		return Target{}, err
	}

	switch container {
	case ContainerWav:
		return Target{Codec: codec.Name, SampleFormat: sampleFormat, BitDepth: codec.BitDepth}, nil
	case ContainerFlac:
		target := Target{Codec: "flac", SampleFormat: sampleFormat, BitDepth: codec.BitDepth}
		if floatFormats[sampleFormat] {
			target.SampleFormat = "s32"
			target.BitDepth = 32
			target.Coerced = true
		}
		return target, nil
	default:
		return Target{}, services.Wrap(services.ErrConfiguration, "resolve", "output container",
			fmt.Sprintf("unknown container %d", int(container)), nil)
	}
}

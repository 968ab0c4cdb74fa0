package ffprobe_test

import (
	"encoding/json"
	"testing"

	"interlace/internal/media/ffprobe"
)

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "pcm_s16le",
      "codec_type": "audio",
      "sample_rate": "44100",
      "sample_fmt": "s16",
      "bits_per_sample": 16,
      "channels": 2,
      "duration": "8.000000"
    }
  ],
  "format": {
    "filename": "in.wav",
    "nb_streams": 1,
    "duration": "8.000000",
    "format_name": "wav"
  }
}`

func decodeResult(t *testing.T, payload string) ffprobe.Result {
	t.Helper()
	var result ffprobe.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestAudioParamsExtraction(t *testing.T) {
	result := decodeResult(t, sampleJSON)

	params, err := result.AudioParams()
	if err != nil {
		t.Fatalf("AudioParams returned error: %v", err)
	}
	if params.SampleRate != 44100 {
		t.Fatalf("unexpected sample rate: %d", params.SampleRate)
	}
	if params.SampleFormat != "s16" {
		t.Fatalf("unexpected sample format: %q", params.SampleFormat)
	}
	if params.Channels != 2 {
		t.Fatalf("unexpected channel count: %d", params.Channels)
	}
	if params.BitsPerSample != 16 {
		t.Fatalf("unexpected bit depth: %d", params.BitsPerSample)
	}
}

func TestAudioParamsDefaultsBitsPerSample(t *testing.T) {
	payload := `{"streams":[{"codec_type":"audio","sample_rate":"48000","sample_fmt":"fltp","channels":2}],"format":{}}`
	result := decodeResult(t, payload)

	params, err := result.AudioParams()
	if err != nil {
		t.Fatalf("AudioParams returned error: %v", err)
	}
	if params.BitsPerSample != 16 {
		t.Fatalf("expected default bit depth 16, got %d", params.BitsPerSample)
	}
}

func TestAudioParamsErrorsWithoutAudioStream(t *testing.T) {
	payload := `{"streams":[{"codec_type":"video"}],"format":{}}`
	result := decodeResult(t, payload)
	if _, err := result.AudioParams(); err == nil {
		t.Fatal("expected error for missing audio stream")
	}
}

func TestDurationSeconds(t *testing.T) {
	result := decodeResult(t, sampleJSON)
	if got := result.DurationSeconds(); got != 8.0 {
		t.Fatalf("unexpected duration: %v", got)
	}

	empty := decodeResult(t, `{"format":{}}`)
	if got := empty.DurationSeconds(); got != 0 {
		t.Fatalf("expected 0 for missing duration, got %v", got)
	}
}

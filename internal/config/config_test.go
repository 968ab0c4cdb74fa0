package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"interlace/internal/config"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origWd) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Processing.FadeMs != 500 {
		t.Fatalf("unexpected fade default: %d", cfg.Processing.FadeMs)
	}
	if cfg.Processing.MinSegmentSec != 1.0 {
		t.Fatalf("unexpected min segment default: %v", cfg.Processing.MinSegmentSec)
	}
	if cfg.Processing.MinSilenceSec != 0.5 {
		t.Fatalf("unexpected min silence default: %v", cfg.Processing.MinSilenceSec)
	}
	if cfg.Processing.NoiseLevelDb != -30.0 {
		t.Fatalf("unexpected noise default: %v", cfg.Processing.NoiseLevelDb)
	}
	if cfg.Tools.FFmpegBinary != "ffmpeg" || cfg.Tools.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if !filepath.IsAbs(cfg.Paths.TempDir) {
		t.Fatalf("temp dir must be expanded to an absolute path, got %q", cfg.Paths.TempDir)
	}
	if filepath.Base(cfg.Paths.TempDir) != "temp" {
		t.Fatalf("unexpected temp dir: %q", cfg.Paths.TempDir)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[processing]",
		"fade_ms = 250",
		"noise_level_db = -42.5",
		"",
		"[tools]",
		`ffmpeg_binary = "/opt/ffmpeg/bin/ffmpeg"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Processing.FadeMs != 250 {
		t.Fatalf("file value not applied: %d", cfg.Processing.FadeMs)
	}
	if cfg.Processing.NoiseLevelDb != -42.5 {
		t.Fatalf("file value not applied: %v", cfg.Processing.NoiseLevelDb)
	}
	if cfg.Processing.MinSegmentSec != 1.0 {
		t.Fatalf("default lost in merge: %v", cfg.Processing.MinSegmentSec)
	}
	if cfg.Tools.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("tool override not applied: %q", cfg.Tools.FFmpegBinary)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative fade", func(c *config.Config) { c.Processing.FadeMs = -1 }, "fade_ms"},
		{"zero min segment", func(c *config.Config) { c.Processing.MinSegmentSec = 0 }, "min_segment_sec"},
		{"zero min silence", func(c *config.Config) { c.Processing.MinSilenceSec = 0 }, "min_silence_sec"},
		{"noise too quiet", func(c *config.Config) { c.Processing.NoiseLevelDb = -60 }, "noise_level_db"},
		{"noise too loud", func(c *config.Config) { c.Processing.NoiseLevelDb = -10 }, "noise_level_db"},
		{"negative workers", func(c *config.Config) { c.Processing.Workers = -2 }, "workers"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateAcceptsBoundaryNoiseLevels(t *testing.T) {
	for _, level := range []float64{-50, -20} {
		cfg := config.Default()
		cfg.Processing.NoiseLevelDb = level
		if err := cfg.Validate(); err != nil {
			t.Fatalf("level %v should be valid: %v", level, err)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to be found")
	}

	// The sample documents the defaults; the two must not drift apart.
	defaults := config.Default()
	if cfg.Processing != defaults.Processing {
		t.Fatalf("sample processing diverged from defaults: %+v vs %+v", cfg.Processing, defaults.Processing)
	}
	if cfg.Tools != defaults.Tools {
		t.Fatalf("sample tools diverged from defaults: %+v vs %+v", cfg.Tools, defaults.Tools)
	}
	if cfg.Logging != defaults.Logging {
		t.Fatalf("sample logging diverged from defaults: %+v vs %+v", cfg.Logging, defaults.Logging)
	}
}

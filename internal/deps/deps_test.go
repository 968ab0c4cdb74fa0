package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"interlace/internal/config"
	"interlace/internal/deps"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []deps.Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := deps.CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := deps.CheckBinaries([]deps.Requirement{{Name: "Blank", Command: "   "}})
	if results[0].Available {
		t.Fatal("blank command must not be available")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", results[0].Detail)
	}
}

func TestCheckSystemDepsUsesConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpegBinary = "definitely-not-ffmpeg"
	cfg.Tools.FFprobeBinary = "definitely-not-ffprobe"

	statuses := deps.CheckSystemDeps(&cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected two statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if status.Available {
			t.Fatalf("expected %s to be unavailable", status.Name)
		}
	}

	missing := deps.MissingRequired(statuses)
	if len(missing) != 2 {
		t.Fatalf("expected two missing entries, got %v", missing)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	status := deps.CheckDirectoryAccess("Temp directory", dir)
	if !status.Available {
		t.Fatalf("expected writable temp dir to pass, detail %q", status.Detail)
	}

	status = deps.CheckDirectoryAccess("Temp directory", filepath.Join(dir, "missing"))
	if status.Available {
		t.Fatal("expected missing directory to fail")
	}
	if status.Detail != "does not exist" {
		t.Fatalf("unexpected detail: %s", status.Detail)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	status = deps.CheckDirectoryAccess("Temp directory", file)
	if status.Available {
		t.Fatal("expected non-directory to fail")
	}
}

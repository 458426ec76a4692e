package backend

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShaderSourceValidate(t *testing.T) {
	if err := (ShaderSource{Label: "empty"}).Validate(); !errors.Is(err, ErrEmptyShader) {
		t.Errorf("Validate() error = %v, want ErrEmptyShader", err)
	}
	if err := (ShaderSource{WGSL: "// module"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestShaderSourceEntryPoints(t *testing.T) {
	var s ShaderSource
	if got := s.VertexEntryPoint(); got != DefaultVertexEntry {
		t.Errorf("VertexEntryPoint() = %q, want %q", got, DefaultVertexEntry)
	}
	if got := s.FragmentEntryPoint(); got != DefaultFragmentEntry {
		t.Errorf("FragmentEntryPoint() = %q, want %q", got, DefaultFragmentEntry)
	}

	s = ShaderSource{VertexEntry: "vert", FragmentEntry: "frag"}
	if got := s.VertexEntryPoint(); got != "vert" {
		t.Errorf("VertexEntryPoint() = %q, want %q", got, "vert")
	}
	if got := s.FragmentEntryPoint(); got != "frag" {
		t.Errorf("FragmentEntryPoint() = %q, want %q", got, "frag")
	}
}

func TestConsoleShader(t *testing.T) {
	src := ConsoleShader()
	if src.Label != "console_with_bg" {
		t.Errorf("Label = %q, want %q", src.Label, "console_with_bg")
	}
	if err := src.Validate(); err != nil {
		t.Fatalf("built-in shader failed validation: %v", err)
	}
	for _, entry := range []string{DefaultVertexEntry, DefaultFragmentEntry} {
		if !strings.Contains(src.WGSL, entry) {
			t.Errorf("built-in shader is missing entry point %q", entry)
		}
	}
}

func TestLoadShaderSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanlines.wgsl")
	const body = "@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(0.0); }"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := LoadShaderSource(path)
	if err != nil {
		t.Fatalf("LoadShaderSource() error = %v", err)
	}
	if src.Label != "scanlines" {
		t.Errorf("Label = %q, want %q", src.Label, "scanlines")
	}
	if src.WGSL != body {
		t.Errorf("WGSL = %q, want file contents", src.WGSL)
	}
}

func TestLoadShaderSourceMissing(t *testing.T) {
	if _, err := LoadShaderSource(filepath.Join(t.TempDir(), "absent.wgsl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package backend

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Embedded console shader source.
//
//go:embed shaders/console.wgsl
var consoleShaderSource string

// ErrEmptyShader is returned when a shader source has no WGSL body.
var ErrEmptyShader = errors.New("backend: empty shader source")

// Default shader entry point names.
const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// ShaderSource is the source form of a console shader program.
// A single WGSL module carries both stages; VertexEntry and
// FragmentEntry select the entry points and default to "vs_main" and
// "fs_main" when empty.
type ShaderSource struct {
	Label         string
	WGSL          string
	VertexEntry   string
	FragmentEntry string
}

// Validate reports whether the source is complete enough to compile.
func (s ShaderSource) Validate() error {
	if s.WGSL == "" {
		return ErrEmptyShader
	}
	return nil
}

// VertexEntryPoint returns the vertex entry point, defaulted.
func (s ShaderSource) VertexEntryPoint() string {
	if s.VertexEntry == "" {
		return DefaultVertexEntry
	}
	return s.VertexEntry
}

// FragmentEntryPoint returns the fragment entry point, defaulted.
func (s ShaderSource) FragmentEntryPoint() string {
	if s.FragmentEntry == "" {
		return DefaultFragmentEntry
	}
	return s.FragmentEntry
}

// ConsoleShader returns the built-in console-with-background program.
// The host compiles it at startup so it is always shader index 0.
func ConsoleShader() ShaderSource {
	return ShaderSource{
		Label: "console_with_bg",
		WGSL:  consoleShaderSource,
	}
}

// LoadShaderSource reads a WGSL module from disk. The label is the
// file name without its extension; entry points default to vs_main
// and fs_main.
func LoadShaderSource(path string) (ShaderSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("backend: read shader: %w", err)
	}
	base := filepath.Base(path)
	return ShaderSource{
		Label: strings.TrimSuffix(base, filepath.Ext(base)),
		WGSL:  string(data),
	}, nil
}

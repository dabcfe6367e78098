package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"transcriber/internal/config"
	"transcriber/internal/deps"
	"transcriber/internal/normalize"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWritableDir behaves like CheckDirectoryAccess but accepts a missing
// directory when its nearest existing ancestor is writable, since outputs are
// created on demand.
func CheckWritableDir(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(filepath.Clean(path))
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	ancestor := CheckDirectoryAccess(name, parent)
	if !ancestor.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s)", path, parent)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckGlossary verifies that a custom glossary file parses.
func CheckGlossary(path string) Result {
	const name = "Glossary"
	entries, err := normalize.LoadGlossary(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d terms)", path, len(entries))}
}

// CheckSystemDeps evaluates the external binaries used by the transcription
// pipeline. ffprobe is optional because a failed probe only loses the
// duration used for progress reporting.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for audio extraction",
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Media inspection and progress estimates",
			Optional:    true,
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "uvx",
			Command:     cfg.WhisperXBinary(),
			Description: "Required for WhisperX-driven transcription",
			VersionArgs: []string{"--version"},
		},
	}
	return deps.CheckBinaries(ctx, requirements)
}

// Package utils holds the path handling the CLI uses when writing debug overlays.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var unsafeChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// EnsureDir makes sure the overlay output directory exists
func EnsureDir(dir string) error {
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "creating output dir %s", dir)
}

// GetFileExtension returns the lower-cased extension of filename without the dot
func GetFileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// GenerateOutputFilename names an overlay for the frame at inputFile:
// <outputDir>/<prefix><frame name><suffix>.<format>. An empty format keeps the
// frame's own extension, or png when it has none.
func GenerateOutputFilename(inputFile, outputDir, prefix, suffix, format string) string {
	frame := filepath.Base(inputFile)
	ext := GetFileExtension(frame)
	stem := strings.TrimSuffix(frame, filepath.Ext(frame))

	switch {
	case format != "":
		ext = strings.ToLower(format)
	case ext == "":
		ext = "png"
	}

	return filepath.Join(outputDir, SanitizeFilename(prefix+stem+suffix+"."+ext))
}

// SanitizeFilename replaces path and shell metacharacters with underscores and
// trims surrounding blanks and dots
func SanitizeFilename(filename string) string {
	return strings.Trim(unsafeChars.Replace(filename), " .")
}

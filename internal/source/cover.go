package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.senan.xyz/taglib"
)

type CoverKind string

const (
	CoverKindEmbedded CoverKind = "embedded"
	CoverKindSidecar  CoverKind = "sidecar"
)

var (
	sidecarBaseNames  = []string{"cover", "folder", "front", "album"}
	sidecarExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".avif"}
)

// Cover is decoded album art and where it came from. Path is the audio file
// for embedded art and the image file for sidecar art.
type Cover struct {
	Image image.Image
	Kind  CoverKind
	Path  string
}

// LoadEmbeddedCover decodes the artwork embedded in an audio file's tags.
func LoadEmbeddedCover(path string) (image.Image, error) {
	imageData, err := taglib.ReadImage(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("read embedded cover: %w", err)}
	}
	if len(imageData) == 0 {
		return nil, &LoadError{Source: path, Err: ErrNoEmbeddedCover}
	}

	return DecodeImage(bytes.NewReader(imageData), path)
}

// LoadCover prefers embedded artwork and falls back to a sidecar image such
// as cover.jpg or folder.png next to the audio file.
func LoadCover(path string) (Cover, error) {
	img, embeddedErr := LoadEmbeddedCover(path)
	if embeddedErr == nil {
		return Cover{Image: img, Kind: CoverKindEmbedded, Path: path}, nil
	}

	sidecarPath, ok := FindSidecarCover(path)
	if !ok {
		return Cover{}, embeddedErr
	}

	img, err := LoadImageFile(sidecarPath)
	if err != nil {
		return Cover{}, errors.Join(embeddedErr, err)
	}
	return Cover{Image: img, Kind: CoverKindSidecar, Path: sidecarPath}, nil
}

// FindSidecarCover looks for well-known cover image names in the audio
// file's directory, matching names case-insensitively.
func FindSidecarCover(audioPath string) (string, bool) {
	entries, err := os.ReadDir(filepath.Dir(audioPath))
	if err != nil {
		return "", false
	}

	byName := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		lowered := strings.ToLower(entry.Name())
		if _, exists := byName[lowered]; !exists {
			byName[lowered] = entry.Name()
		}
	}

	for _, base := range sidecarBaseNames {
		for _, extension := range sidecarExtensions {
			if name, ok := byName[base+extension]; ok {
				return filepath.Join(filepath.Dir(audioPath), name), true
			}
		}
	}

	return "", false
}

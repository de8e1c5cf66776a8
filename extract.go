package lumina

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"lumina/internal/palette"
	"lumina/internal/source"
)

const coverSourcePrefix = "cover:"

// ExtractFromImage extracts a palette from an already decoded image. The key
// identifies the image in the cache; an empty key disables caching.
func (s *Service) ExtractFromImage(ctx context.Context, img image.Image, key string, options palette.Options) (palette.ColorPalette, error) {
	if img == nil || img.Bounds().Empty() {
		return palette.ColorPalette{}, &source.LoadError{Source: key, Err: errors.New("image has no pixels")}
	}

	return s.memoize(ctx, strings.TrimSpace(key), 0, options, func(_ context.Context, normalized palette.Options) (palette.ColorPalette, error) {
		return s.extractImage(img, normalized), nil
	})
}

// ExtractFromURL fetches, decodes and extracts the image at url. Refused
// access is reported as *source.DecodeBlockedError and every other failure
// as *source.LoadError.
func (s *Service) ExtractFromURL(ctx context.Context, url string, options palette.Options) (palette.ColorPalette, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return palette.ColorPalette{}, &source.LoadError{Source: url, Err: errors.New("image url is required")}
	}

	return s.memoize(ctx, trimmed, 0, options, func(ctx context.Context, normalized palette.Options) (palette.ColorPalette, error) {
		img, err := source.FetchImage(ctx, s.httpClient, trimmed)
		if err != nil {
			return palette.ColorPalette{}, err
		}
		return s.extractImage(img, normalized), nil
	})
}

// ExtractFromFile extracts the image file at path. Cached entries are tied to
// the file's modification time and dropped when the file changes.
func (s *Service) ExtractFromFile(ctx context.Context, path string, options palette.Options) (palette.ColorPalette, error) {
	resolvedPath, modUnixNano, err := statSource(path)
	if err != nil {
		return palette.ColorPalette{}, err
	}

	result, err := s.memoize(ctx, resolvedPath, modUnixNano, options, func(_ context.Context, normalized palette.Options) (palette.ColorPalette, error) {
		img, err := source.LoadImageFile(resolvedPath)
		if err != nil {
			return palette.ColorPalette{}, err
		}
		return s.extractImage(img, normalized), nil
	})
	if err != nil {
		return palette.ColorPalette{}, err
	}

	s.watch(resolvedPath, resolvedPath)
	return result, nil
}

// ExtractFromAudioCover extracts the artwork embedded in an audio file,
// falling back to a cover image stored next to it.
func (s *Service) ExtractFromAudioCover(ctx context.Context, path string, options palette.Options) (palette.ColorPalette, error) {
	resolvedPath, modUnixNano, err := statSource(path)
	if err != nil {
		return palette.ColorPalette{}, err
	}

	sidecarPath, hasSidecar := source.FindSidecarCover(resolvedPath)
	if hasSidecar {
		if _, sidecarModUnixNano, err := statSource(sidecarPath); err == nil {
			modUnixNano = max(modUnixNano, sidecarModUnixNano)
		}
	}

	sourceKey := coverSourceKey(resolvedPath)
	result, err := s.memoize(ctx, sourceKey, modUnixNano, options, func(_ context.Context, normalized palette.Options) (palette.ColorPalette, error) {
		cover, err := source.LoadCover(resolvedPath)
		if err != nil {
			return palette.ColorPalette{}, err
		}
		s.logger.Debug("loaded cover art", "kind", cover.Kind, "path", cover.Path)
		return s.extractImage(cover.Image, normalized), nil
	})
	if err != nil {
		return palette.ColorPalette{}, err
	}

	s.watch(resolvedPath, sourceKey)
	if hasSidecar {
		s.watch(sidecarPath, sourceKey)
	}
	return result, nil
}

// ExtractFromVideo samples up to ten frames spread over the video, visiting
// them in increasing time order, and merges their colors. A seek that does not
// finish within the seek timeout fails with *source.SeekTimeoutError.
func (s *Service) ExtractFromVideo(ctx context.Context, video source.VideoSource, options palette.Options) (palette.ColorPalette, error) {
	if video == nil {
		return palette.ColorPalette{}, &source.LoadError{Source: "video", Err: errors.New("video source is required")}
	}

	return s.memoize(ctx, video.Key(), 0, options, func(ctx context.Context, normalized palette.Options) (palette.ColorPalette, error) {
		frames, err := source.CaptureFrames(ctx, video, normalized.FrameInterval, s.seekTimeout)
		if err != nil {
			return palette.ColorPalette{}, fmt.Errorf("capture video frames: %w", err)
		}
		return s.extractor.ExtractFromFrames(frames, normalized), nil
	})
}

// ExtractFromElement extracts the colors declared in an element's style. It
// never fails on content; a style without colors yields the fallback palette.
func (s *Service) ExtractFromElement(ctx context.Context, style source.ElementStyle, options palette.Options) (palette.ColorPalette, error) {
	return s.memoize(ctx, style.ContentKey(), 0, options, func(_ context.Context, normalized palette.Options) (palette.ColorPalette, error) {
		return s.extractor.ExtractFromColors(source.ElementColors(style), normalized), nil
	})
}

func (s *Service) extractImage(img image.Image, options palette.Options) palette.ColorPalette {
	return s.extractor.ExtractFromRaster(source.Rasterize(img, options.Quality), options)
}

func statSource(path string) (string, int64, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", 0, &source.LoadError{Source: path, Err: errors.New("path is required")}
	}

	resolvedPath, err := filepath.Abs(trimmed)
	if err != nil {
		return "", 0, &source.LoadError{Source: trimmed, Err: fmt.Errorf("resolve path: %w", err)}
	}

	info, err := os.Stat(resolvedPath)
	if err != nil {
		return "", 0, &source.LoadError{Source: resolvedPath, Err: err}
	}
	if info.IsDir() {
		return "", 0, &source.LoadError{Source: resolvedPath, Err: errors.New("path is a directory")}
	}

	return resolvedPath, info.ModTime().UnixNano(), nil
}

func coverSourceKey(path string) string {
	return coverSourcePrefix + path
}

package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchImageDecodesPNG(t *testing.T) {
	t.Parallel()

	payload := encodePNG(t, 8, 4, color.NRGBA{R: 255, A: 255})
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "image/png")
		_, _ = rw.Write(payload)
	}))
	defer server.Close()

	img, err := FetchImage(context.Background(), server.Client(), server.URL+"/red.png")

	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestFetchImageBlocked(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		http.Error(rw, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := FetchImage(context.Background(), server.Client(), server.URL)

	var blocked *DecodeBlockedError
	require.True(t, errors.As(err, &blocked))
	require.Equal(t, http.StatusForbidden, blocked.Status)
}

func TestFetchImageLoadErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/missing" {
			http.NotFound(rw, req)
			return
		}
		_, _ = rw.Write([]byte("definitely not an image"))
	}))
	defer server.Close()

	for _, path := range []string{"/missing", "/garbage"} {
		_, err := FetchImage(context.Background(), server.Client(), server.URL+path)

		var loadErr *LoadError
		require.Truef(t, errors.As(err, &loadErr), "path %s: %v", path, err)
	}

	_, err := FetchImage(context.Background(), server.Client(), "  ")
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestLoadImageFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 3, 3, color.NRGBA{B: 255, A: 255}), 0o644))

	img, err := LoadImageFile(path)
	require.NoError(t, err)
	require.Equal(t, 3, img.Bounds().Dx())

	_, err = LoadImageFile(filepath.Join(dir, "missing.png"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func encodePNG(t *testing.T, width int, height int, fill color.NRGBA) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

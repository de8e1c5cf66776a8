package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/webp"
)

const maxImageBytes = 32 << 20

// DecodeImage decodes any registered format: PNG, JPEG, GIF, WebP and AVIF.
func DecodeImage(r io.Reader, name string) (image.Image, error) {
	decoded, _, err := image.Decode(r)
	if err != nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("decode image: %w", err)}
	}
	if decoded.Bounds().Empty() {
		return nil, &LoadError{Source: name, Err: errors.New("image has no pixels")}
	}
	return decoded, nil
}

func LoadImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("open image: %w", err)}
	}
	defer file.Close()

	return DecodeImage(file, path)
}

// FetchImage downloads and decodes an image. Responses that refuse access
// (401, 403, 451) are reported as DecodeBlockedError.
func FetchImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	if client == nil {
		client = http.DefaultClient
	}

	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, &LoadError{Source: url, Err: errors.New("image url is required")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return nil, &LoadError{Source: trimmed, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/jpeg,image/gif;q=0.9,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: trimmed, Err: fmt.Errorf("fetch image: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusUnavailableForLegalReasons:
		return nil, &DecodeBlockedError{Source: trimmed, Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &LoadError{Source: trimmed, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, &LoadError{Source: trimmed, Err: fmt.Errorf("read image body: %w", err)}
	}
	if len(body) > maxImageBytes {
		return nil, &LoadError{Source: trimmed, Err: fmt.Errorf("image exceeds %d bytes", maxImageBytes)}
	}

	return DecodeImage(bytes.NewReader(body), trimmed)
}

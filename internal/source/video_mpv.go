//go:build libmpv

package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	mpv "github.com/gen2brain/go-mpv"
)

const (
	mpvDurationProperty = "duration"
	mpvEventPollSeconds = 0.1
	mpvLoadTimeout      = 10 * time.Second
)

type mpvVideo struct {
	mu       sync.Mutex
	client   *mpv.Mpv
	path     string
	duration time.Duration
	frameDir string
}

// OpenMPVVideo loads path into a paused, headless libmpv instance.
func OpenMPVVideo(path string) (VideoSource, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	client := mpv.New()
	if client == nil {
		return nil, &LoadError{Source: absPath, Err: errors.New("create libmpv instance")}
	}

	setOptionString(client, "terminal", "no")
	setOptionString(client, "audio", "no")
	setOptionString(client, "vo", "null")
	setOptionString(client, "pause", "yes")
	setOptionString(client, "hr-seek", "yes")
	setOptionString(client, "keep-open", "yes")

	if err := client.Initialize(); err != nil {
		client.TerminateDestroy()
		return nil, &LoadError{Source: absPath, Err: fmt.Errorf("initialize libmpv: %w", err)}
	}

	frameDir, err := os.MkdirTemp("", "lumina-frames-*")
	if err != nil {
		client.TerminateDestroy()
		return nil, &LoadError{Source: absPath, Err: fmt.Errorf("create frame dir: %w", err)}
	}

	video := &mpvVideo{client: client, path: absPath, frameDir: frameDir}

	ctx, cancel := context.WithTimeout(context.Background(), mpvLoadTimeout)
	defer cancel()

	if err := client.Command([]string{"loadfile", absPath, "replace"}); err != nil {
		video.Close()
		return nil, &LoadError{Source: absPath, Err: fmt.Errorf("load file: %w", err)}
	}
	if err := video.waitEvent(ctx, mpv.EventFileLoaded); err != nil {
		video.Close()
		return nil, &LoadError{Source: absPath, Err: fmt.Errorf("wait for file load: %w", err)}
	}

	seconds, err := video.readSeconds(mpvDurationProperty)
	if err != nil {
		video.Close()
		return nil, &LoadError{Source: absPath, Err: err}
	}
	video.duration = time.Duration(seconds * float64(time.Second))

	return video, nil
}

func (v *mpvVideo) Key() string {
	return v.path
}

func (v *mpvVideo) Duration() time.Duration {
	return v.duration
}

func (v *mpvVideo) Seek(ctx context.Context, at time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	position := strconv.FormatFloat(at.Seconds(), 'f', 3, 64)
	if err := v.client.Command([]string{"seek", position, "absolute", "exact"}); err != nil {
		return fmt.Errorf("seek video: %w", err)
	}

	return v.waitEvent(ctx, mpv.EventPlaybackRestart)
}

func (v *mpvVideo) Frame(ctx context.Context) (image.Image, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	framePath := filepath.Join(v.frameDir, "frame.png")
	if err := v.client.Command([]string{"screenshot-to-file", framePath, "video"}); err != nil {
		return nil, fmt.Errorf("capture frame: %w", err)
	}
	defer os.Remove(framePath)

	img, err := LoadImageFile(framePath)
	if err != nil {
		return nil, err
	}

	return img, nil
}

func (v *mpvVideo) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.client != nil {
		v.client.TerminateDestroy()
		v.client = nil
	}

	return os.RemoveAll(v.frameDir)
}

func (v *mpvVideo) waitEvent(ctx context.Context, want mpv.EventID) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		event := v.client.WaitEvent(mpvEventPollSeconds)
		if event == nil {
			continue
		}

		switch event.EventID {
		case want:
			return nil
		case mpv.EventShutdown:
			return errors.New("libmpv shut down")
		case mpv.EventEnd:
			end := event.EndFile()
			if end.Reason == mpv.EndFileError {
				return fmt.Errorf("libmpv could not open %s", v.path)
			}
		}
	}
}

func (v *mpvVideo) readSeconds(property string) (float64, error) {
	value, err := v.client.GetProperty(property, mpv.FormatDouble)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", property, err)
	}

	seconds, ok := value.(float64)
	if !ok || math.IsNaN(seconds) || seconds < 0 {
		return 0, fmt.Errorf("read %s: unexpected value %v", property, value)
	}

	return seconds, nil
}

func setOptionString(client *mpv.Mpv, name string, value string) {
	_ = client.SetOptionString(name, value)
}

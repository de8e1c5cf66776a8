package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"
)

const (
	MaxVideoFrames     = 10
	DefaultSeekTimeout = 5 * time.Second
)

// VideoSource is a seekable video whose current frame can be read back.
// Implementations are not expected to be safe for concurrent use.
type VideoSource interface {
	Key() string
	Duration() time.Duration
	Seek(ctx context.Context, at time.Duration) error
	Frame(ctx context.Context) (image.Image, error)
}

// SampleTimestamps spreads min(MaxVideoFrames, duration/interval) timestamps
// evenly over the video, starting at zero.
func SampleTimestamps(duration time.Duration, interval time.Duration) []time.Duration {
	if duration <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = time.Second
	}

	count := int(duration / interval)
	if count > MaxVideoFrames {
		count = MaxVideoFrames
	}
	if count < 1 {
		count = 1
	}

	timestamps := make([]time.Duration, count)
	for index := range timestamps {
		timestamps[index] = duration * time.Duration(index) / time.Duration(count)
	}
	return timestamps
}

// CaptureFrames seeks to each sampled timestamp in increasing order and
// rasterizes the frame found there at native resolution. Seeks run one at a
// time since they all move the same playhead.
func CaptureFrames(ctx context.Context, video VideoSource, interval time.Duration, seekTimeout time.Duration) ([]*image.NRGBA, error) {
	if video == nil {
		return nil, &LoadError{Source: "video", Err: errors.New("video source is required")}
	}
	if seekTimeout <= 0 {
		seekTimeout = DefaultSeekTimeout
	}

	timestamps := SampleTimestamps(video.Duration(), interval)
	frames := make([]*image.NRGBA, 0, len(timestamps))
	for _, at := range timestamps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := seekWithTimeout(ctx, video, at, seekTimeout); err != nil {
			return nil, err
		}

		frame, err := video.Frame(ctx)
		if err != nil {
			return nil, &LoadError{Source: video.Key(), Err: fmt.Errorf("read frame at %s: %w", at, err)}
		}
		if frame == nil || frame.Bounds().Empty() {
			continue
		}

		frames = append(frames, RasterizeNative(frame))
	}

	return frames, nil
}

func seekWithTimeout(ctx context.Context, video VideoSource, at time.Duration, timeout time.Duration) error {
	seekCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := video.Seek(seekCtx, at)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || seekCtx.Err() != nil {
		return &SeekTimeoutError{At: at, Timeout: timeout}
	}

	return &LoadError{Source: video.Key(), Err: fmt.Errorf("seek to %s: %w", at, err)}
}

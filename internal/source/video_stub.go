//go:build !libmpv

package source

import "errors"

func OpenMPVVideo(path string) (VideoSource, error) {
	return nil, errors.New("libmpv video source is not enabled; build with -tags libmpv")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

type Paths struct {
	ConfigDir   string
	CacheDir    string
	DBPath      string
	OptionsPath string
}

// ResolvePaths places the options file under the XDG config home and the
// palette database under the XDG cache home, creating both directories.
func ResolvePaths(appSlug string) (Paths, error) {
	configDir := filepath.Join(xdg.ConfigHome, appSlug)
	cacheDir := filepath.Join(xdg.CacheHome, appSlug)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create app config dir: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create app cache dir: %w", err)
	}

	return Paths{
		ConfigDir:   configDir,
		CacheDir:    cacheDir,
		DBPath:      filepath.Join(cacheDir, "palettes.db"),
		OptionsPath: filepath.Join(configDir, "options.yaml"),
	}, nil
}

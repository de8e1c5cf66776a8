package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lumina/internal/palette"
)

const envPrefix = "LUMINA_"

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides file values with LUMINA_* variables read through
// lookup, then revalidates the result.
func ApplyEnv(file File, lookup func(string) (string, bool)) (File, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	get := func(name string) (string, bool) {
		value, ok := lookup(envPrefix + name)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get("QUALITY"); ok {
		file.Options.Quality = palette.Quality(strings.ToLower(value))
	}
	if value, ok := get("CLUSTERING"); ok {
		file.Options.Clustering = palette.Clustering(strings.ToLower(value))
	}
	if value, ok := get("MAX_COLORS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return File{}, fmt.Errorf("parse %sMAX_COLORS: %w", envPrefix, err)
		}
		file.Options.MaxColors = parsed
	}
	if value, ok := get("CACHE_ENTRIES"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return File{}, fmt.Errorf("parse %sCACHE_ENTRIES: %w", envPrefix, err)
		}
		file.Cache.MaxEntries = parsed
	}
	if value, ok := get("CACHE_DB"); ok {
		file.Cache.DBPath = value
		file.Cache.Persistent = true
	}
	if value, ok := get("SEEK_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return File{}, fmt.Errorf("parse %sSEEK_TIMEOUT: %w", envPrefix, err)
		}
		file.Video.SeekTimeout = parsed
	}

	if err := Validate(file); err != nil {
		return File{}, err
	}
	return file, nil
}

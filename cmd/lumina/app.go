package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lumina"
	"lumina/internal/cache"
	"lumina/internal/config"
	"lumina/internal/logging"
)

// appContext bundles the services one command invocation needs.
type appContext struct {
	service *lumina.Service
	store   *cache.Store
	logger  *slog.Logger
	file    config.File
	paths   config.Paths
}

func loadSettings(cmd *cobra.Command, flags *rootFlags) (config.File, config.Paths, *slog.Logger, error) {
	level, err := logging.ParseLevel(flags.logLevel)
	if err != nil {
		return config.File{}, config.Paths{}, nil, err
	}
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(cmd.ErrOrStderr(), level, isTerminal(cmd.ErrOrStderr()))

	paths, err := config.ResolvePaths(appSlug)
	if err != nil {
		return config.File{}, config.Paths{}, nil, err
	}

	optionsPath := flags.configPath
	if optionsPath == "" {
		optionsPath = paths.OptionsPath
	}

	file, err := config.LoadOptionsFile(optionsPath)
	if err != nil {
		return config.File{}, config.Paths{}, nil, err
	}

	file, err = config.ApplyEnv(file, nil)
	if err != nil {
		return config.File{}, config.Paths{}, nil, err
	}

	return file, paths, logger, nil
}

func newAppContext(cmd *cobra.Command, flags *rootFlags) (*appContext, error) {
	file, paths, logger, err := loadSettings(cmd, flags)
	if err != nil {
		return nil, err
	}

	app := &appContext{logger: logger, file: file, paths: paths}
	options := []lumina.Option{
		lumina.WithLogger(logger),
		lumina.WithMaxEntries(file.Cache.MaxEntries),
		lumina.WithSeekTimeout(file.Video.SeekTimeout),
		lumina.WithFileWatch(false),
	}

	if file.Cache.Persistent && !flags.noStore {
		store, err := cache.OpenStore(cmd.Context(), storePath(file, paths))
		if err != nil {
			return nil, err
		}
		app.store = store
		options = append(options, lumina.WithStore(store))
	}

	app.service = lumina.New(options...)
	return app, nil
}

func (a *appContext) Close() {
	if err := a.service.Close(); err != nil {
		a.logger.Warn("close service", "error", err)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close palette store", "error", err)
		}
	}
}

func storePath(file config.File, paths config.Paths) string {
	if file.Cache.DBPath != "" {
		return file.Cache.DBPath
	}
	return paths.DBPath
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func requireOneArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%s requires exactly one argument", name)
		}
		return nil
	}
}

// Package app wires the configuration, logger, catalog, audio engine and
// playback service into one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/config"
	"github.com/llehouerou/aurex/internal/engine"
	"github.com/llehouerou/aurex/internal/errmsg"
	"github.com/llehouerou/aurex/internal/logging"
	"github.com/llehouerou/aurex/internal/playback"
)

// Options selects what Open builds.
type Options struct {
	// ConfigFile is read after the default config files when not empty.
	ConfigFile string
	// LogFile overrides log.file when the config leaves it empty.
	LogFile string
	// NoPlayback opens only the catalog.
	NoPlayback bool
	// Engine replaces the beep engine, mainly for tests.
	Engine engine.Engine
}

// App holds the long-lived components of a process.
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	Catalog  *catalog.Catalog
	Engine   *engine.Adapter
	Playback playback.Service

	logCloser io.Closer
}

// Open loads the configuration, sets up logging and opens the catalog and,
// unless opts.NoPlayback, the playback service. The service is not started.
func Open(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = opts.LogFile
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpInitialize, err)
	}
	a := &App{Config: cfg, Log: log, logCloser: closer}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		a.Close()
		return nil, errmsg.Wrap(errmsg.OpLibraryOpen, err)
	}
	a.Catalog, err = catalog.Open(dbPath)
	if err != nil {
		a.Close()
		return nil, errmsg.WrapWith(errmsg.OpLibraryOpen, dbPath, err)
	}
	log.WithField("path", dbPath).Debug("catalog opened")

	if opts.NoPlayback {
		return a, nil
	}

	pcfg := cfg.GetPlaybackConfig()
	eng := opts.Engine
	if eng == nil {
		eng = engine.NewBeep(pcfg.ResampleQuality)
	}
	a.Engine = engine.New(eng, pcfg.EventBuffer)
	a.Playback = playback.New(a.Engine, a.Catalog, log, playback.Options{
		ProgressInterval: cfg.ProgressInterval(),
	})
	return a, nil
}

// Start launches the playback service's background tasks.
func (a *App) Start(ctx context.Context) error {
	if a.Playback == nil {
		return errors.New("playback not opened")
	}
	if err := a.Playback.Start(ctx); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	return nil
}

// Close stops playback, clears the engine and releases the catalog and
// log file.
func (a *App) Close() error {
	var errs []error
	if a.Playback != nil {
		a.Playback.Clear()
		errs = append(errs, a.Playback.Close())
	}
	if a.Engine != nil && a.Engine.DroppedEvents() > 0 {
		a.Log.WithField("dropped", a.Engine.DroppedEvents()).Warn("end-of-media events were dropped")
	}
	if a.Catalog != nil {
		errs = append(errs, a.Catalog.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}

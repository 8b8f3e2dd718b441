package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/imagedata"
	"github.com/jacksmith/menu/internal/logging"
	"github.com/jacksmith/menu/internal/ops"
	"github.com/jacksmith/menu/internal/render"
	"github.com/jacksmith/menu/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is everything a command needs once .menu/ is opened and loaded.
type app struct {
	storage *storage.Storage
	cfg     *storage.Config
	logger  *zap.Logger
	backend storage.Backend
	store   *ops.Store

	// html is set when appOptions.html asked for it; the store renders
	// into it on every change.
	html *render.HTML
}

type appOptions struct {
	jsonLogs bool
	html     bool
	// writes marks commands that save the catalog. They refuse to start
	// from a catalog that failed to load, since saving would overwrite
	// every record in it.
	writes bool
}

// openApp opens storage, loads the user config, builds the logger and loads
// the catalog. A corrupt catalog is reported as a warning and read-only
// commands continue with an empty one.
func openApp(opts appOptions) (*app, error) {
	s, err := storage.Open(rootDir)
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		JSON:    opts.jsonLogs,
		File:    cfg.LogFile,
		Console: stderr,
	})

	backend, err := s.OpenBackend()
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	a := &app{storage: s, cfg: cfg, logger: logger, backend: backend}
	storeOpts := []ops.StoreOption{ops.WithLogger(logger)}
	if opts.html {
		a.html = render.NewHTML(cfg.Currency)
		storeOpts = append(storeOpts, ops.WithRenderer(a.html))
	}
	a.store = ops.NewStore(backend, storeOpts...)

	if err := a.store.Load(); err != nil {
		var lerr *ops.LoadError
		if !errors.As(err, &lerr) {
			a.Close()
			return nil, err
		}
		if opts.writes {
			a.Close()
			return nil, fmt.Errorf("%w; run 'menu validate' to inspect it and 'menu validate --fix' to drop bad records", err)
		}
		fmt.Fprintln(stderr, cli.FormatWarning(err))
	}
	return a, nil
}

// form returns a form controller over the app's store.
func (a *app) form() *ops.Form {
	return ops.NewForm(a.store, imagedata.NewDecoder(a.cfg.MaxImageBytes),
		ops.WithDecodeTimeout(a.cfg.DecodeTimeout))
}

// resolve maps a user reference to a product ID. Not found is reported
// to the user and returns ok=false with a nil error.
func (a *app) resolve(ref string) (id string, ok bool, err error) {
	id, err = a.store.Resolve(ref)
	if cli.IsNotFound(err) {
		fmt.Fprintln(stdout, cli.NotFoundMessage(ref))
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("closing storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// warnPersist prints a persistence failure as a warning and swallows it:
// the change is in memory and the command still reports it.
func warnPersist(err error) error {
	if ops.IsPersistError(err) {
		fmt.Fprintln(stderr, cli.FormatWarning(err))
		return nil
	}
	return err
}

// commandContext tolerates a nil command so tests can call run functions
// directly.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

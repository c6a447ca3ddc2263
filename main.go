package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/app"
	"github.com/llehouerou/lanshelf/internal/capability"
	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/icons"
	"github.com/llehouerou/lanshelf/internal/listing"
	"github.com/llehouerou/lanshelf/internal/logging"
	"github.com/llehouerou/lanshelf/internal/lyrics"
	"github.com/llehouerou/lanshelf/internal/mediahost"
	"github.com/llehouerou/lanshelf/internal/metrics"
	"github.com/llehouerou/lanshelf/internal/playback"
	"github.com/llehouerou/lanshelf/internal/player"
	"github.com/llehouerou/lanshelf/internal/progress"
	"github.com/llehouerou/lanshelf/internal/state"
	"github.com/llehouerou/lanshelf/internal/stderr"
)

// The host client serves every remote dependency of the engine.
var (
	_ progress.Remote        = (*mediahost.Client)(nil)
	_ listing.Fetcher        = (*mediahost.Client)(nil)
	_ capability.ProbeSource = (*mediahost.Client)(nil)
	_ lyrics.TextFetcher     = (*mediahost.Client)(nil)
	_ logging.RemoteSender   = (*mediahost.Client)(nil)
	_ player.Opener          = (*mediahost.Client)(nil)
	_ playback.StreamLocator = (*mediahost.Client)(nil)
)

const shutdownTimeout = 3 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(os.Args) > 1 {
		cfg.Host.URL = os.Args[1]
	}
	if !cfg.HasHost() {
		return errors.New("no media host configured: set host.url in config.toml or pass the host URL as an argument")
	}

	icons.Init(cfg.UI.Icons)

	logFile, err := logging.Setup(cfg.GetLogConfig())
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logging.For("main")

	hostCfg := cfg.GetHostConfig()
	client, err := mediahost.New(hostCfg.URL, mediahost.Options{
		Timeout: hostCfg.Timeout,
		Retries: hostCfg.Retries,
		Logger:  logging.For("mediahost"),
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpHostConnect, err))
	}
	if cfg.Log.Remote {
		hook := logging.NewHook(client)
		logrus.AddHook(hook)
		defer hook.Close()
	}

	stateMgr, err := openState(cfg.GetStoreConfig())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer stateMgr.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	met := metrics.New(reg)
	if addr := cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg); err != nil {
				log.WithError(err).Warn("metrics endpoint stopped")
			}
		}()
	}

	storeCfg := cfg.GetStoreConfig()
	store := progress.New(stateMgr, client, progress.Options{
		BatchWindow: storeCfg.BatchWindow,
		Throttle:    storeCfg.Throttle,
		Metrics:     met,
	})
	// Failure is logged by the store; reads fall back to the local tier.
	_ = store.Load(ctx)

	// Capture native audio output on fd 2 before the speaker starts.
	if err := stderr.Start(); err != nil {
		log.WithError(err).Warn("stderr capture unavailable")
	}
	defer stderr.Stop()

	pl := player.New(client, logging.For("player"))
	defer pl.Close()

	ctrl := playback.New(playback.Deps{
		Config:  cfg,
		Player:  pl,
		Store:   store,
		Streams: client,
		Prober:  capability.NewProber(client),
		Lyrics:  lyrics.NewSource(client),
		Metrics: met,
		Logger:  logging.For("playback"),
	})
	go func() {
		if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Warn("playback event loop stopped")
		}
	}()

	loader := listing.New(client, store, cfg.GetListingConfig(), met)
	log.WithField("host", hostCfg.URL).Info("starting")

	p := tea.NewProgram(
		app.New(ctx, cfg, ctrl, loader),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, runErr := p.Run()

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := ctrl.Close(shutdownCtx); err != nil {
		log.WithError(err).Warn(errmsg.Format(errmsg.OpProgressSave, err))
	}
	if err := store.Close(shutdownCtx); err != nil && !errors.Is(err, progress.ErrClosed) {
		log.WithError(err).Warn(errmsg.Format(errmsg.OpPrefsSave, err))
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}

func openState(cfg config.StoreConfig) (*state.Manager, error) {
	opts := []state.Option{state.WithMaxEntries(cfg.MaxEntries)}
	if cfg.Path != "" {
		return state.OpenPath(cfg.Path, opts...)
	}
	return state.Open(opts...)
}

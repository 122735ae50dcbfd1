package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/frudas24/deskcontrol/internal/app"
	"github.com/frudas24/deskcontrol/internal/config"
	"github.com/frudas24/deskcontrol/internal/controller"
	"github.com/frudas24/deskcontrol/internal/event"
	"github.com/frudas24/deskcontrol/internal/logging"
	"github.com/frudas24/deskcontrol/internal/metrics"
	"github.com/frudas24/deskcontrol/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// runOptions carries command-line flags.
type runOptions struct {
	debug   bool
	dataDir string
}

// run wires the application and blocks until shutdown.
func run(ctx context.Context, opts runOptions) error {
	cfg, err := config.Load(opts.dataDir)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if opts.debug {
		level = "debug"
	}
	logging.Configure(logging.Config{Level: level})
	log := logging.WithComponent("main")
	log.Info().
		Str("listen", cfg.ListenAddr).
		Str("peer", cfg.PeerAddr).
		Bool("metrics", cfg.MetricsEnabled).
		Msg("deskcontrol starting")

	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	peer, err := dialer.DialContext(ctx, "tcp", cfg.PeerAddr)
	if err != nil {
		return fmt.Errorf("connect to peer %s: %w", cfg.PeerAddr, err)
	}
	defer func() {
		if err := peer.Close(); err != nil {
			log.Debug().Err(err).Msg("close peer connection")
		}
	}()
	log.Info().Str("peer", peer.RemoteAddr().String()).Msg("peer connected")

	var (
		gatherer prometheus.Gatherer
		channel  *metrics.Channel
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		channel = metrics.New(reg)
		gatherer = reg
	}

	ctrl, err := controller.New(peer,
		controller.WithLogger(logging.WithComponent("controller")),
		controller.WithMetrics(channel),
	)
	if err != nil {
		return err
	}

	screen := event.Size{Width: uint16(cfg.ScreenWidth), Height: uint16(cfg.ScreenHeight)}
	sess := session.New(cfg.UIPassword, screen)
	appInstance, err := app.New(cfg, sess, ctrl, gatherer, logging.WithComponent("app"))
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

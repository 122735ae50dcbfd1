// Package app wires HTTP, the control websocket and the event channel together.
package app

import (
	"errors"
	"sync"

	"github.com/frudas24/deskcontrol/internal/config"
	"github.com/frudas24/deskcontrol/internal/control"
	"github.com/frudas24/deskcontrol/internal/controller"
	"github.com/frudas24/deskcontrol/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// App coordinates the HTTP API, the control websocket and the controller.
type App struct {
	cfg        config.Config
	session    *session.Session
	controller *controller.Controller
	control    *control.Server
	gatherer   prometheus.Gatherer
	log        zerolog.Logger

	stopOnce sync.Once
	watchWG  sync.WaitGroup
}

// New creates a new application with its dependencies wired. gatherer may be
// nil, in which case /metrics is not served.
func New(cfg config.Config, sess *session.Session, ctrl *controller.Controller, gatherer prometheus.Gatherer, log zerolog.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if ctrl == nil {
		return nil, errors.New("controller is required")
	}

	return &App{
		cfg:        cfg,
		session:    sess,
		controller: ctrl,
		control:    control.NewServer(sess, ctrl, log.With().Str("component", "control").Logger()),
		gatherer:   gatherer,
		log:        log,
	}, nil
}

// Start launches the controller worker and a watcher that reports when delivery ends.
func (a *App) Start() error {
	if err := a.controller.Start(); err != nil {
		return err
	}
	done := a.controller.Done()
	a.watchWG.Add(1)
	go func() {
		defer a.watchWG.Done()
		<-done
		if err := a.controller.Err(); err != nil {
			a.log.Error().Err(err).Msg("control channel closed, events are no longer delivered")
			return
		}
		a.log.Info().Msg("control channel stopped")
	}()
	return nil
}

// Stop stops the controller, waits for its worker and releases it.
func (a *App) Stop() error {
	var err error
	a.stopOnce.Do(func() {
		a.controller.Stop()
		a.controller.Join()
		a.watchWG.Wait()
		err = a.controller.Destroy()
	})
	return err
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

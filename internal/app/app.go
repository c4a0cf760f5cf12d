package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/handlers"
	"github.com/GlebRadaev/billsplit/internal/metrics"
	"github.com/GlebRadaev/billsplit/internal/wallet"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg      *config.Config
	approver wallet.Approver
	api      *handlers.Handlers
	parts    *Components
	registry prometheus.Registerer

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New(cfg *config.Config, approver wallet.Approver) *Application {
	return &Application{
		cfg:      cfg,
		approver: approver,
		registry: prometheus.DefaultRegisterer,
		errCh:    make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	if err := metrics.Register(a.registry); err != nil {
		return fmt.Errorf("can't register metrics: %w", err)
	}

	parts, err := Wire(a.cfg, a.approver)
	if err != nil {
		zap.L().Error("wiring failed: ", zap.Error(err))
		return err
	}
	a.parts = parts
	a.api = handlers.New(parts.Services)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startWatcher(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully",
		zap.String("wallet", parts.Wallet.Address()),
		zap.Bool("can_sign", parts.Wallet.CanSign()),
	)
	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// startWatcher binds the live bill sessions to the application lifetime.
func (a *Application) startWatcher(ctx context.Context) {
	a.parts.Services.Watcher.Start(ctx)
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	if a.parts != nil {
		a.parts.Close()
	}
	return appErr
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"medcard/config"
	"medcard/internal/cron"
	"medcard/internal/service"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	httpSrv       *http.Server
	trace         *telemetry.Trace
	healthService *service.HealthService
	failed        chan error

	startAt time.Time // 程式啟動時間（非環境變數）
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(conf.App.Port), 10),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	httpSrv *http.Server,
	trace *telemetry.Trace,
	healthService *service.HealthService,
	cronSrv *cron.Cron,
) *App {
	return &App{
		conf:          conf,
		logger:        logger,
		httpSrv:       httpSrv,
		trace:         trace,
		healthService: healthService,
		cronSrv:       cronSrv,
		failed:        make(chan error, 1),
		startAt:       time.Now(),
	}
}

// Run 啟動 cron 並綁定 port 後即返回；之後 Serve 失敗會送到 Failed()
func (a *App) Run() error {
	a.logger.Info("app runtime info",
		zap.String("env", a.conf.App.Env),
		zap.String("name", a.conf.App.Name),
		zap.String("version", a.conf.App.Version),
		zap.String("go_version", runtime.Version()),
		zap.Time("start_at", a.startAt),
	)

	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	listener, err := net.Listen("tcp", a.httpSrv.Addr)
	if err != nil {
		return err
	}
	a.logger.Info("http server listening", zap.String("addr", listener.Addr().String()))
	go func() {
		if err := a.httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.healthService.SetReady(false)
			a.failed <- err
		}
	}()

	a.healthService.SetReady(true)
	return nil
}

func (a *App) Failed() <-chan error {
	return a.failed
}

func (a *App) Close(ctx context.Context) error {
	if a.healthService != nil {
		a.healthService.SetReady(false)
	}

	var errs []error
	if err := a.httpSrv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	a.logger.Info("http server stopped")

	if a.cronSrv != nil {
		if err := a.cronSrv.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
		a.logger.Info("cron server stopped")
	}

	if err := a.trace.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) Stop(ctx context.Context) error {
	return a.Close(ctx)
}

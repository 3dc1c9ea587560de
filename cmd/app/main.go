package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medcard/config"
	"medcard/internal/command"
	"medcard/internal/log"
	"medcard/utils/path"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "medcard/cmd/docs"
)

// Version 由 -ldflags "-X main.Version=..." 注入，優先於設定檔
var Version string

const shutdownTimeout = 10 * time.Second

// @title        medcard API
// @version      1.0
// @description  VK 醫療個人檔案與分享 API
// @host         localhost:3000
// @basePath     /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description 請在欄位輸入 "Bearer {token}"
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runtimeState struct {
	opts   config.LoadOptions
	conf   *config.Configuration
	logger *zap.Logger
	level  zap.AtomicLevel
}

func newRootCmd() *cobra.Command {
	state := &runtimeState{opts: config.LoadOptions{RootPath: path.RootPath(), Watch: true}}

	rootCmd := &cobra.Command{
		Use:           "app",
		Short:         "medcard HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.serve()
		},
	}
	state.opts.BindFlags(rootCmd.PersistentFlags())

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		return wireCommand(state.conf, state.logger)
	})
	return rootCmd
}

func (s *runtimeState) init() error {
	if s.opts.EnvFile != "" && s.opts.YAMLFile != "" {
		fmt.Println("同時指定 --env 與 --config，將以 --env 優先")
	}
	s.opts.OnChange = func(file string, err error) {
		if s.logger == nil {
			return
		}
		if err != nil {
			s.logger.Error("reload config failed", zap.String("file", file), zap.Error(err))
			return
		}
		s.level.SetLevel(log.ParseLevel(s.conf.Log.Level))
		s.logger.Info("config reloaded", zap.String("file", file), zap.Stringer("level", s.level.Level()))
	}

	conf, file, err := config.Load(s.opts)
	if err != nil {
		return err
	}
	if Version != "" {
		conf.App.Version = Version
	}
	logger, level, err := log.NewLogger(conf)
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	if file == "" {
		logger.Info("no configuration file specified, using environment variables only")
	} else {
		logger.Info("config loaded", zap.String("file", file))
	}
	s.conf, s.logger, s.level = conf, logger, level
	return nil
}

func (s *runtimeState) serve() error {
	defer func() { _ = s.logger.Sync() }()

	app, cleanup, err := wireApp(s.conf, s.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case sig := <-quit:
		s.logger.Info("shutdown app ...", zap.String("signal", sig.String()))
	case serveErr = <-app.Failed():
		s.logger.Error("http server stopped unexpectedly", zap.Error(serveErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(serveErr, app.Stop(ctx))
}

package cron

import (
	"context"

	"medcard/config"
	"medcard/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewProfileSyncJob)

type Cron struct {
	logger         *zap.Logger
	config         *config.Configuration
	server         *cron.Cron
	profileSyncJob *ProfileSyncJob
}

// NewCron .
func NewCron(logger *zap.Logger, config *config.Configuration, profileSyncJob *ProfileSyncJob) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		logger:         logger,
		config:         config,
		server:         server,
		profileSyncJob: profileSyncJob,
	}
}

func (c *Cron) Run() error {
	if spec := c.config.Cron.ProfileSyncSpec; spec != "" {
		if _, err := c.server.AddFunc(spec, c.profileSyncJob.Run); err != nil {
			return err
		}
		c.logger.Info("cron job registered", zap.String("job", "profile_sync"), zap.String("spec", spec))
	}

	c.server.Start()
	return nil
}

// Stop 等待執行中的 job 結束或 ctx 到期
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ProfileSyncJob 定期刷新過期的 VK 名稱/頭像
type ProfileSyncJob struct {
	logger      *zap.Logger
	syncService *service.ProfileSyncService
}

func NewProfileSyncJob(logger *zap.Logger, syncService *service.ProfileSyncService) *ProfileSyncJob {
	return &ProfileSyncJob{
		logger:      logger,
		syncService: syncService,
	}
}

func (job *ProfileSyncJob) Run() {
	if _, err := job.syncService.SyncStale(context.Background()); err != nil {
		job.logger.Error("profile sync failed", zap.Error(err))
	}
}

package command

import (
	"context"
	"time"

	mongoRepo "medcard/internal/database/mongodb/repository"
	"medcard/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// indexer 各 collection 的 repository 都有 EnsureIndexes
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

type MaintenanceHandler struct {
	logger      *zap.Logger
	repository  *mongoRepo.MongoDBRepository
	syncService *service.ProfileSyncService
}

func NewMaintenanceHandler(
	logger *zap.Logger,
	repository *mongoRepo.MongoDBRepository,
	syncService *service.ProfileSyncService,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		logger:      logger,
		repository:  repository,
		syncService: syncService,
	}
}

// EnsureIndexes 建立 profiles / events / view_logs 的索引（可重複執行）
func (handler *MaintenanceHandler) EnsureIndexes(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	collections := []struct {
		name string
		repo indexer
	}{
		{"profiles", handler.repository.Profile},
		{"events", handler.repository.Event},
		{"view_logs", handler.repository.ViewLog},
	}
	for _, collection := range collections {
		if err := collection.repo.EnsureIndexes(ctx); err != nil {
			handler.logger.Error("ensure indexes failed", zap.String("collection", collection.name), zap.Error(err))
			return err
		}
		cmd.Printf("indexes ready: %s\n", collection.name)
	}
	return nil
}

// SyncProfiles 立即執行一批 VK 名稱/頭像同步
func (handler *MaintenanceHandler) SyncProfiles(cmd *cobra.Command, _ []string) error {
	result, err := handler.syncService.SyncStale(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("scanned=%d refreshed=%d failed=%d\n", result.Scanned, result.Refreshed, result.Failed)
	return nil
}

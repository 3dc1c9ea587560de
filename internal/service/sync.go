package service

import (
	"context"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/service/vk"
	"medcard/internal/telemetry"

	"go.uber.org/zap"
)

const defaultSyncBatchSize = 100

// SyncResult 一次同步的統計
type SyncResult struct {
	Scanned   int
	Refreshed int
	Failed    int
}

// ProfileSyncService 批次刷新過期的 VK 名稱/頭像（cron 與 sync-profiles 指令共用）
type ProfileSyncService struct {
	trace     *telemetry.Trace
	logger    *zap.Logger
	profiles  ProfileStore
	external  vk.Service
	batchSize int64
	now       func() time.Time
}

func NewProfileSyncService(
	trace *telemetry.Trace,
	logger *zap.Logger,
	conf *config.Configuration,
	profiles ProfileStore,
	external vk.Service,
) *ProfileSyncService {
	batchSize := conf.Cron.ProfileSyncSize
	if batchSize <= 0 {
		batchSize = defaultSyncBatchSize
	}
	return &ProfileSyncService{
		trace:     trace,
		logger:    logger,
		profiles:  profiles,
		external:  external,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// SyncStale 處理一批；單筆失敗不中斷整批
func (s *ProfileSyncService) SyncStale(ctx context.Context) (_ SyncResult, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanProfileSyncJob))
	defer func() { end(returnedError) }()

	now := s.now().UTC()
	// 與讀取時的判斷一致：超過 StaleAfterDays 個完整天數
	cutoff := now.Add(-time.Duration(core.StaleAfterDays+1) * 24 * time.Hour)

	meta := core.TraceProfileSyncMeta{Cutoff: cutoff.Format(time.RFC3339), BatchSize: s.batchSize}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	profiles, err := s.profiles.ListStale(ctx, cutoff, s.batchSize)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, profile := range profiles {
		if ctx.Err() != nil {
			break
		}
		result.Scanned++
		info, err := s.external.Fetch(ctx, profile.UserID)
		if err != nil {
			result.Failed++
			s.logger.Warn("profile sync fetch failed", zap.Int64("userId", profile.UserID), zap.Error(err))
			continue
		}
		if _, err := s.profiles.SyncExternalFields(ctx, profile.UserID, info.UserName, info.Photo, now); err != nil {
			result.Failed++
			s.logger.Warn("profile sync update failed", zap.Int64("userId", profile.UserID), zap.Error(err))
			continue
		}
		result.Refreshed++
	}

	meta.Scanned, meta.Refreshed, meta.Failed = result.Scanned, result.Refreshed, result.Failed
	s.logger.Info("profile sync finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("refreshed", result.Refreshed),
		zap.Int("failed", result.Failed))
	return result, nil
}

package service

import (
	"context"
	"sort"
	"sync/atomic"

	"medcard/internal/database/client"
)

// Pinger 就緒檢查時要確認的外部依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyStatus 單一依賴的檢查結果
type DependencyStatus struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthService struct {
	live         atomic.Bool
	ready        atomic.Bool
	dependencies map[string]Pinger
}

func NewHealthService(mongoClient *client.MongoClient, redisClient *client.RedisClient) *HealthService {
	return NewHealthServiceWith(map[string]Pinger{
		"mongodb": mongoClient,
		"redis":   redisClient,
	})
}

// NewHealthServiceWith 指定依賴（測試或不需外部依賴時傳 nil）
func NewHealthServiceWith(dependencies map[string]Pinger) *HealthService {
	s := &HealthService{dependencies: dependencies}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// CheckDependencies 依名稱排序回傳；ok 為 false 代表至少一個依賴失敗
func (s *HealthService) CheckDependencies(ctx context.Context) (statuses []DependencyStatus, ok bool) {
	ok = true
	for name, dependency := range s.dependencies {
		status := DependencyStatus{Name: name, OK: true}
		if err := dependency.Ping(ctx); err != nil {
			status.OK, status.Error = false, err.Error()
			ok = false
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, ok
}

package repository

import (
	"context"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/client"
	"medcard/internal/database/fluentd/model"
	"medcard/utils/validate"
)

const loggedAtLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 統一負責發送 Request/Response/ViewLog 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
	now           func() time.Time
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version, now: time.Now}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = repository.loggedAt()
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = repository.loggedAt()
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogProfileView(ctx context.Context, view model.ProfileViewLog) error {
	if view.LoggedAt == "" {
		view.LoggedAt = repository.loggedAt()
	}
	if view.Version == "" {
		view.Version = repository.version
	}
	return repository.post(ctx, core.FluentdViewLog, view)
}

func (repository *LogRepository) loggedAt() string {
	return repository.now().UTC().Format(loggedAtLayout)
}

// post 以 json tag 攤平成 map 再送出
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	fluentdMessage, err := validate.PayloadToMap(record)
	if err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}

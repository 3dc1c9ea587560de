package service

import (
	fluentdRepo "medcard/internal/database/fluentd/repository"
	mongoRepo "medcard/internal/database/mongodb/repository"
	"medcard/internal/service/vk"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	vk.NewClient,
	NewHealthService,
	NewProfileService,
	NewAccessService,
	NewProfileSyncService,
	wire.Bind(new(ProfileStore), new(*mongoRepo.ProfileRepository)),
	wire.Bind(new(EventStore), new(*mongoRepo.EventRepository)),
	wire.Bind(new(ViewLogStore), new(*mongoRepo.ViewLogRepository)),
	wire.Bind(new(ViewLogPublisher), new(*fluentdRepo.LogRepository)),
)

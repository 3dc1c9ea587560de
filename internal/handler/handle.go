package handler

import (
	"medcard/internal/service"

	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewHealthHandler,
	NewProfileHandler,
	wire.Bind(new(ProfileAccessor), new(*service.AccessService)),
	wire.Bind(new(ProfileMutator), new(*service.ProfileService)),
)

package fx

import (
	"wow-tracker/internal/api"
	"wow-tracker/internal/config"
	"wow-tracker/internal/logger"
	"wow-tracker/internal/repository"
	"wow-tracker/internal/server"
	"wow-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideFetcher(client *api.Client) service.ProfileFetcher {
	return client
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// repos
	fx.Provide(repository.NewHistoryRepository),
	fx.Provide(repository.NewSnapshotRepository),
	// api client
	fx.Provide(api.NewClient),
	fx.Provide(ProvideFetcher),
	// svc
	fx.Provide(service.NewSnapshotService),
	// server
	fx.Provide(server.NewSnapshotServer),
)

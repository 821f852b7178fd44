//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"nomadix/internal"
	"nomadix/internal/controllers"
	"nomadix/internal/providers"
	"nomadix/internal/services"
	"nomadix/internal/sources"
	"nomadix/internal/storage"
	"nomadix/internal/structures"
	"nomadix/internal/tracking"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewRecordStore,
		sources.NewHistorySource,
		sources.NewPushSource,
		sources.NewSnapshotSource,
		services.NewTravelService,
		wire.Bind(new(tracking.VisitMerger), new(services.TravelServiceInterface)),
		tracking.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}

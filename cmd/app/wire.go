//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/facility-heatmap/internal/bootstrap"
	"github.com/yanqian/facility-heatmap/internal/domain/dataset"
	"github.com/yanqian/facility-heatmap/internal/domain/heatmap"
	"github.com/yanqian/facility-heatmap/internal/domain/selection"
	"github.com/yanqian/facility-heatmap/internal/domain/timeseries"
	"github.com/yanqian/facility-heatmap/internal/infra/config"
	httpiface "github.com/yanqian/facility-heatmap/internal/interface/http"
	"github.com/yanqian/facility-heatmap/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDatasetConfig,
		provideSelectionConfig,
		provideDatasetSource,
		provideSelectionStore,
		dataset.NewRepository,
		heatmap.NewService,
		timeseries.NewService,
		selection.NewService,
		wire.Bind(new(heatmap.ReadingSource), new(*dataset.Repository)),
		wire.Bind(new(timeseries.DailySource), new(*dataset.Repository)),
		wire.Bind(new(httpiface.StatsReporter), new(*dataset.Repository)),
		wire.Bind(new(bootstrap.Preloader), new(*dataset.Repository)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

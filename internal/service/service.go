package service

import (
	"quantlab/config"
	"quantlab/internal/chart"
	"quantlab/internal/repository"
	"quantlab/pkg/cache"
	"quantlab/pkg/logger"
)

type Service struct {
	AnalysisService   AnalysisService
	FinancialsService FinancialsService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	renderer := chart.NewRenderer(cfg.Chart, log)

	return &Service{
		AnalysisService:   NewAnalysisService(cfg, log, repo.MarketDataRepo, repo.MacroDataRepo, renderer),
		FinancialsService: NewFinancialsService(cfg, log, repo.FundamentalsRepo, inmemoryCache),
	}
}

package repository

import (
	"quantlab/config"
	"quantlab/pkg/cache"
	"quantlab/pkg/logger"
)

type Repository struct {
	MarketDataRepo   MarketDataRepository
	MacroDataRepo    MacroDataRepository
	FundamentalsRepo FundamentalsRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	return &Repository{
		MarketDataRepo:   NewYahooFinanceRepository(cfg, inmemoryCache, log),
		MacroDataRepo:    NewFredRepository(cfg, log),
		FundamentalsRepo: NewYahooFundamentalsRepository(cfg, log),
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"quantlab/config"
	"quantlab/internal/chart"
	"quantlab/internal/dto"
	"quantlab/internal/quant"
	"quantlab/internal/repository"
	"quantlab/pkg/logger"
	"quantlab/pkg/utils"
)

const (
	riskFreeSeriesID = "DGS10"

	// Liquidity proxies: high-yield vs investment-grade credit ETFs.
	highYieldSymbol       = "HYG"
	investmentGradeSymbol = "LQD"
)

// AnalysisService runs the full analysis pipeline for one request: price
// fetches, CAPM, option pricing, backtest, regime classification and chart
// rendering.
type AnalysisService interface {
	Calculate(ctx context.Context, req dto.CalculateRequest) (*dto.CalculateResponse, error)
}

type analysisService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	macroData  repository.MacroDataRepository
	renderer   *chart.Renderer
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	marketData repository.MarketDataRepository,
	macroData repository.MacroDataRepository,
	renderer *chart.Renderer,
) AnalysisService {
	return &analysisService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		macroData:  macroData,
		renderer:   renderer,
	}
}

func (s *analysisService) Calculate(ctx context.Context, req dto.CalculateRequest) (*dto.CalculateResponse, error) {
	start, end, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	// Stock and benchmark are both required; either failing fails the
	// request with the failing symbol in the message.
	var stockSeries, marketSeries *dto.PriceSeries
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stockSeries, err = s.marketData.GetDailyCloses(gctx, req.Ticker, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		marketSeries, err = s.marketData.GetDailyCloses(gctx, req.Market, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	alignedStock, alignedMarket := dto.AlignSeries(stockSeries, marketSeries)
	if alignedStock.Len() < 2 {
		return nil, fmt.Errorf("no overlapping price data for %s and %s in the requested range", req.Ticker, req.Market)
	}

	stockCloses := alignedStock.Closes()
	stockReturns, err := quant.LogReturns(stockCloses)
	if err != nil {
		return nil, err
	}
	marketReturns, err := quant.LogReturns(alignedMarket.Closes())
	if err != nil {
		return nil, err
	}

	riskFree := req.RiskFree / 100.0

	capm, err := quant.EstimateCAPM(stockReturns, marketReturns, riskFree)
	if err != nil {
		return nil, err
	}

	spot := stockCloses[len(stockCloses)-1]
	strike := spot
	if req.Strike != nil {
		strike = *req.Strike
	}
	vol := quant.AnnualizedVol(stockReturns)
	timeYears := float64(req.Days) / quant.CalendarDays

	callPrice, err := quant.BlackScholesCall(spot, strike, timeYears, riskFree, vol)
	if err != nil {
		return nil, err
	}

	backtest, err := quant.RunBacktest(alignedStock.Dates(), stockCloses, stockReturns, marketReturns, req.Window)
	if err != nil {
		return nil, err
	}

	volRegime := quant.ClassifyVolatility(stockCloses)
	rateRegime, liquidityRegime := s.classifyMacroRegimes(ctx, start, end)

	resp := &dto.CalculateResponse{
		CAPMSummary: dto.CAPMSummary{
			Ticker:               req.Ticker,
			Market:               req.Market,
			Beta:                 capm.Beta,
			ExpectedAnnualReturn: capm.ExpectedAnnualReturn,
		},
		BlackScholesCall: dto.BlackScholesCall{
			Spot:       spot,
			Strike:     strike,
			Volatility: vol,
			Days:       req.Days,
			Price:      callPrice,
		},
		BacktestSummary: dto.BacktestSummary{
			StrategyReturn:   backtest.Summary.StrategyReturn,
			BuyHoldReturn:    backtest.Summary.BuyHoldReturn,
			HitRate:          backtest.Summary.HitRate,
			TotalDays:        backtest.Summary.TotalDays,
			MaxDrawdown:      backtest.Summary.MaxDrawdown,
			SharpeRatio:      backtest.Summary.SharpeRatio,
			SortinoRatio:     backtest.Summary.SortinoRatio,
			InformationRatio: backtest.Summary.InformationRatio,
		},
		VolatilityRegime: dto.VolatilityRegime{
			Regime:             volRegime.Regime,
			RealizedVolatility: volRegime.RealizedVol,
		},
		InterestRate: rateRegime,
		Liquidity:    liquidityRegime,
		TableData:    lastTableRows(backtest.Rows, 5),
	}

	s.attachCharts(ctx, resp, backtest)

	s.log.InfoContext(ctx, "Analysis completed",
		logger.StringField("ticker", req.Ticker),
		logger.StringField("market", req.Market),
		logger.IntField("total_days", backtest.Summary.TotalDays))

	return resp, nil
}

// classifyMacroRegimes fetches the macro inputs in parallel. Each regime
// degrades to "N/A" on its own fetch failure, never failing the request.
func (s *analysisService) classifyMacroRegimes(ctx context.Context, start, end time.Time) (dto.InterestRateRegime, dto.LiquidityRegime) {
	rateRegime := dto.InterestRateRegime{Regime: quant.RegimeNA, CurrentRate: s.cfg.Fred.FallbackRate}
	liquidityRegime := dto.LiquidityRegime{Regime: quant.RegimeNA}

	var yields *dto.YieldSeries
	var highYield, investmentGrade *dto.PriceSeries

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		series, err := s.macroData.GetYieldSeries(gctx, riskFreeSeriesID, start, end)
		if err != nil {
			s.log.WarnContext(ctx, "Macro yield fetch failed, rate regime degraded",
				logger.StringField("series_id", riskFreeSeriesID),
				logger.ErrorField(err))
			return nil
		}
		yields = series
		return nil
	})
	g.Go(func() error {
		series, err := s.marketData.GetDailyCloses(gctx, highYieldSymbol, start, end)
		if err != nil {
			s.log.WarnContext(ctx, "Liquidity proxy fetch failed, liquidity regime degraded",
				logger.StringField("symbol", highYieldSymbol),
				logger.ErrorField(err))
			return nil
		}
		highYield = series
		return nil
	})
	g.Go(func() error {
		series, err := s.marketData.GetDailyCloses(gctx, investmentGradeSymbol, start, end)
		if err != nil {
			s.log.WarnContext(ctx, "Liquidity proxy fetch failed, liquidity regime degraded",
				logger.StringField("symbol", investmentGradeSymbol),
				logger.ErrorField(err))
			return nil
		}
		investmentGrade = series
		return nil
	})
	// closures always return nil
	_ = g.Wait()

	if yields != nil {
		assessment := quant.ClassifyRateTrend(yields.Rates())
		if assessment.Regime != quant.RegimeNA {
			rateRegime = dto.InterestRateRegime{
				Regime:      assessment.Regime,
				CurrentRate: assessment.CurrentRate,
			}
		}
	}

	if highYield != nil && investmentGrade != nil {
		alignedHY, alignedIG := dto.AlignSeries(highYield, investmentGrade)
		assessment := quant.ClassifyLiquidity(alignedHY.Closes(), alignedIG.Closes())
		liquidityRegime = dto.LiquidityRegime{
			Regime: assessment.Regime,
			Ratio:  assessment.Ratio,
		}
	}

	return rateRegime, liquidityRegime
}

// attachCharts renders both plots; a render failure only omits that field.
func (s *analysisService) attachCharts(ctx context.Context, resp *dto.CalculateResponse, backtest *quant.BacktestResult) {
	dates := make([]time.Time, len(backtest.Rows))
	for i, row := range backtest.Rows {
		dates[i] = row.Date
	}

	equityPlot, err := s.renderer.EquityCurve(dates, backtest.EquityStrategy, backtest.EquityBuyHold)
	if err != nil {
		s.log.WarnContext(ctx, "Equity chart rendering failed, omitting plot", logger.ErrorField(err))
	} else {
		resp.EquityPlot = equityPlot
	}

	drawdownPlot, err := s.renderer.Drawdown(dates, backtest.Drawdown)
	if err != nil {
		s.log.WarnContext(ctx, "Drawdown chart rendering failed, omitting plot", logger.ErrorField(err))
	} else {
		resp.DrawdownPlot = drawdownPlot
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endStr != "" {
		end, err = utils.ParseDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date range: start %s must be before end %s",
			utils.FormatDate(start), utils.FormatDate(end))
	}
	return start, end, nil
}

func lastTableRows(rows []quant.BacktestRow, n int) []dto.BacktestTableRow {
	if len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	out := make([]dto.BacktestTableRow, len(rows))
	for i, row := range rows {
		out[i] = dto.BacktestTableRow{
			Date:           utils.FormatDate(row.Date),
			StockReturn:    row.StockReturn,
			DaysInPosition: row.DaysInPosition,
			StrategyReturn: row.StrategyReturn,
			MarketReturn:   row.MarketReturn,
		}
	}
	return out
}

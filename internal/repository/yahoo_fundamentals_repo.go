package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"quantlab/config"
	"quantlab/internal/dto"
	"quantlab/pkg/httpclient"
	"quantlab/pkg/logger"
	"quantlab/pkg/utils"
)

const quoteSummaryModules = "price,summaryDetail,financialData,defaultKeyStatistics," +
	"incomeStatementHistoryQuarterly,cashflowStatementHistoryQuarterly"

const maxQuarters = 4

// FundamentalsRepository retrieves company fundamentals and analyst data.
type FundamentalsRepository interface {
	GetFundamentals(ctx context.Context, ticker string) (*dto.CompanyFundamentals, error)
}

type yahooFundamentalsRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewYahooFundamentalsRepository(cfg *config.Config, log *logger.Logger) FundamentalsRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFundamentalsRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.QuoteSummaryBaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFundamentalsRepository) GetFundamentals(ctx context.Context, ticker string) (*dto.CompanyFundamentals, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + ticker
	queryParams := map[string]string{
		"modules": quoteSummaryModules,
	}
	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Referer":    "https://finance.yahoo.com/",
	}

	var summaryResp dto.YahooQuoteSummaryResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &summaryResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial data for %s: %w", ticker, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no financial data available for %s: unknown or delisted ticker", ticker)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo quoteSummary API returned non-OK status",
			logger.StringField("ticker", ticker),
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("financial data fetch for %s returned status %d", ticker, resp.StatusCode)
	}

	return parseQuoteSummary(ticker, &summaryResp)
}

func parseQuoteSummary(ticker string, summaryResp *dto.YahooQuoteSummaryResponse) (*dto.CompanyFundamentals, error) {
	if summaryResp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("financial data error for %s: %v", ticker, summaryResp.QuoteSummary.Error)
	}
	if len(summaryResp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no financial data available for %s", ticker)
	}

	result := summaryResp.QuoteSummary.Result[0]

	companyName := result.Price.LongName
	if companyName == "" {
		companyName = ticker
	}

	epsTTM := dto.MetricFromRaw(result.DefaultKeyStatistics.TrailingEps)

	// Operating cash flow rows keyed by statement end date.
	cashFlowByDate := make(map[string]dto.Metric)
	for _, stmt := range result.CashflowStatementHistoryQuarterly.CashflowStatements {
		if stmt.EndDate.Raw == nil {
			continue
		}
		key := quarterKey(*stmt.EndDate.Raw)
		cashFlowByDate[key] = dto.MetricFromRaw(stmt.TotalCashFromOperatingActivities)
	}

	var quarterly []dto.QuarterlyRow
	for i, stmt := range result.IncomeStatementHistoryQuarterly.IncomeStatementHistory {
		if i >= maxQuarters || stmt.EndDate.Raw == nil {
			break
		}
		key := quarterKey(*stmt.EndDate.Raw)
		quarterly = append(quarterly, dto.QuarterlyRow{
			Quarter:           key,
			Revenue:           dto.MetricFromRaw(stmt.TotalRevenue),
			NetIncome:         dto.MetricFromRaw(stmt.NetIncome),
			OperatingCashFlow: cashFlowByDate[key],
			EPSTTM:            epsTTM,
		})
	}

	return &dto.CompanyFundamentals{
		CompanyName: companyName,
		CurrentMetrics: dto.CurrentMetrics{
			PERatio:        dto.MetricFromRaw(result.SummaryDetail.TrailingPE),
			ForwardPE:      dto.MetricFromRaw(result.SummaryDetail.ForwardPE),
			ProfitMargin:   dto.MetricFromRaw(result.FinancialData.ProfitMargins),
			RevenueGrowth:  dto.MetricFromRaw(result.FinancialData.RevenueGrowth),
			EarningsGrowth: dto.MetricFromRaw(result.FinancialData.EarningsGrowth),
			ROE:            dto.MetricFromRaw(result.FinancialData.ReturnOnEquity),
			ROA:            dto.MetricFromRaw(result.FinancialData.ReturnOnAssets),
			DebtToEquity:   dto.MetricFromRaw(result.FinancialData.DebtToEquity),
			CurrentRatio:   dto.MetricFromRaw(result.FinancialData.CurrentRatio),
			DividendYield:  dto.MetricFromRaw(result.SummaryDetail.DividendYield),
		},
		AnalystData: dto.AnalystData{
			TargetPrice:      dto.MetricFromRaw(result.FinancialData.TargetMeanPrice),
			NumberOfAnalysts: dto.MetricFromRaw(result.FinancialData.NumberOfAnalystOpinions),
			Recommendation:   recommendationOrNA(result.FinancialData.RecommendationKey),
		},
		QuarterlyData: quarterly,
	}, nil
}

func quarterKey(endDateUnix float64) string {
	return utils.QuarterLabel(time.Unix(int64(endDateUnix), 0).UTC())
}

func recommendationOrNA(key string) string {
	if key == "" {
		return "N/A"
	}
	return key
}

package dto

import (
	"encoding/json"
	"time"
)

// Metric is a fundamental reading that may be unavailable upstream.
// Missing values serialize as the literal string "N/A".
type Metric struct {
	Value float64
	Valid bool
}

func NewMetric(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

func MetricFromRaw(r RawFmt) Metric {
	if r.Raw == nil {
		return Metric{}
	}
	return Metric{Value: *r.Raw, Valid: true}
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal("N/A")
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*m = Metric{}
		return nil
	}
	*m = Metric{Value: v, Valid: true}
	return nil
}

type CurrentMetrics struct {
	PERatio       Metric `json:"pe_ratio"`
	ForwardPE     Metric `json:"forward_pe"`
	ProfitMargin  Metric `json:"profit_margin"`
	RevenueGrowth Metric `json:"revenue_growth"`
	EarningsGrowth Metric `json:"earnings_growth"`
	ROE           Metric `json:"roe"`
	ROA           Metric `json:"roa"`
	DebtToEquity  Metric `json:"debt_to_equity"`
	CurrentRatio  Metric `json:"current_ratio"`
	DividendYield Metric `json:"dividend_yield"`
}

type AnalystData struct {
	TargetPrice      Metric `json:"target_price"`
	NumberOfAnalysts Metric `json:"number_of_analysts"`
	Recommendation   string `json:"recommendation"`
}

type QuarterlyRow struct {
	Quarter           string `json:"quarter"`
	Revenue           Metric `json:"revenue"`
	NetIncome         Metric `json:"net_income"`
	OperatingCashFlow Metric `json:"operating_cash_flow"`
	EPSTTM            Metric `json:"eps_ttm"`
}

// CompanyFundamentals is the upstream-independent shape of a fundamentals
// fetch, before cache metadata is attached.
type CompanyFundamentals struct {
	CompanyName    string         `json:"company_name"`
	CurrentMetrics CurrentMetrics `json:"current_metrics"`
	AnalystData    AnalystData    `json:"analyst_data"`
	QuarterlyData  []QuarterlyRow `json:"quarterly_data"`
}

// FinancialsCacheEntry is the immutable per-ticker cache payload.
type FinancialsCacheEntry struct {
	FetchedAt    time.Time
	Fundamentals *CompanyFundamentals
}

// FinancialsResponse is the /api/financials/:ticker payload.
type FinancialsResponse struct {
	Ticker         string         `json:"ticker"`
	CompanyName    string         `json:"company_name"`
	CurrentMetrics CurrentMetrics `json:"current_metrics"`
	AnalystData    AnalystData    `json:"analyst_data"`
	QuarterlyData  []QuarterlyRow `json:"quarterly_data"`
	Cached         bool           `json:"cached"`
	CacheTimestamp string         `json:"cache_timestamp,omitempty"`
	FetchTimestamp string         `json:"fetch_timestamp,omitempty"`
}

// RawFmt is Yahoo's {raw, fmt} number wrapper.
type RawFmt struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// YahooQuoteSummaryResponse mirrors the Yahoo v10 quoteSummary payload for
// the modules this service requests.
type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				Symbol   string `json:"symbol"`
				LongName string `json:"longName"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE    RawFmt `json:"trailingPE"`
				ForwardPE     RawFmt `json:"forwardPE"`
				DividendYield RawFmt `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ProfitMargins           RawFmt `json:"profitMargins"`
				RevenueGrowth           RawFmt `json:"revenueGrowth"`
				EarningsGrowth          RawFmt `json:"earningsGrowth"`
				ReturnOnEquity          RawFmt `json:"returnOnEquity"`
				ReturnOnAssets          RawFmt `json:"returnOnAssets"`
				DebtToEquity            RawFmt `json:"debtToEquity"`
				CurrentRatio            RawFmt `json:"currentRatio"`
				TargetMeanPrice         RawFmt `json:"targetMeanPrice"`
				NumberOfAnalystOpinions RawFmt `json:"numberOfAnalystOpinions"`
				RecommendationKey       string `json:"recommendationKey"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				TrailingEps RawFmt `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
			IncomeStatementHistoryQuarterly struct {
				IncomeStatementHistory []struct {
					EndDate      RawFmt `json:"endDate"`
					TotalRevenue RawFmt `json:"totalRevenue"`
					NetIncome    RawFmt `json:"netIncome"`
				} `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistoryQuarterly"`
			CashflowStatementHistoryQuarterly struct {
				CashflowStatements []struct {
					EndDate                          RawFmt `json:"endDate"`
					TotalCashFromOperatingActivities RawFmt `json:"totalCashFromOperatingActivities"`
				} `json:"cashflowStatements"`
			} `json:"cashflowStatementHistoryQuarterly"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteSummary"`
}

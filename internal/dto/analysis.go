package dto

// CalculateRequest defines the parameters for a full analysis run.
// RiskFree is an annual percentage (4.5 means 4.5%); it is converted to a
// decimal fraction before any computation.
type CalculateRequest struct {
	Ticker   string   `json:"ticker" validate:"required"`
	Market   string   `json:"market" validate:"required"`
	Start    string   `json:"start" validate:"required,datetime=2006-01-02"`
	End      string   `json:"end" validate:"omitempty,datetime=2006-01-02"`
	RiskFree float64  `json:"risk_free" validate:"gte=0"`
	Window   int      `json:"window" validate:"required,gte=2"`
	Strike   *float64 `json:"strike" validate:"omitempty,gt=0"`
	Days     int      `json:"days" validate:"required,gte=1"`
}

type CAPMSummary struct {
	Ticker               string  `json:"ticker"`
	Market               string  `json:"market"`
	Beta                 float64 `json:"beta"`
	ExpectedAnnualReturn float64 `json:"expected_annual_return"`
}

type BlackScholesCall struct {
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Volatility float64 `json:"volatility"`
	Days       int     `json:"days"`
	Price      float64 `json:"price"`
}

// BacktestSummary aggregates full-window statistics; all returns and ratios
// are decimal fractions.
type BacktestSummary struct {
	StrategyReturn   float64 `json:"strategy_return"`
	BuyHoldReturn    float64 `json:"buy_hold_return"`
	HitRate          float64 `json:"hit_rate"`
	TotalDays        int     `json:"total_days"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	SortinoRatio     float64 `json:"sortino_ratio"`
	InformationRatio float64 `json:"information_ratio"`
}

type VolatilityRegime struct {
	Regime             string  `json:"regime"`
	RealizedVolatility float64 `json:"realized_volatility"`
}

type InterestRateRegime struct {
	Regime      string  `json:"regime"`
	CurrentRate float64 `json:"current_rate"`
}

type LiquidityRegime struct {
	Regime string  `json:"regime"`
	Ratio  float64 `json:"ratio"`
}

// BacktestTableRow is one display row of the backtest table.
type BacktestTableRow struct {
	Date           string  `json:"date"`
	StockReturn    float64 `json:"stock_ret"`
	DaysInPosition int     `json:"days"`
	StrategyReturn float64 `json:"strategy_ret"`
	MarketReturn   float64 `json:"market_ret"`
}

// CalculateResponse is the full /api/calculate payload. The plot fields hold
// PNG data URIs and are omitted when rendering fails.
type CalculateResponse struct {
	CAPMSummary      CAPMSummary        `json:"capm_summary"`
	BlackScholesCall BlackScholesCall   `json:"black_scholes_call"`
	BacktestSummary  BacktestSummary    `json:"backtest_summary"`
	VolatilityRegime VolatilityRegime   `json:"volatility_regime"`
	InterestRate     InterestRateRegime `json:"interest_rate"`
	Liquidity        LiquidityRegime    `json:"liquidity"`
	EquityPlot       string             `json:"equity_plot,omitempty"`
	DrawdownPlot     string             `json:"drawdown_plot,omitempty"`
	TableData        []BacktestTableRow `json:"table_data"`
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	API          API          `mapstructure:"api"`
	Cache        Cache        `mapstructure:"cache"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	Fred         Fred         `mapstructure:"fred"`
	Financials   Financials   `mapstructure:"financials"`
	Chart        Chart        `mapstructure:"chart"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port              int `mapstructure:"port"`
	RateLimitPerSec   int `mapstructure:"rate_limit_per_sec"`
	RateLimitBurst    int `mapstructure:"rate_limit_burst"`
	RateLimitExpireIn int `mapstructure:"rate_limit_expire_in_minutes"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type YahooFinance struct {
	ChartBaseURL        string        `mapstructure:"chart_base_url"`
	QuoteSummaryBaseURL string        `mapstructure:"quote_summary_base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	PriceCacheTTL       time.Duration `mapstructure:"price_cache_ttl"`
}

type Fred struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FallbackRate float64       `mapstructure:"fallback_rate"`
}

type Financials struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Chart struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

func Load() (*Config, error) {
	// .env is optional, real deployments use environment variables directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.rate_limit_per_sec", 10)
	viper.SetDefault("api.rate_limit_burst", 30)
	viper.SetDefault("api.rate_limit_expire_in_minutes", 3)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("yahoo_finance.chart_base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.quote_summary_base_url", "https://query1.finance.yahoo.com/v10/finance/quoteSummary")
	viper.SetDefault("yahoo_finance.timeout", 30*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 60)
	viper.SetDefault("yahoo_finance.price_cache_ttl", 5*time.Minute)
	viper.SetDefault("fred.base_url", "https://api.stlouisfed.org/fred")
	viper.SetDefault("fred.timeout", 30*time.Second)
	viper.SetDefault("fred.fallback_rate", 0.04)
	viper.SetDefault("financials.cache_ttl", time.Hour)
	viper.SetDefault("chart.width", 1000)
	viper.SetDefault("chart.height", 500)
}

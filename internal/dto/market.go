package dto

import "time"

// PricePoint is one trading day of an adjusted close series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered daily close series for one symbol.
// Dates are strictly increasing; missing trading days are simply absent.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

func (s *PriceSeries) Len() int {
	return len(s.Points)
}

func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		dates[i] = p.Date
	}
	return dates
}

func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// AlignSeries intersects two price series on their common dates, preserving
// chronological order. The intersection determines the usable analysis window.
func AlignSeries(a, b *PriceSeries) (*PriceSeries, *PriceSeries) {
	byDate := make(map[time.Time]float64, len(b.Points))
	for _, p := range b.Points {
		byDate[p.Date] = p.Close
	}

	alignedA := &PriceSeries{Symbol: a.Symbol}
	alignedB := &PriceSeries{Symbol: b.Symbol}
	for _, p := range a.Points {
		if close, ok := byDate[p.Date]; ok {
			alignedA.Points = append(alignedA.Points, p)
			alignedB.Points = append(alignedB.Points, PricePoint{Date: p.Date, Close: close})
		}
	}
	return alignedA, alignedB
}

// YieldPoint is one observation of a macro rate series, as a decimal fraction.
type YieldPoint struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// YieldSeries is an ordered macro rate series (e.g. FRED DGS10).
type YieldSeries struct {
	SeriesID string       `json:"series_id"`
	Points   []YieldPoint `json:"points"`
}

func (s *YieldSeries) Rates() []float64 {
	rates := make([]float64, len(s.Points))
	for i, p := range s.Points {
		rates[i] = p.Rate
	}
	return rates
}

// YahooChartResponse mirrors the Yahoo Finance v8 chart API payload.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// FredObservationsResponse mirrors the FRED series/observations payload.
// Values are percentages as strings; "." marks a missing observation.
type FredObservationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

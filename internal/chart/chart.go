// Package chart renders backtest series to PNG data URIs for the frontend.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"quantlab/config"
	"quantlab/pkg/logger"
)

type Renderer struct {
	width  int
	height int
	log    *logger.Logger
}

func NewRenderer(cfg config.Chart, log *logger.Logger) *Renderer {
	return &Renderer{
		width:  cfg.Width,
		height: cfg.Height,
		log:    log,
	}
}

// EquityCurve renders the strategy vs buy-and-hold growth-of-1 curves.
func (r *Renderer) EquityCurve(dates []time.Time, strategy, buyHold []float64) (string, error) {
	if len(dates) < 2 || len(strategy) != len(dates) || len(buyHold) != len(dates) {
		return "", fmt.Errorf("equity chart needs at least 2 aligned points, got %d", len(dates))
	}

	graph := chart.Chart{
		Title:  "Equity Curves: Strategy vs Buy & Hold",
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Growth of $1",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Strategy",
				XValues: dates,
				YValues: strategy,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("667eea"),
					StrokeWidth: 2.5,
				},
			},
			chart.TimeSeries{
				Name:    "Buy & Hold",
				XValues: dates,
				YValues: buyHold,
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("764ba2"),
					StrokeWidth:     2.0,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return encodePNG(&graph)
}

// Drawdown renders the running peak-to-trough decline of the strategy
// equity curve as a filled percentage series.
func (r *Renderer) Drawdown(dates []time.Time, drawdown []float64) (string, error) {
	if len(dates) < 2 || len(drawdown) != len(dates) {
		return "", fmt.Errorf("drawdown chart needs at least 2 aligned points, got %d", len(dates))
	}

	percent := make([]float64, len(drawdown))
	for i, d := range drawdown {
		percent[i] = d * 100
	}

	graph := chart.Chart{
		Title:  "Strategy Drawdown",
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Drawdown (%)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Drawdown",
				XValues: dates,
				YValues: percent,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("8b0000"),
					StrokeWidth: 2.0,
					FillColor:   drawing.Color{R: 231, G: 76, B: 60, A: 80},
				},
			},
		},
	}

	return encodePNG(&graph)
}

func encodePNG(graph *chart.Chart) (string, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

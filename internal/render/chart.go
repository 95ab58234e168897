package render

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/fogleman/gg"
	"github.com/terraincognita07/ovira/internal/models"
)

const (
	chartWidth   = 1000
	chartHeight  = 420
	chartPadding = 48.0
	chartMaxY    = 12.0
)

var ErrNotEnoughPoints = errors.New("trend chart needs at least two logs")

type rgb struct{ r, g, b float64 }

var (
	painColor   = rgb{239, 68, 68}
	energyColor = rgb{20, 184, 166}
	sleepColor  = rgb{139, 92, 246}
	gridColor   = rgb{226, 232, 240}
	labelColor  = rgb{100, 116, 139}
)

type trendSeries struct {
	label  string
	color  rgb
	values []float64
}

// TrendChart draws pain, energy and sleep for logs in chronological order and returns a PNG.
func TrendChart(logs []models.SymptomLog) ([]byte, error) {
	if len(logs) < 2 {
		return nil, ErrNotEnoughPoints
	}

	ordered := make([]models.SymptomLog, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	series := []trendSeries{
		{label: "Pain", color: painColor},
		{label: "Energy", color: energyColor},
		{label: "Sleep (h)", color: sleepColor},
	}
	for _, entry := range ordered {
		series[0].values = append(series[0].values, float64(entry.PainScale))
		series[1].values = append(series[1].values, float64(entry.EnergyLevel))
		series[2].values = append(series[2].values, min(entry.SleepHours, chartMaxY))
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotLeft, plotRight := chartPadding, float64(chartWidth)-chartPadding/2
	plotTop, plotBottom := chartPadding/2, float64(chartHeight)-chartPadding
	xAt := func(index int) float64 {
		return plotLeft + float64(index)*(plotRight-plotLeft)/float64(len(ordered)-1)
	}
	yAt := func(value float64) float64 {
		return plotBottom - value/chartMaxY*(plotBottom-plotTop)
	}

	dc.SetLineWidth(1)
	for tick := 0.0; tick <= chartMaxY; tick += 4 {
		setColor(dc, gridColor)
		dc.DrawLine(plotLeft, yAt(tick), plotRight, yAt(tick))
		dc.Stroke()
		setColor(dc, labelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", tick), plotLeft-8, yAt(tick), 1, 0.5)
	}
	setColor(dc, labelColor)
	dc.DrawStringAnchored(ordered[0].Date.Format("Jan 2"), plotLeft, plotBottom+18, 0, 0.5)
	dc.DrawStringAnchored(ordered[len(ordered)-1].Date.Format("Jan 2"), plotRight, plotBottom+18, 1, 0.5)

	for index, line := range series {
		setColor(dc, line.color)
		dc.SetLineWidth(3)
		for point, value := range line.values {
			if point == 0 {
				dc.MoveTo(xAt(point), yAt(value))
				continue
			}
			dc.LineTo(xAt(point), yAt(value))
		}
		dc.Stroke()
		for point, value := range line.values {
			dc.DrawCircle(xAt(point), yAt(value), 4)
			dc.Fill()
		}

		legendX := plotLeft + float64(index)*140
		dc.DrawRectangle(legendX, float64(chartHeight)-18, 12, 12)
		dc.Fill()
		setColor(dc, labelColor)
		dc.DrawStringAnchored(line.label, legendX+18, float64(chartHeight)-12, 0, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, color rgb) {
	dc.SetRGB255(int(color.r), int(color.g), int(color.b))
}

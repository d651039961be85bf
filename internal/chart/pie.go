// Package chart renders the spending-distribution pie chart.
package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"thuchi/internal/core"
)

// palette is applied to slices in order, wrapping past nine categories.
var palette = []drawing.Color{
	{R: 0xFF, G: 0x99, B: 0x99, A: 0xFF},
	{R: 0x66, G: 0xB2, B: 0xFF, A: 0xFF},
	{R: 0x99, G: 0xFF, B: 0x99, A: 0xFF},
	{R: 0xFF, G: 0xCC, B: 0x99, A: 0xFF},
	{R: 0xFF, G: 0x99, B: 0xCC, A: 0xFF},
	{R: 0x99, G: 0xFF, B: 0xCC, A: 0xFF},
	{R: 0xFF, G: 0xB3, B: 0x66, A: 0xFF},
	{R: 0x99, G: 0xCC, B: 0xE6, A: 0xFF},
	{R: 0xFF, G: 0xB3, B: 0xB3, A: 0xFF},
}

// Renderer draws pie charts of per-category spending.
type Renderer struct {
	width  int
	height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: 1000, height: 800}
}

// RenderPie renders the categories holding at least the chart threshold of
// the month's spend as a PNG pie chart. Returns nil bytes when no category
// is big enough to draw.
func (r *Renderer) RenderPie(totals []core.CategoryTotal) ([]byte, error) {
	slices := core.ChartSlices(totals)
	if len(slices) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		values = append(values, chart.Value{
			Value: float64(-s.Total),
			Label: fmt.Sprintf("%s (%.1f%%)", s.DanhMuc, s.Percent),
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		})
	}

	pie := chart.PieChart{
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

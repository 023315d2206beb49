package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// DrawCategoryBar renders a labeled bar chart to PNG, used for dashboard
// snapshots sent outside the browser.
func DrawCategoryBar(labels []string, values []float64, nameGraph string) ([]byte, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("labels and values length mismatch: %d vs %d", len(labels), len(values))
	}
	data := NewCategoryBarData(labels, values, nameGraph)
	return drawPlotBar(data)
}

func drawPlotBar(data categoryBarData) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: data.findMaxValue(),
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}

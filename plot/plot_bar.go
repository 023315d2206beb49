package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type categoryBarData struct {
	labels    []string
	values    []float64
	nameGraph string
}

func NewCategoryBarData(labels []string, values []float64, nameGraph string) categoryBarData {
	return categoryBarData{
		labels:    labels,
		values:    values,
		nameGraph: nameGraph,
	}
}

func (d categoryBarData) GetNameGraph() string {
	return d.nameGraph
}

func (d categoryBarData) lenLabels() int {
	return len(d.labels)
}

func (d categoryBarData) findMaxValue() float64 {
	if len(d.values) == 0 {
		return 0
	}
	max := d.values[0]
	for _, v := range d.values {
		if v > max {
			max = v
		}
	}
	return max
}

func (d categoryBarData) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.values) == 0 || d.lenLabels() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenLabels() < 2 {
		x = 10.0
	} else if d.lenLabels() < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenLabels()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d categoryBarData) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i := 0; i < len(d.labels); i++ {
		bars = append(bars, chart.Value{
			Value: d.values[i],
			Label: d.labels[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}

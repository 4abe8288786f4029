// Package chart renders numeric series into SVG-ready geometry for the
// dashboard and patient-detail templates. Everything here is pure: no state
// beyond the input slice.
package chart

import (
	"fmt"
	"strings"
)

// Bar is one column of a bar chart.
type Bar struct {
	Label string
	Value float64
	// HeightPct is the bar height as a percentage of the tallest bar.
	HeightPct float64
}

// Bars maps values onto percentage heights. The divisor is floored at 1 so
// an all-zero series renders flat instead of dividing by zero. Label and
// value slices are zipped; extra labels are ignored.
func Bars(values []float64, labels []string) []Bar {
	max := 1.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	bars := make([]Bar, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		bars[i] = Bar{
			Label:     label,
			Value:     v,
			HeightPct: v / max * 100,
		}
	}
	return bars
}

// Line holds polyline geometry on a 0..100 viewbox.
type Line struct {
	// Points is the SVG polyline points attribute, "x1,y1 x2,y2 ...".
	Points string
	// Area closes the polyline down to the baseline for the fill polygon.
	Area string
}

// Polyline maps a series to viewbox coordinates, first point at x=0, last
// at x=100, values scaled between the series min and max. Series shorter
// than two points have no trend to draw and return an empty line; a flat
// series draws at mid-height.
func Polyline(values []float64) Line {
	if len(values) < 2 {
		return Line{}
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min

	points := make([]string, len(values))
	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * 100
		y := 50.0
		if span > 0 {
			y = 100 - (v-min)/span*100
		}
		points[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}

	joined := strings.Join(points, " ")
	return Line{
		Points: joined,
		Area:   "0,100 " + joined + " 100,100",
	}
}

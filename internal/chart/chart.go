// Package chart renders simple hydrograph PNGs from time series, for
// quick visual inspection of model inputs without a GUI.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lox/statemod/internal/ts"
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorAxis       = color.RGBA{60, 60, 60, 255}
	colorGrid       = color.RGBA{225, 225, 225, 255}
	colorLine       = color.RGBA{31, 119, 180, 255}
	colorText       = color.RGBA{30, 30, 30, 255}
)

const (
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 40
	marginBottom = 40
)

// RenderPNG draws one series as a line chart. Missing values break the
// line rather than plotting as sentinel spikes.
func RenderPNG(w io.Writer, t *ts.TimeSeries, width, height int) error {
	if !t.HasData() {
		return fmt.Errorf("series %s has no data to plot", t.ID)
	}
	if width <= marginLeft+marginRight || height <= marginTop+marginBottom {
		return fmt.Errorf("chart size %dx%d too small", width, height)
	}

	var values []float64
	for d := t.Start; !d.After(t.End); d = step(d, t.Interval) {
		values = append(values, t.Value(d))
	}

	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if ts.IsMissing(v) {
			continue
		}
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
	}
	if vmin > vmax {
		return fmt.Errorf("series %s has only missing values", t.ID)
	}
	if vmin == vmax {
		vmax = vmin + 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)

	plotW := width - marginLeft - marginRight
	plotH := height - marginTop - marginBottom

	toX := func(i int) int {
		if len(values) == 1 {
			return marginLeft
		}
		return marginLeft + i*plotW/(len(values)-1)
	}
	toY := func(v float64) int {
		return marginTop + plotH - int((v-vmin)/(vmax-vmin)*float64(plotH))
	}

	// Horizontal gridlines at quarters.
	for i := 0; i <= 4; i++ {
		y := marginTop + i*plotH/4
		hline(img, marginLeft, marginLeft+plotW, y, colorGrid)
		label := fmt.Sprintf("%.0f", vmax-(vmax-vmin)*float64(i)/4)
		drawText(img, 6, y+4, label)
	}

	hline(img, marginLeft, marginLeft+plotW, marginTop+plotH, colorAxis)
	vline(img, marginLeft, marginTop, marginTop+plotH, colorAxis)

	prevOK := false
	var px, py int
	for i, v := range values {
		if ts.IsMissing(v) {
			prevOK = false
			continue
		}
		x, y := toX(i), toY(v)
		if prevOK {
			line(img, px, py, x, y, colorLine)
		}
		px, py = x, y
		prevOK = true
	}

	title := fmt.Sprintf("%s %s (%s)", t.ID, t.DataType, t.Units)
	drawText(img, marginLeft, 20, title)
	drawText(img, marginLeft, height-12, t.Start.String())
	end := t.End.String()
	drawText(img, marginLeft+plotW-7*len(end), height-12, end)

	return png.Encode(w, img)
}

func step(d ts.Date, interval ts.Interval) ts.Date {
	if interval == ts.IntervalDay {
		return d.AddDays(1)
	}
	return d.AddMonths(1)
}

func hline(img *image.RGBA, x1, x2, y int, c color.Color) {
	for x := x1; x <= x2; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y1, y2 int, c color.Color) {
	for y := y1; y <= y2; y++ {
		img.Set(x, y, c)
	}
}

// line draws with integer Bresenham stepping.
func line(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func drawText(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{colorText},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

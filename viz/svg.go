// Package viz renders a SolutionContext as a debug SVG: one colored
// polyline per route connecting its stops in visit order, with a small
// legend naming each actor. Not part of the optimizer itself - a way to
// eyeball what a run produced without writing a custom GIS tool.
package viz

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/vrplab/engine/model"
)

// Options configures the rendered canvas.
type Options struct {
	Width, Height int
	Margin        int
	StopRadius    int
	Title         string
	ShowLegend    bool
}

// DefaultOptions returns sensible defaults for a quick look at a solution.
func DefaultOptions() Options {
	return Options{
		Width:      1000,
		Height:     800,
		Margin:     50,
		StopRadius: 4,
		Title:      "Solution",
		ShowLegend: true,
	}
}

var palette = []string{
	"#4299e1", "#48bb78", "#f56565", "#ed8936", "#9f7aea",
	"#38b2ac", "#ecc94b", "#f687b3", "#718096", "#667eea",
}

// Render draws sol's routes onto an SVG canvas and returns the document.
func Render(sol *model.SolutionContext, opts Options) []byte {
	if opts.Width <= 0 {
		opts.Width = 1000
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	if opts.StopRadius <= 0 {
		opts.StopRadius = 4
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a202c")

	project := newProjection(sol, opts)

	for i, rc := range sol.Routes {
		color := palette[i%len(palette)]
		drawRoute(canvas, rc, project, color, opts)
	}

	if opts.ShowLegend {
		drawLegend(canvas, sol, opts)
	}
	if opts.Title != "" {
		canvas.Text(opts.Width/2, 24, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes()
}

// projection maps a Location's Lat/Lon onto canvas pixel coordinates,
// scaled to fit every route's stops inside the margin.
type projection struct {
	minLat, maxLat float64
	minLon, maxLon float64
	opts           Options
}

func newProjection(sol *model.SolutionContext, opts Options) projection {
	p := projection{opts: opts}
	first := true
	for _, rc := range sol.Routes {
		for _, act := range rc.Route.Activities {
			loc := act.Location
			if first {
				p.minLat, p.maxLat = loc.Lat, loc.Lat
				p.minLon, p.maxLon = loc.Lon, loc.Lon
				first = false
				continue
			}
			p.minLat = min(p.minLat, loc.Lat)
			p.maxLat = max(p.maxLat, loc.Lat)
			p.minLon = min(p.minLon, loc.Lon)
			p.maxLon = max(p.maxLon, loc.Lon)
		}
	}
	return p
}

func (p projection) point(loc model.Location) (int, int) {
	w := float64(p.opts.Width - 2*p.opts.Margin)
	h := float64(p.opts.Height - 2*p.opts.Margin)

	lonSpan := p.maxLon - p.minLon
	latSpan := p.maxLat - p.minLat
	var x, y float64
	if lonSpan == 0 {
		x = w / 2
	} else {
		x = (loc.Lon - p.minLon) / lonSpan * w
	}
	if latSpan == 0 {
		y = h / 2
	} else {
		// Lat increases northward; SVG y increases downward.
		y = h - (loc.Lat-p.minLat)/latSpan*h
	}
	return int(x) + p.opts.Margin, int(y) + p.opts.Margin
}

func drawRoute(canvas *svg.SVG, rc *model.RouteContext, p projection, color string, opts Options) {
	acts := rc.Route.Activities
	xs := make([]int, len(acts))
	ys := make([]int, len(acts))
	for i, act := range acts {
		xs[i], ys[i] = p.point(act.Location)
	}

	for i := 1; i < len(acts); i++ {
		canvas.Line(xs[i-1], ys[i-1], xs[i], ys[i],
			fmt.Sprintf("stroke:%s;stroke-width:2;opacity:0.85", color))
	}

	for i, act := range acts {
		style := fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", color)
		radius := opts.StopRadius
		if act.Type == model.Departure || act.Type == model.Arrival {
			radius += 2
			style = fmt.Sprintf("fill:%s;stroke:#e2e8f0;stroke-width:2", color)
		}
		canvas.Circle(xs[i], ys[i], radius, style)
	}
}

func drawLegend(canvas *svg.SVG, sol *model.SolutionContext, opts Options) {
	x := opts.Width - opts.Margin - 160
	y := opts.Margin

	canvas.Rect(x-10, y-15, 170, 20+18*len(sol.Routes),
		"fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.9;rx:5")
	canvas.Text(x, y, "Routes", "font-size:13px;font-weight:bold;fill:#e2e8f0")
	y += 18

	for i, rc := range sol.Routes {
		color := palette[i%len(palette)]
		canvas.Circle(x+6, y, 6, fmt.Sprintf("fill:%s", color))
		label := rc.Route.Actor.ID
		canvas.Text(x+20, y+4, label, "font-size:11px;fill:#cbd5e0")
		y += 18
	}
}

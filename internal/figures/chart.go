package figures

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"
)

type seriesStyle int

const (
	styleLine seriesStyle = iota
	styleDashed
	styleMarkers
	styleStar
	styleBars
)

// chartSeries is one trace on a chart.
type chartSeries struct {
	Name  string
	X, Y  []float64
	Style seriesStyle
	Color string
	// BarWidth is the bar width in data units; only used by styleBars.
	BarWidth float64
}

// chart is a minimal 2D chart rendered to inline SVG.
type chart struct {
	Title      string
	XLabel     string
	YLabel     string
	XMin, XMax float64
	YMin, YMax float64
	Series     []chartSeries
	Annotation []string
	Note       template.HTML
}

const (
	chartWidth   = 720
	chartHeight  = 480
	marginLeft   = 70
	marginRight  = 30
	marginTop    = 40
	marginBottom = 60
	tickCount    = 5
)

type tickView struct {
	Pos   float64
	Label string
}

type shapeView struct {
	Kind    string // path, circle, polygon, rect
	D       string
	CX      float64
	CY      float64
	X       float64
	Y       float64
	W       float64
	H       float64
	Color   string
	Dash    bool
	Opacity float64
}

type legendView struct {
	Name  string
	Color string
}

type chartView struct {
	Title       string
	XLabel      string
	YLabel      string
	Width       int
	Height      int
	Left        float64
	Right       float64
	Top         float64
	Bottom      float64
	XTicks      []tickView
	YTicks      []tickView
	Shapes      []shapeView
	Legend      []legendView
	Annotation  []string
	Note        template.HTML
	XLabelX     float64
	XLabelY     float64
	YLabelX     float64
	YLabelY     float64
	AnnotationX float64
	AnnotationY float64
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"add": func(a, b float64) float64 { return a + b },
	"mul": func(i int, k float64) float64 { return float64(i) * k },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem; color: #222; }
.legend span { display: inline-block; margin-right: 1.5rem; }
.legend i { display: inline-block; width: 14px; height: 4px; margin-right: 6px; vertical-align: middle; }
.note { max-width: 720px; margin-top: 1rem; }
svg text { font-size: 12px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<rect x="{{.Left}}" y="{{.Top}}" width="{{.PlotWidth}}" height="{{.PlotHeight}}" fill="white" stroke="#ccc"/>
{{- range .XTicks}}
<line x1="{{.Pos}}" y1="{{$.Top}}" x2="{{.Pos}}" y2="{{$.Bottom}}" stroke="#eee"/>
<text x="{{.Pos}}" y="{{$.Bottom | add 18}}" text-anchor="middle">{{.Label}}</text>
{{- end}}
{{- range .YTicks}}
<line x1="{{$.Left}}" y1="{{.Pos}}" x2="{{$.Right}}" y2="{{.Pos}}" stroke="#eee"/>
<text x="{{$.Left | add -8}}" y="{{.Pos | add 4}}" text-anchor="end">{{.Label}}</text>
{{- end}}
{{- range .Shapes}}
{{- if eq .Kind "path"}}
<path d="{{.D}}" fill="none" stroke="{{.Color}}" stroke-width="{{if .Dash}}2{{else}}3{{end}}"{{if .Dash}} stroke-dasharray="8 6"{{end}}/>
{{- else if eq .Kind "circle"}}
<circle cx="{{.CX}}" cy="{{.CY}}" r="5" fill="{{.Color}}"/>
{{- else if eq .Kind "polygon"}}
<polygon points="{{.D}}" fill="{{.Color}}" stroke="#333" stroke-width="1"/>
{{- else if eq .Kind "rect"}}
<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{.Color}}" fill-opacity="{{.Opacity}}"/>
{{- end}}
{{- end}}
{{- range $i, $line := .Annotation}}
<text x="{{$.AnnotationX}}" y="{{$.AnnotationY | add (mul $i 16)}}">{{$line}}</text>
{{- end}}
<text x="{{.XLabelX}}" y="{{.XLabelY}}" text-anchor="middle">{{.XLabel}}</text>
<text x="{{.YLabelX}}" y="{{.YLabelY}}" text-anchor="middle" transform="rotate(-90 {{.YLabelX}} {{.YLabelY}})">{{.YLabel}}</text>
</svg>
<div class="legend">
{{- range .Legend}}
<span><i style="background: {{.Color}}"></i>{{.Name}}</span>
{{- end}}
</div>
{{- if .Note}}
<div class="note">
{{.Note}}
</div>
{{- end}}
</body>
</html>
`))

// PlotWidth is the width of the plotting area in pixels.
func (v chartView) PlotWidth() float64 { return v.Right - v.Left }

// PlotHeight is the height of the plotting area in pixels.
func (v chartView) PlotHeight() float64 { return v.Bottom - v.Top }

func (c *chart) render(w io.Writer) error {
	if c.XMax <= c.XMin || c.YMax <= c.YMin {
		return fmt.Errorf("chart %q has an empty axis range", c.Title)
	}

	v := chartView{
		Title:      c.Title,
		XLabel:     c.XLabel,
		YLabel:     c.YLabel,
		Width:      chartWidth,
		Height:     chartHeight,
		Left:       marginLeft,
		Right:      chartWidth - marginRight,
		Top:        marginTop,
		Bottom:     chartHeight - marginBottom,
		Annotation: c.Annotation,
		Note:       c.Note,
	}
	v.XLabelX = (v.Left + v.Right) / 2
	v.XLabelY = float64(chartHeight) - 15
	v.YLabelX = 20
	v.YLabelY = (v.Top + v.Bottom) / 2
	v.AnnotationX = v.Left + 0.55*v.PlotWidth()
	v.AnnotationY = v.Top + 0.7*v.PlotHeight()

	px := func(x float64) float64 { return round1(v.Left + (x-c.XMin)/(c.XMax-c.XMin)*v.PlotWidth()) }
	py := func(y float64) float64 { return round1(v.Bottom - (y-c.YMin)/(c.YMax-c.YMin)*v.PlotHeight()) }

	for i := 0; i <= tickCount; i++ {
		fx := c.XMin + float64(i)*(c.XMax-c.XMin)/tickCount
		fy := c.YMin + float64(i)*(c.YMax-c.YMin)/tickCount
		v.XTicks = append(v.XTicks, tickView{Pos: px(fx), Label: tickLabel(fx)})
		v.YTicks = append(v.YTicks, tickView{Pos: py(fy), Label: tickLabel(fy)})
	}

	for _, s := range c.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q has %d x values and %d y values", s.Name, len(s.X), len(s.Y))
		}
		v.Legend = append(v.Legend, legendView{Name: s.Name, Color: s.Color})

		switch s.Style {
		case styleLine, styleDashed:
			var d strings.Builder
			for i := range s.X {
				cmd := "L"
				if i == 0 {
					cmd = "M"
				}
				fmt.Fprintf(&d, "%s%g,%g ", cmd, px(s.X[i]), py(s.Y[i]))
			}
			v.Shapes = append(v.Shapes, shapeView{
				Kind: "path", D: strings.TrimSpace(d.String()), Color: s.Color, Dash: s.Style == styleDashed,
			})
		case styleMarkers:
			for i := range s.X {
				v.Shapes = append(v.Shapes, shapeView{Kind: "circle", CX: px(s.X[i]), CY: py(s.Y[i]), Color: s.Color})
			}
		case styleStar:
			for i := range s.X {
				v.Shapes = append(v.Shapes, shapeView{Kind: "polygon", D: starPoints(px(s.X[i]), py(s.Y[i]), 11), Color: s.Color})
			}
		case styleBars:
			for i := range s.X {
				x0, x1 := px(s.X[i]-s.BarWidth/2), px(s.X[i]+s.BarWidth/2)
				y0, y1 := py(s.Y[i]), py(math.Max(c.YMin, 0))
				v.Shapes = append(v.Shapes, shapeView{
					Kind: "rect", X: x0, Y: y0, W: round1(x1 - x0), H: round1(y1 - y0), Color: s.Color, Opacity: 0.55,
				})
			}
		}
	}

	return pageTemplate.Execute(w, v)
}

// starPoints returns the polygon points of a five-pointed star.
func starPoints(cx, cy, r float64) string {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		radius := r
		if i%2 == 1 {
			radius = r * 0.45
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		fmt.Fprintf(&b, "%g,%g ", round1(cx+radius*math.Cos(angle)), round1(cy+radius*math.Sin(angle)))
	}
	return strings.TrimSpace(b.String())
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(round1(v*100)/100, 'g', 4, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

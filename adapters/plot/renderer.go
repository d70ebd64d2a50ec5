package plot

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/marshallyale/go-outdoors-learning/domain/survey"
	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

var (
	interestColor   = mustHex("#989898")
	knowledgeColors = []color.Color{mustHex("#fd9c5a"), mustHex("#ffceaa"), mustHex("#a0cbeb"), mustHex("#4099d7")}
)

const (
	titleHeight = 28 // points
	legendWidth = 110
	barWidth    = 36
)

// Options controls figure geometry and where files go
type Options struct {
	Dir    string
	DPI    int
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions writes 9x4.8 inch figures into plots/
func DefaultOptions() Options {
	return Options{Dir: "plots", DPI: 300, Width: 9 * vg.Inch, Height: 4.8 * vg.Inch}
}

// Renderer draws one two-panel figure per topic
type Renderer struct {
	options Options
}

// NewRenderer creates a renderer
func NewRenderer(options Options) *Renderer {
	return &Renderer{options: options}
}

// OutputPath is where a topic's figure is written. The topic name is used verbatim.
func (r *Renderer) OutputPath(topic string, format survey.ChartFormat) string {
	return filepath.Join(r.options.Dir, topic+"."+string(format))
}

// Render draws the interest and knowledge panels for one topic and writes the file.
// The canvas and file live only for the duration of the call.
func (r *Renderer) Render(format survey.ChartFormat, knowledge survey.KnowledgeDistribution, interest survey.InterestDistribution) (string, error) {
	path := r.OutputPath(knowledge.Topic, format)

	interestPlot, err := newInterestPlot(interest)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build interest chart for %s", knowledge.Topic)
	}
	knowledgePlot, legend, err := newKnowledgePlot(knowledge)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build knowledge chart for %s", knowledge.Topic)
	}

	canvas, err := r.newCanvas(format)
	if err != nil {
		return "", err
	}
	dc := draw.New(canvas)
	drawTitle(dc, knowledgePlot, knowledge.Topic)

	body := draw.Crop(dc, 0, -vg.Points(legendWidth), 0, -vg.Points(titleHeight))
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
	}
	panels := gplot.Align([][]*gplot.Plot{{interestPlot, knowledgePlot}}, tiles, body)
	interestPlot.Draw(panels[0][0])
	knowledgePlot.Draw(panels[0][1])

	legendArea := draw.Crop(dc, dc.Max.X-dc.Min.X-vg.Points(legendWidth), 0, 0, -vg.Points(titleHeight))
	drawLegend(legendArea, legend)

	if err := writeCanvas(path, canvas); err != nil {
		return "", err
	}
	log.Printf("[Renderer] Wrote %s", path)
	return path, nil
}

func (r *Renderer) newCanvas(format survey.ChartFormat) (vg.CanvasWriterTo, error) {
	switch format {
	case survey.FormatPDF:
		return vgpdf.New(r.options.Width, r.options.Height), nil
	case survey.FormatPNG:
		img := vgimg.NewWith(vgimg.UseWH(r.options.Width, r.options.Height), vgimg.UseDPI(r.options.DPI))
		return vgimg.PngCanvas{Canvas: img}, nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported chart format %q", format))
	}
}

// writeCanvas creates path and writes the canvas to it; a missing directory is an error
func writeCanvas(path string, canvas vg.CanvasWriterTo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed to close %s", path)
		}
	}()

	if _, err := canvas.WriteTo(f); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func newInterestPlot(interest survey.InterestDistribution) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = "Interest"
	p.Y.Label.Text = "Votes"
	p.Y.Min = 0
	p.Y.Tick.Marker = percentTicks{}

	bars, err := plotter.NewBarChart(plottable(interest.Topic, interest.Percent), vg.Points(barWidth))
	if err != nil {
		return nil, err
	}
	bars.Color = interestColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(interest.Labels()...)
	return p, nil
}

// newKnowledgePlot stacks one bar segment per level on the Before and After bars. The
// returned legend lists the highest level first.
func newKnowledgePlot(knowledge survey.KnowledgeDistribution) (*gplot.Plot, gplot.Legend, error) {
	p := gplot.New()
	p.Title.Text = "Knowledge Gains"
	p.Y.Min = 0
	p.Y.Tick.Marker = percentTicks{}

	legend := gplot.NewLegend()
	legend.Top = false
	legend.Left = true

	segments, err := newKnowledgeSegments(knowledge)
	if err != nil {
		return nil, legend, err
	}
	for _, bars := range segments {
		p.Add(bars)
	}
	p.NominalX(survey.RowNames...)

	last := len(segments) - 1
	for i, label := range legendLabels(knowledge) {
		legend.Add(label, segments[last-i])
	}
	return p, legend, nil
}

// newKnowledgeSegments returns the stacked segments, lowest level first
func newKnowledgeSegments(knowledge survey.KnowledgeDistribution) ([]*plotter.BarChart, error) {
	var below *plotter.BarChart
	segments := make([]*plotter.BarChart, 0, len(knowledge.Levels))
	for i := range knowledge.Levels {
		values := plottable(knowledge.Topic, []float64{knowledge.Before[i], knowledge.After[i]})
		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return nil, err
		}
		bars.Color = knowledgeColor(i)
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		segments = append(segments, bars)
	}
	return segments, nil
}

// knowledgeColor cycles through the palette for scales with more than four levels
func knowledgeColor(level int) color.Color {
	return knowledgeColors[level%len(knowledgeColors)]
}

// legendLabels lists the level labels highest level first, matching the stack read top down
func legendLabels(knowledge survey.KnowledgeDistribution) []string {
	labels := knowledge.Labels()
	slices.Reverse(labels)
	return labels
}

func drawTitle(dc draw.Canvas, reference *gplot.Plot, topic string) {
	style := reference.Title.TextStyle
	style.Font.Size = vg.Points(14)
	style.XAlign = draw.XCenter
	style.YAlign = draw.YTop
	dc.FillText(style, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(4)}, topic)
}

// drawLegend places the legend at the lower left of area with its title above it
func drawLegend(area draw.Canvas, legend gplot.Legend) {
	legend.YOffs = vg.Millimeter * 12
	legend.Draw(area)

	box := legend.Rectangle(area)
	style := legend.TextStyle
	style.XAlign = draw.XLeft
	style.YAlign = draw.YBottom
	area.FillText(style, vg.Point{X: box.Min.X, Y: box.Max.Y + vg.Points(4)}, "Knowledge Level")
}

// plottable replaces undefined percentages (zero-vote rows) with empty bars
func plottable(topic string, values []float64) plotter.Values {
	out := make(plotter.Values, len(values))
	undefined := 0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			undefined++
			continue
		}
		out[i] = v
	}
	if undefined > 0 {
		log.Printf("[Renderer] %s: %d undefined percentages drawn as empty bars", topic, undefined)
	}
	return out
}

// percentTicks labels the default ticks as percentages
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []gplot.Tick {
	ticks := gplot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = strconv.FormatFloat(ticks[i].Value, 'f', -1, 64) + "%"
		}
	}
	return ticks
}

func mustHex(hex string) color.RGBA {
	var c color.RGBA
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		panic(fmt.Sprintf("bad color %s: %v", hex, err))
	}
	c.A = 0xff
	return c
}

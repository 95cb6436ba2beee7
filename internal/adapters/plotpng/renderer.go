// Package plotpng renders the markers currently on display to a PNG file.
package plotpng

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bft-labs/curvemark/internal/domain"
)

// Default image size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 8 * vg.Inch
)

// framePad is added around the marker bounds, in frame units.
const framePad = 1.0

// Renderer implements ports.MarkerPublisher by redrawing a PNG on every
// publish. Spheres become scatter glyphs and labels become plot text.
type Renderer struct {
	path   string
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a renderer writing to path.
func NewRenderer(path string) *Renderer {
	return &Renderer{path: path, width: DefaultWidth, height: DefaultHeight}
}

// Name identifies the publisher in logs and metrics.
func (r *Renderer) Name() string {
	return "plot"
}

// Publish redraws the image. A clear directive produces an empty frame.
func (r *Renderer) Publish(ctx context.Context, b domain.MarkerBatch) error {
	p, err := r.build(b)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *Renderer) build(b domain.MarkerBatch) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	if b.IsClear() {
		p.Title.Text = "no flagged points"
		return p, nil
	}

	spheres := b.Namespace(domain.NamespaceSphere)
	labels := b.Namespace(domain.NamespaceLabel)
	if len(spheres) == 0 {
		p.Title.Text = "no flagged points"
		return p, nil
	}
	p.Title.Text = fmt.Sprintf("%d flagged points (%s)", len(spheres), spheres[0].Header.FrameID)

	pts := make(plotter.XYs, len(spheres))
	bound := make(orb.MultiPoint, 0, len(spheres)+len(labels))
	for i, m := range spheres {
		pts[i] = plotter.XY{X: m.Pose.Position.X, Y: m.Pose.Position.Y}
		bound = append(bound, orb.Point{m.Pose.Position.X, m.Pose.Position.Y})
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Color = rgba(spheres[0].Color)
	sc.GlyphStyle.Radius = vg.Points(5)
	p.Add(sc)

	if len(labels) > 0 {
		lxy := plotter.XYLabels{
			XYs:    make(plotter.XYs, len(labels)),
			Labels: make([]string, len(labels)),
		}
		for i, m := range labels {
			lxy.XYs[i] = plotter.XY{X: m.Pose.Position.X, Y: m.Pose.Position.Y}
			lxy.Labels[i] = m.Text
			bound = append(bound, orb.Point{m.Pose.Position.X, m.Pose.Position.Y})
		}
		lb, err := plotter.NewLabels(lxy)
		if err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
		p.Add(lb)
	}

	frame := bound.Bound().Pad(framePad)
	p.X.Min, p.X.Max = frame.Min.X(), frame.Max.X()
	p.Y.Min, p.Y.Max = frame.Min.Y(), frame.Max.Y()
	return p, nil
}

func rgba(c domain.Color) color.NRGBA {
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Package snapshot implements a headless renderer backend that writes each
// frame as a PNG image, using a fixed oblique orthographic view.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	m "math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/renderer/metadata"
)

const (
	// View angles in degrees, matching the usual 3D plot default.
	viewElevation = 30.0
	viewAzimuth   = -60.0
)

var (
	backgroundColour = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	axisColour       = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}
	textColour       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
)

type Config struct {
	// Output directory; created on Initialize.
	Dir string
	// Image size in pixels.
	Width  int
	Height int
	// Half-size of the visible cube in world units.
	Extent float64
	// Write one frame out of Every. Zero or one writes all of them.
	Every uint64
}

// Backend rasterises render packets into PNG files.
type Backend struct {
	config Config
	canvas *image.RGBA
	scale  float64
	frames uint64
	// written is the path of the most recent file, empty if none.
	written string
	skip    bool
}

func New(config Config) *Backend {
	if config.Width <= 0 {
		config.Width = 512
	}
	if config.Height <= 0 {
		config.Height = 512
	}
	if config.Extent <= 0 {
		config.Extent = 2
	}
	return &Backend{config: config}
}

func (b *Backend) Initialize(appName string) error {
	if err := os.MkdirAll(b.config.Dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: create output dir: %w", err)
	}
	b.scale = float64(min(b.config.Width, b.config.Height)) / 2 / (b.config.Extent * 1.5)
	core.LogInfo("%s: writing snapshots to %s", appName, b.config.Dir)
	return nil
}

func (b *Backend) Shutdown() error {
	b.canvas = nil
	return nil
}

// LastWritten returns the path of the last PNG written.
func (b *Backend) LastWritten() string {
	return b.written
}

func (b *Backend) BeginFrame(packet *metadata.RenderPacket) error {
	every := max(b.config.Every, 1)
	b.skip = b.frames%every != 0
	b.frames++
	if b.skip {
		return nil
	}

	b.canvas = image.NewRGBA(image.Rect(0, 0, b.config.Width, b.config.Height))
	draw.Draw(b.canvas, b.canvas.Bounds(), &image.Uniform{C: backgroundColour}, image.Point{}, draw.Src)
	b.drawAxes()
	return nil
}

func (b *Backend) DrawLayer(layer metadata.Layer) error {
	if b.skip {
		return nil
	}
	c := layer.Role.DefaultColour()
	for _, p := range layer.Cloud {
		x, y := b.toScreen(p)
		b.dot(x, y, c)
	}
	return nil
}

func (b *Backend) EndFrame(packet *metadata.RenderPacket) error {
	if b.skip {
		return nil
	}
	hud := "empty scene"
	if !packet.IsEmpty() {
		hud = fmt.Sprintf("%s  %s  angle=%d", packet.Solid, packet.Transformation, packet.Angle)
	}
	b.label(8, 16, hud)

	name := filepath.Join(b.config.Dir, fmt.Sprintf("frame-%08d-%s.png", packet.Angle, packet.FrameID))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, b.canvas); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", name, err)
	}
	b.written = name
	return nil
}

// toScreen maps a world point to pixel coordinates with an orthographic
// camera looking from (viewAzimuth, viewElevation).
func (b *Backend) toScreen(p math.Vec3) (int, int) {
	sa, ca := m.Sincos(math.DegToRad(viewAzimuth))
	se, ce := m.Sincos(math.DegToRad(viewElevation))

	u := -sa*p.X + ca*p.Y
	depth := -ca*p.X - sa*p.Y
	v := p.Z*ce + depth*se

	cx := float64(b.config.Width) / 2
	cy := float64(b.config.Height) / 2
	return int(m.Round(cx + u*b.scale)), int(m.Round(cy - v*b.scale))
}

// dot paints a 2x2 marker, clipped to the canvas.
func (b *Backend) dot(x, y int, c color.RGBA) {
	w, h := b.config.Width, b.config.Height
	if x < -1 || y < -1 || x >= w+1 || y >= h+1 {
		return
	}
	x0, x1 := math.Clamp(x, 0, w-1), math.Clamp(x+1, 0, w-1)
	y0, y1 := math.Clamp(y, 0, h-1), math.Clamp(y+1, 0, h-1)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			b.canvas.SetRGBA(px, py, c)
		}
	}
}

func (b *Backend) drawAxes() {
	e := b.config.Extent
	ends := []struct {
		to   math.Vec3
		name string
	}{
		{math.NewVec3(e, 0, 0), "X"},
		{math.NewVec3(0, e, 0), "Y"},
		{math.NewVec3(0, 0, e), "Z"},
	}
	for _, end := range ends {
		from := end.to.MulScalar(-1)
		const steps = 200
		for i := 0; i <= steps; i++ {
			t := float64(i) / steps
			x, y := b.toScreen(from.Add(end.to.Sub(from).MulScalar(t)))
			if x >= 0 && y >= 0 && x < b.config.Width && y < b.config.Height {
				b.canvas.SetRGBA(x, y, axisColour)
			}
		}
		x, y := b.toScreen(end.to)
		b.label(x+4, y, end.name)
	}
}

func (b *Backend) label(x, y int, text string) {
	d := &font.Drawer{
		Dst:  b.canvas,
		Src:  image.NewUniform(textColour),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

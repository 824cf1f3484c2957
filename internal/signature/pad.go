// Package signature captures freehand signatures on a fixed-size raster.
//
// A Pad keeps a 400x200 backing image regardless of how large it is shown.
// Pointer positions arrive in displayed coordinates and are scaled into the
// backing raster, so mouse and touch input behave the same at any size.
// When a stroke ends the whole raster is emitted as a PNG data URL.
package signature

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // signatures loaded from disk may be JPEG
	_ "image/png"

	"github.com/fogleman/gg"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// Backing raster size and stroke width in backing pixels.
const (
	BackingWidth  = 400
	BackingHeight = 200
	StrokeWidth   = 2.0
)

// State is the pointer state of a pad.
type State int

// Pad states.
const (
	StateIdle State = iota
	StateDrawing
)

// String returns the state name.
func (s State) String() string {
	if s == StateDrawing {
		return "drawing"
	}
	return "idle"
}

// Point is a position in backing pixels.
type Point struct {
	X, Y float64
}

// ErrInvalidSize is returned for a non-positive displayed size.
var ErrInvalidSize = errors.New("signature: displayed size must be positive")

// Pad is a signature canvas. It is not safe for concurrent use.
type Pad struct {
	dc      *gg.Context
	width   float64
	height  float64
	state   State
	last    Point
	strokes int
	loaded  bool
}

// NewPad creates a blank pad displayed at width x height.
func NewPad(width, height float64) (*Pad, error) {
	p := &Pad{dc: gg.NewContext(BackingWidth, BackingHeight)}
	if err := p.Resize(width, height); err != nil {
		return nil, err
	}
	p.reset()
	return p, nil
}

// Resize changes the displayed size used to map pointer positions.
func (p *Pad) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	p.width, p.height = width, height
	return nil
}

// State returns the current pointer state.
func (p *Pad) State() State {
	return p.state
}

// IsEmpty is true when nothing has been drawn or loaded since the last clear.
func (p *Pad) IsEmpty() bool {
	return p.strokes == 0 && !p.loaded
}

// MapPoint converts a displayed position to backing pixels.
func (p *Pad) MapPoint(x, y float64) Point {
	return Point{
		X: x * BackingWidth / p.width,
		Y: y * BackingHeight / p.height,
	}
}

// Down starts a stroke at the displayed position.
func (p *Pad) Down(x, y float64) {
	p.last = p.MapPoint(x, y)
	p.state = StateDrawing
}

// Move extends the current stroke. It is ignored while idle.
func (p *Pad) Move(x, y float64) {
	if p.state != StateDrawing {
		return
	}
	next := p.MapPoint(x, y)
	p.dc.SetRGB(0, 0, 0)
	p.dc.SetLineWidth(StrokeWidth)
	p.dc.SetLineCapRound()
	p.dc.SetLineJoinRound()
	p.dc.DrawLine(p.last.X, p.last.Y, next.X, next.Y)
	p.dc.Stroke()
	p.last = next
	p.strokes++
}

// Up ends the stroke. When a stroke was in progress the raster is
// returned with emitted set; otherwise nothing is emitted.
func (p *Pad) Up() (sig domain.EncodedImage, emitted bool, err error) {
	if p.state != StateDrawing {
		return "", false, nil
	}
	p.state = StateIdle
	sig, err = p.Snapshot()
	if err != nil {
		return "", false, err
	}
	return sig, true, nil
}

// Leave is treated like Up when the pointer exits the pad.
func (p *Pad) Leave() (domain.EncodedImage, bool, error) {
	return p.Up()
}

// Clear blanks the raster and returns the absent signature.
func (p *Pad) Clear() domain.EncodedImage {
	p.reset()
	return ""
}

// Load paints an existing signature so new strokes add to it.
// An absent payload leaves the pad unchanged.
func (p *Pad) Load(sig domain.EncodedImage) error {
	if sig.IsAbsent() {
		return nil
	}
	_, data, err := sig.Decode()
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	b := img.Bounds()
	p.dc.Push()
	if b.Dx() != BackingWidth || b.Dy() != BackingHeight {
		p.dc.Scale(float64(BackingWidth)/float64(b.Dx()), float64(BackingHeight)/float64(b.Dy()))
	}
	p.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	p.dc.Pop()
	p.loaded = true
	return nil
}

// Snapshot encodes the current raster. An empty pad yields the absent
// signature.
func (p *Pad) Snapshot() (domain.EncodedImage, error) {
	if p.IsEmpty() {
		return "", nil
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encoding signature: %w", err)
	}
	return domain.EncodeImage("image/png", buf.Bytes()), nil
}

// Image returns the backing raster.
func (p *Pad) Image() image.Image {
	return p.dc.Image()
}

func (p *Pad) reset() {
	p.dc.SetRGBA(0, 0, 0, 0)
	p.dc.Clear()
	p.state = StateIdle
	p.strokes = 0
	p.loaded = false
}

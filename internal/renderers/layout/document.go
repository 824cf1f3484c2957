package layout

import "time"

// FontStyle selects a face of the report font.
type FontStyle string

// Font styles, using the core PDF style letters.
const (
	StyleRegular FontStyle = ""
	StyleBold    FontStyle = "B"
	StyleItalic  FontStyle = "I"
)

// Color is an RGB triple in 0..255.
type Color struct {
	R, G, B int
}

// Palette used by the inspection report.
var (
	ColorBlack       = Color{0, 0, 0}
	ColorBrand       = Color{0, 90, 110}
	ColorMuted       = Color{70, 70, 70}
	ColorRule        = Color{180, 180, 180}
	ColorShade       = Color{230, 230, 230}
	ColorSignLine    = Color{100, 100, 100}
	ColorFooter      = Color{120, 120, 120}
	ColorError       = Color{255, 0, 0}
	ColorGood        = Color{0, 130, 0}
	ColorFair        = Color{180, 130, 0}
	ColorReplace     = Color{180, 0, 0}
	ColorNotAssessed = Color{100, 100, 100}
)

// ElementKind identifies what an Element draws.
type ElementKind int

// Element kinds.
const (
	ElementText ElementKind = iota
	ElementRect
	ElementLine
	ElementImage
)

// ImageRole tells an Images implementation how to prepare an image.
// Photos and logos are opaque, signatures keep their transparency.
type ImageRole string

// Image roles.
const (
	RoleLogo      ImageRole = "logo"
	RolePhoto     ImageRole = "photo"
	RoleSignature ImageRole = "signature"
)

// Element is one positioned drawing instruction. Coordinates are in
// points from the top-left corner of the page. Text Y is the baseline.
//
// Text uses Text, Style, Size and Color. Rect fills X,Y,W,H with Color.
// Line strokes X,Y to X2,Y2 with Color. Image places ImageKey in X,Y,W,H.
type Element struct {
	Kind     ElementKind
	X, Y     float64
	W, H     float64
	X2, Y2   float64
	Text     string
	Style    FontStyle
	Size     float64
	Color    Color
	ImageKey string
}

// Page is the ordered list of elements drawn on one page.
type Page struct {
	Elements []Element
}

// Texts returns the text of every text element in drawing order.
func (p *Page) Texts() []string {
	var out []string
	for _, e := range p.Elements {
		if e.Kind == ElementText {
			out = append(out, e.Text)
		}
	}
	return out
}

// Bookmark is an outline entry pointing at a section header.
type Bookmark struct {
	Title string
	Page  int
	Y     float64
}

// Document is a fully laid out report.
type Document struct {
	Width     float64
	Height    float64
	Pages     []*Page
	Outline   []Bookmark
	Title     string
	Author    string
	Subject   string
	CreatedAt time.Time
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

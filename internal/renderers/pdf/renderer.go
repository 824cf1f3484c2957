// Package pdf draws laid out inspection reports with gofpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/custodia-labs/motocheck/internal/adapters/driven/imageproc"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/logger"
	"github.com/custodia-labs/motocheck/internal/renderers/layout"
)

// Ensure Renderer implements the interface.
var _ driven.ReportRenderer = (*Renderer)(nil)

const (
	fontFamily = "Helvetica"
	creator    = "motocheck"
	lineWidth  = 0.5
)

// Renderer produces the printable A4 report.
type Renderer struct{}

// NewRenderer creates a new PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format implements driven.ReportRenderer.
func (r *Renderer) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// Render lays out the inspection and writes the PDF.
func (r *Renderer) Render(ctx context.Context, in *driven.RenderInput) (*driven.RenderOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := newDocument()
	done := logger.Timed("pdf layout")
	laid, err := layout.Build(in, doc, doc)
	done()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := doc.draw(laid)
	if err != nil {
		return nil, err
	}
	return &driven.RenderOutput{Data: data, Pages: laid.PageCount()}, nil
}

// document adapts a gofpdf instance to the layout collaborators and
// draws the finished layout into it.
type document struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]gofpdf.ImageOptions
}

func newDocument() *document {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	return &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]gofpdf.ImageOptions),
	}
}

// TextWidth implements layout.Measurer.
func (d *document) TextWidth(text string, style layout.FontStyle, size float64) (float64, error) {
	d.pdf.SetFont(fontFamily, string(style), size)
	w := d.pdf.GetStringWidth(d.tr(text))
	if d.pdf.Err() {
		return 0, d.pdf.Error()
	}
	return w, nil
}

// Prepare implements layout.Images. Photos and logos are embedded as
// JPEG, signatures as PNG so the stroke background stays transparent.
func (d *document) Prepare(data []byte, role layout.ImageRole) (layout.PreparedImage, error) {
	encoded, imageType, info, err := imageproc.Normalize(data, role == layout.RoleSignature)
	if err != nil {
		return layout.PreparedImage{}, err
	}

	name := fmt.Sprintf("%s-%d", role, len(d.images)+1)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(encoded))
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return layout.PreparedImage{}, fmt.Errorf("embedding %s: %w", role, err)
	}
	d.images[name] = opts

	return layout.PreparedImage{Key: name, Width: info.Width, Height: info.Height}, nil
}

func (d *document) draw(laid *layout.Document) ([]byte, error) {
	p := d.pdf
	p.SetTitle(laid.Title, true)
	p.SetAuthor(laid.Author, true)
	p.SetSubject(laid.Subject, true)
	p.SetCreator(creator, true)
	p.SetCreationDate(laid.CreatedAt)

	marks := make(map[int][]layout.Bookmark)
	for _, bm := range laid.Outline {
		marks[bm.Page] = append(marks[bm.Page], bm)
	}

	p.SetLineWidth(lineWidth)
	for i, page := range laid.Pages {
		p.AddPage()
		for _, bm := range marks[i] {
			p.Bookmark(d.tr(bm.Title), 0, bm.Y)
		}
		for _, e := range page.Elements {
			d.element(e)
		}
	}

	if p.Err() {
		return nil, fmt.Errorf("drawing pdf: %w", p.Error())
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *document) element(e layout.Element) {
	p := d.pdf
	switch e.Kind {
	case layout.ElementText:
		p.SetFont(fontFamily, string(e.Style), e.Size)
		p.SetTextColor(e.Color.R, e.Color.G, e.Color.B)
		p.Text(e.X, e.Y, d.tr(e.Text))
	case layout.ElementRect:
		p.SetFillColor(e.Color.R, e.Color.G, e.Color.B)
		p.Rect(e.X, e.Y, e.W, e.H, "F")
	case layout.ElementLine:
		p.SetDrawColor(e.Color.R, e.Color.G, e.Color.B)
		p.Line(e.X, e.Y, e.X2, e.Y2)
	case layout.ElementImage:
		p.ImageOptions(e.ImageKey, e.X, e.Y, e.W, e.H, false, d.images[e.ImageKey], 0, "")
	}
}

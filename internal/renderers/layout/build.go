package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// A4 portrait geometry in points.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 30.0

	LineHeight = 1.15
	SectionGap = 12.0
	ItemGap    = 8.0
	PhotoGap   = 4.0
)

const (
	contentWidth = PageWidth - 2*Margin

	logoWidth      = 55.0
	logoTextOffset = 65.0
	valueIndent    = 110.0
	detailIndent   = 8.0

	photoWidth  = 100.0
	photoHeight = 75.0

	signatureWidth  = 160.0
	signatureHeight = 60.0

	// Title is the centred report heading.
	Title = "VEHICLE INSPECTION REPORT"

	dataSection      = "INSPECTION DATA"
	signatureSection = "SIGNATURES"
	notProvided      = "Not provided"

	photoErrorText       = "[Photo Error]"
	signatureMissingText = "[Signature Missing]"
	signatureErrorText   = "[Signature Error]"
)

// Space reserved before blocks so they do not start at the very bottom
// of a page.
const (
	reserveHeader     = 25.0
	reserveDataHeader = 20.0
	reserveRow        = 18.0
	reserveItem       = 40.0
	reserveSignatures = 130.0
)

// PreparedImage is an image ready to be placed by the backend.
type PreparedImage struct {
	Key    string
	Width  int
	Height int
}

// Images prepares raw image bytes for embedding. An error means the image
// cannot be drawn and a placeholder is used instead.
type Images interface {
	Prepare(data []byte, role ImageRole) (PreparedImage, error)
}

// ErrNoInspection is returned when Build is called without a record.
var ErrNoInspection = errors.New("layout: no inspection to render")

// PhotosPerRow is how many thumbnails fit across the content width.
func PhotosPerRow() int {
	return int(math.Floor(contentWidth / (photoWidth + PhotoGap)))
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

type textOpts struct {
	size  float64
	style FontStyle
	color Color
	width float64
	align align
}

type builder struct {
	m      Measurer
	images Images
	in     *driven.RenderInput

	doc  *Document
	page *Page
	y    float64
	err  error
}

// Build lays out the inspection report. Images that cannot be decoded
// become placeholders; measurement errors abort the build.
func Build(in *driven.RenderInput, m Measurer, images Images) (*Document, error) {
	if in == nil || in.Inspection == nil {
		return nil, ErrNoInspection
	}
	schema := in.Schema
	if schema == nil {
		schema = domain.DefaultSchema()
	}

	b := &builder{
		m:      m,
		images: images,
		in:     in,
		doc: &Document{
			Width:     PageWidth,
			Height:    PageHeight,
			Title:     reportTitle(in.Inspection),
			Author:    in.Company.Name,
			Subject:   "Vehicle inspection",
			CreatedAt: in.GeneratedAt,
		},
	}
	b.newPage()

	b.header()
	b.title()
	b.identity()
	for _, category := range schema.Categories() {
		b.category(category, schema.ItemsIn(category))
	}
	b.signatures()
	b.footers()

	if b.err != nil {
		return nil, b.err
	}
	return b.doc, nil
}

func reportTitle(in *domain.Inspection) string {
	if plate := strings.TrimSpace(in.Identity.Plate); plate != "" {
		return "Vehicle Inspection Report " + plate
	}
	return "Vehicle Inspection Report"
}

func (b *builder) newPage() {
	b.page = &Page{}
	b.doc.Pages = append(b.doc.Pages, b.page)
	b.y = Margin
}

// ensure starts a new page if h points do not fit below the cursor.
func (b *builder) ensure(h float64) {
	if b.y+h > PageHeight-Margin {
		b.newPage()
	}
}

func (b *builder) add(e Element) {
	b.page.Elements = append(b.page.Elements, e)
}

func (b *builder) wrap(text string, o textOpts) []string {
	if b.err != nil {
		return nil
	}
	lines, err := wrap(b.m, text, o.style, o.size, o.width)
	if err != nil {
		b.err = fmt.Errorf("measuring text: %w", err)
		return nil
	}
	return lines
}

func (b *builder) width(text string, o textOpts) float64 {
	if b.err != nil {
		return 0
	}
	w, err := b.m.TextWidth(text, o.style, o.size)
	if err != nil {
		b.err = fmt.Errorf("measuring text: %w", err)
		return 0
	}
	return w
}

func textHeight(lines int, size float64) float64 {
	return float64(lines) * size * LineHeight
}

// draw writes already wrapped lines with the first baseline at y and
// returns the y below the block. Alignment is relative to [x, x+o.width].
func (b *builder) draw(lines []string, x, y float64, o textOpts) float64 {
	for i, line := range lines {
		lx := x
		switch o.align {
		case alignCenter:
			lx = math.Max(x, x+(o.width-b.width(line, o))/2)
		case alignRight:
			lx = x + o.width - b.width(line, o)
		}
		b.add(Element{
			Kind:  ElementText,
			X:     lx,
			Y:     y + textHeight(i, o.size),
			Text:  line,
			Style: o.style,
			Size:  o.size,
			Color: o.color,
		})
	}
	return y + textHeight(len(lines), o.size)
}

// textAt wraps and writes text at a fixed position without page checks.
func (b *builder) textAt(text string, x, y float64, o textOpts) float64 {
	return b.draw(b.wrap(text, o), x, y, o)
}

// flow writes text at the cursor one line at a time, breaking the page
// before any line that would not fit.
func (b *builder) flow(text string, x float64, o textOpts) {
	for _, line := range b.wrap(text, o) {
		b.ensure(textHeight(1, o.size))
		b.y = b.draw([]string{line}, x, b.y, o)
	}
}

func (b *builder) header() {
	company := b.in.Company
	top := b.y

	var logoHeight float64
	textX := Margin
	if len(b.in.Logo) > 0 {
		img, err := b.images.Prepare(b.in.Logo, RoleLogo)
		switch {
		case err != nil:
			logger.Warn("omitting logo: %v", err)
		case img.Width <= 0 || img.Height <= 0:
			logger.Warn("omitting logo: empty image")
		default:
			logoHeight = float64(img.Height) * logoWidth / float64(img.Width)
			b.add(Element{Kind: ElementImage, X: Margin, Y: top, W: logoWidth, H: logoHeight, ImageKey: img.Key})
			textX = Margin + logoTextOffset
		}
	}

	textWidth := contentWidth - (textX - Margin)
	y := b.textAt(company.Name, textX, top, textOpts{size: 16, style: StyleBold, color: ColorBrand, width: textWidth})
	small := textOpts{size: 7, color: ColorMuted, width: textWidth}
	for _, line := range []struct{ label, value string }{
		{"Tax ID", company.TaxID},
		{"Phone", company.Phone},
		{"Address", company.Address},
	} {
		if strings.TrimSpace(line.value) == "" {
			continue
		}
		y = b.textAt(line.label+": "+line.value, textX, y, small)
	}

	b.y = math.Max(top+logoHeight, y) + SectionGap
	b.ensure(1)
	b.add(Element{Kind: ElementLine, X: Margin, Y: b.y, X2: PageWidth - Margin, Y2: b.y, Color: ColorRule})
	b.y += SectionGap
}

func (b *builder) title() {
	b.ensure(reserveHeader)
	b.flow(Title, Margin, textOpts{size: 13, style: StyleBold, color: ColorBlack, width: contentWidth, align: alignCenter})
	b.y += SectionGap
}

// section draws a shaded header band after reserving space for the
// block that follows it.
func (b *builder) section(title string, reserve float64) {
	b.ensure(reserve)
	b.add(Element{
		Kind:  ElementRect,
		X:     Margin,
		Y:     b.y - 10*LineHeight*0.6,
		W:     contentWidth,
		H:     10 * LineHeight * 1.1,
		Color: ColorShade,
	})
	b.doc.Outline = append(b.doc.Outline, Bookmark{Title: title, Page: len(b.doc.Pages) - 1, Y: b.y})
	b.flow(title, Margin+4, textOpts{size: 10, style: StyleBold, color: ColorBlack, width: contentWidth - 4})
}

func (b *builder) identity() {
	in := b.in.Inspection
	b.section(dataSection, reserveDataHeader)
	b.y += ItemGap

	for _, f := range domain.IdentityFields() {
		b.row(f.Label(), in.Identity.Get(f))
	}
	b.row(domain.FieldDate.Label(), in.Date.Display())
	b.y += SectionGap
}

// row writes a label and its wrapped value side by side.
func (b *builder) row(label, value string) {
	if strings.TrimSpace(value) == "" {
		value = notProvided
	}
	labelOpts := textOpts{size: 8, style: StyleBold, color: ColorBlack, width: valueIndent - 4}
	valueOpts := textOpts{size: 8, color: ColorBlack, width: contentWidth - valueIndent}

	labelLines := b.wrap(label+":", labelOpts)
	valueLines := b.wrap(value, valueOpts)

	// Both columns advance together; a long value continues on the next page.
	for i := 0; i < max(len(labelLines), len(valueLines), 1); i++ {
		b.ensure(textHeight(1, 8))
		if i < len(labelLines) {
			b.draw(labelLines[i:i+1], Margin, b.y, labelOpts)
		}
		if i < len(valueLines) {
			b.draw(valueLines[i:i+1], Margin+valueIndent, b.y, valueOpts)
		}
		b.y += textHeight(1, 8)
	}
	b.y += ItemGap / 2.5
	b.ensure(reserveRow)
}

func (b *builder) category(category domain.Category, items []domain.ChecklistItem) {
	if len(items) == 0 {
		return
	}
	b.section(strings.ToUpper(category.String()), reserveHeader)
	b.y += ItemGap

	for _, item := range items {
		b.item(item)
	}
	b.y += SectionGap / 2
}

func (b *builder) item(item domain.ChecklistItem) {
	in := b.in.Inspection
	b.ensure(reserveItem)
	b.flow("• "+item.Name, Margin, textOpts{size: 9, style: StyleBold, color: ColorBlack, width: contentWidth})

	detail := textOpts{size: 8, color: ColorBlack, width: contentWidth - detailIndent}
	answer := in.AnswerFor(item)
	switch item.Kind {
	case domain.ItemKindNumericWithLabel:
		b.flow("Odometer reading: "+valueOr(answer.Text), Margin+detailIndent, detail)
	case domain.ItemKindTextEntry:
		b.flow("Value: "+valueOr(answer.Text), Margin+detailIndent, detail)
	case domain.ItemKindTextAndPhotoOptional:
		if strings.TrimSpace(in.FinalNotes) != "" {
			b.flow("Notes: "+in.FinalNotes, Margin+detailIndent, detail)
		} else {
			detail.style = StyleItalic
			detail.color = ColorNotAssessed
			b.flow("Notes: (No written notes)", Margin+detailIndent, detail)
		}
	case domain.ItemKindRated:
		detail.style = StyleBold
		detail.color = conditionColor(answer.Condition)
		b.flow("Condition: "+answer.Condition.Label(), Margin+detailIndent, detail)
	}

	b.photos(item.ID, in.Photos[item.ID])
	b.y += ItemGap / 1.5
}

func valueOr(v string) string {
	if strings.TrimSpace(v) == "" {
		return notProvided
	}
	return v
}

func conditionColor(c domain.Condition) Color {
	switch c {
	case domain.ConditionGood:
		return ColorGood
	case domain.ConditionFair:
		return ColorFair
	case domain.ConditionNeedsReplacement:
		return ColorReplace
	default:
		return ColorNotAssessed
	}
}

// photos lays out thumbnails in rows; each row is kept on one page.
func (b *builder) photos(itemID string, photos []domain.EncodedImage) {
	if len(photos) == 0 {
		return
	}
	b.y += PhotoGap / 2
	perRow := PhotosPerRow()
	x := Margin + detailIndent

	for i, p := range photos {
		if i > 0 && i%perRow == 0 {
			x = Margin + detailIndent
			b.y += photoHeight + PhotoGap
		}
		b.ensure(photoHeight + PhotoGap)
		if key, ok := b.prepare(p, RolePhoto, fmt.Sprintf("%s photo %d", itemID, i+1)); ok {
			b.add(Element{Kind: ElementImage, X: x, Y: b.y, W: photoWidth, H: photoHeight, ImageKey: key})
		} else {
			b.placeholder(photoErrorText, x, b.y, photoWidth, photoHeight, ColorError)
		}
		x += photoWidth + PhotoGap
	}
	b.y += photoHeight + PhotoGap
}

func (b *builder) prepare(payload domain.EncodedImage, role ImageRole, what string) (string, bool) {
	_, data, err := payload.Decode()
	if err != nil {
		logger.Warn("%s: %v", what, err)
		return "", false
	}
	img, err := b.images.Prepare(data, role)
	if err != nil {
		logger.Warn("%s: %v", what, err)
		return "", false
	}
	return img.Key, true
}

// placeholder centres a short message in a w×h box.
func (b *builder) placeholder(text string, x, y, w, h float64, color Color) {
	o := textOpts{size: 7, color: color, width: w, align: alignCenter}
	b.textAt(text, x, y+h/2, o)
}

func (b *builder) signatures() {
	in := b.in.Inspection
	company := b.in.Company

	b.section(signatureSection, reserveSignatures)
	b.y += SectionGap * 1.2

	half := contentWidth / 2
	top := b.y
	slots := []struct {
		role    domain.SignatureRole
		x       float64
		caption string
		detail  string
	}{
		{domain.SignatureInspector, Margin + (half-signatureWidth)/2, inspectorCaption(company), labelled("Tax ID", company.TaxID)},
		{domain.SignatureRenter, Margin + half + (half-signatureWidth)/2, "Renter", labelled("RG", in.Identity.RenterRG)},
	}

	bottom := top
	for _, s := range slots {
		sig := in.Signature(s.role)
		switch {
		case sig.IsAbsent():
			b.placeholder(signatureMissingText, s.x, top, signatureWidth, signatureHeight, ColorNotAssessed)
		default:
			if key, ok := b.prepare(sig, RoleSignature, s.role.String()+" signature"); ok {
				b.add(Element{Kind: ElementImage, X: s.x, Y: top, W: signatureWidth, H: signatureHeight, ImageKey: key})
			} else {
				b.placeholder(signatureErrorText, s.x, top, signatureWidth, signatureHeight, ColorError)
			}
		}

		lineY := top + signatureHeight + 4
		b.add(Element{Kind: ElementLine, X: s.x, Y: lineY, X2: s.x + signatureWidth, Y2: lineY, Color: ColorSignLine})

		y := b.textAt(s.caption, s.x, top+signatureHeight+12, textOpts{size: 8, color: ColorBlack, width: signatureWidth})
		if s.detail != "" {
			y = b.textAt(s.detail, s.x, y, textOpts{size: 7, color: ColorBlack, width: signatureWidth})
		}
		bottom = math.Max(bottom, y)
	}
	b.y = bottom
}

func inspectorCaption(company domain.CompanyProfile) string {
	name := strings.TrimSpace(company.ProductName)
	if name == "" {
		name = strings.TrimSpace(company.Name)
	}
	if name == "" {
		return "Inspector"
	}
	return "Inspector (" + name + ")"
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

// footers stamps every page once the total is known.
func (b *builder) footers() {
	generated := b.in.GeneratedAt
	product := strings.TrimSpace(b.in.Company.ProductName)
	left := fmt.Sprintf("Report generated on %s at %s", generated.Format("02/01/2006"), generated.Format("15:04:05"))
	if product != "" {
		left += " | " + product
	}

	o := textOpts{size: 7, color: ColorFooter, width: contentWidth}
	y := PageHeight - Margin/2.5
	total := len(b.doc.Pages)
	for i, page := range b.doc.Pages {
		b.page = page
		b.draw([]string{left}, Margin, y, o)
		right := o
		right.align = alignRight
		b.draw([]string{fmt.Sprintf("Page %d of %d", i+1, total)}, Margin, y, right)
	}
}

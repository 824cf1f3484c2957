// Package xlsx exports an inspection checklist as a spreadsheet.
//
// The workbook has an "Inspection" sheet with identity, completion and
// validation details and a "Checklist" sheet with one row per item.
// Photos and signatures are summarised as counts, not embedded.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.ReportRenderer = (*Renderer)(nil)

const (
	summarySheet   = "Inspection"
	checklistSheet = "Checklist"
	defaultSheet   = "Sheet1"
)

var checklistHeaders = []string{"Category", "Item", "Kind", "Answer", "Photos"}

// Renderer produces the XLSX checklist summary.
type Renderer struct{}

// NewRenderer creates a new XLSX renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format implements driven.ReportRenderer.
func (r *Renderer) Format() domain.ReportFormat {
	return domain.ReportFormatXLSX
}

// Render builds the workbook.
func (r *Renderer) Render(ctx context.Context, in *driven.RenderInput) (*driven.RenderOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in == nil || in.Inspection == nil {
		return nil, fmt.Errorf("%w: no inspection to export", domain.ErrInvalidInput)
	}
	schema := in.Schema
	if schema == nil {
		schema = domain.DefaultSchema()
	}

	f := excelize.NewFile()
	defer f.Close()

	w := &workbook{f: f}
	w.styles()
	w.summary(in, schema)
	w.checklist(in.Inspection, schema)
	if w.err != nil {
		return nil, w.err
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(summarySheet); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}
	return &driven.RenderOutput{Data: buf.Bytes(), Pages: len(f.GetSheetList())}, nil
}

// workbook keeps the first error and turns later calls into no-ops.
type workbook struct {
	f   *excelize.File
	err error

	header     int
	label      int
	conditions map[domain.Condition]int
}

func (w *workbook) check(err error, what string) {
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("%s: %w", what, err)
	}
}

func (w *workbook) styles() {
	var err error
	w.header, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#005A6E"}, Pattern: 1},
	})
	w.check(err, "creating header style")

	w.label, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	w.check(err, "creating label style")

	fills := map[domain.Condition]string{
		domain.ConditionGood:             "#C6EFCE",
		domain.ConditionFair:             "#FFEB9C",
		domain.ConditionNeedsReplacement: "#FFC7CE",
	}
	w.conditions = make(map[domain.Condition]int, len(fills))
	for _, c := range domain.AllConditions() {
		id, err := w.f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{fills[c]}, Pattern: 1},
		})
		w.check(err, "creating condition style")
		w.conditions[c] = id
	}
}

func (w *workbook) sheet(name string) {
	if w.err != nil {
		return
	}
	_, err := w.f.NewSheet(name)
	w.check(err, "creating sheet "+name)
}

func (w *workbook) set(sheet string, col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.check(err, "addressing cell")
		return
	}
	w.check(w.f.SetCellValue(sheet, cell, value), "writing "+cell)
}

func (w *workbook) style(sheet string, col, row, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.check(err, "addressing cell")
		return
	}
	w.check(w.f.SetCellStyle(sheet, cell, cell, style), "styling "+cell)
}

func (w *workbook) summary(in *driven.RenderInput, schema *domain.Schema) {
	record := in.Inspection
	w.sheet(summarySheet)

	rows := [][2]any{
		{"Company", in.Company.Name},
		{"Tax ID", in.Company.TaxID},
		{"Inspection ID", record.ID},
	}
	for _, f := range domain.IdentityFields() {
		rows = append(rows, [2]any{f.Label(), record.Identity.Get(f)})
	}
	rows = append(rows, [2]any{domain.FieldDate.Label(), record.Date.Display()})

	status := record.Completion(schema)
	result := domain.Validate(record, schema)
	ready := "Yes"
	if !result.OK {
		ready = "No: " + result.Reason
	}
	rows = append(rows,
		[2]any{"Items answered", fmt.Sprintf("%d of %d", status.Answered, status.Required)},
		[2]any{"Photos attached", status.PhotoCount},
		[2]any{"Mandatory photos", yesNo(status.PhotoComplete)},
		[2]any{"Signed by both parties", yesNo(status.Signed)},
		[2]any{"Ready for report", ready},
		[2]any{"Final notes", record.FinalNotes},
		[2]any{"Generated", in.GeneratedAt.Format("02/01/2006 15:04:05")},
	)

	for i, r := range rows {
		row := i + 1
		w.set(summarySheet, 1, row, r[0])
		w.style(summarySheet, 1, row, w.label)
		w.set(summarySheet, 2, row, r[1])
	}
	if w.err == nil {
		w.check(w.f.SetColWidth(summarySheet, "A", "A", 24), "sizing columns")
		w.check(w.f.SetColWidth(summarySheet, "B", "B", 60), "sizing columns")
	}
}

func (w *workbook) checklist(record *domain.Inspection, schema *domain.Schema) {
	w.sheet(checklistSheet)
	for i, h := range checklistHeaders {
		w.set(checklistSheet, i+1, 1, h)
		w.style(checklistSheet, i+1, 1, w.header)
	}

	row := 2
	for _, category := range schema.Categories() {
		for _, item := range schema.ItemsIn(category) {
			answer := record.AnswerFor(item)
			w.set(checklistSheet, 1, row, category.String())
			w.set(checklistSheet, 2, row, item.Name)
			w.set(checklistSheet, 3, row, item.Kind.Description())
			switch item.Kind {
			case domain.ItemKindRated:
				w.set(checklistSheet, 4, row, answer.Condition.Label())
				if style, ok := w.conditions[answer.Condition]; ok {
					w.style(checklistSheet, 4, row, style)
				}
			case domain.ItemKindPhotoOnly:
				w.set(checklistSheet, 4, row, "")
			default:
				w.set(checklistSheet, 4, row, answer.Text)
			}
			w.set(checklistSheet, 5, row, len(record.Photos[item.ID]))
			row++
		}
	}

	if w.err == nil {
		w.check(w.f.SetColWidth(checklistSheet, "A", "B", 28), "sizing columns")
		w.check(w.f.SetColWidth(checklistSheet, "C", "C", 36), "sizing columns")
		w.check(w.f.SetColWidth(checklistSheet, "D", "D", 40), "sizing columns")
		w.check(w.f.SetColWidth(checklistSheet, "E", "E", 10), "sizing columns")
		w.check(w.f.SetPanes(checklistSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}), "freezing header")
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

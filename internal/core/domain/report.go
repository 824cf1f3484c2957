package domain

import (
	"strings"
	"time"
)

// ReportFormat identifies a report output format.
type ReportFormat string

// Available report formats.
const (
	// ReportFormatPDF is the printable inspection report.
	ReportFormatPDF ReportFormat = "pdf"

	// ReportFormatXLSX is a spreadsheet summary of the checklist.
	ReportFormatXLSX ReportFormat = "xlsx"
)

// IsValid returns true if the format is recognised.
func (f ReportFormat) IsValid() bool {
	return f == ReportFormatPDF || f == ReportFormatXLSX
}

// String returns the string representation.
func (f ReportFormat) String() string {
	return string(f)
}

// MIMEType returns the media type of files in this format.
func (f ReportFormat) MIMEType() string {
	switch f {
	case ReportFormatPDF:
		return "application/pdf"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// RequiresValidation returns true if a record must pass Validate before
// a report in this format is produced.
func (f ReportFormat) RequiresValidation() bool {
	return f == ReportFormatPDF
}

// Report is a rendered document ready to be written out.
type Report struct {
	FileName    string       `json:"file_name"`
	Format      ReportFormat `json:"format"`
	Data        []byte       `json:"-"`
	Pages       int          `json:"pages,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// MIMEType returns the media type of the report.
func (r *Report) MIMEType() string {
	return r.Format.MIMEType()
}

// ReportFileName builds Inspection_<product>_<plate or NO_PLATE>_<YYYYMMDD>.<ext>.
// Path separators and other characters unsafe in file names are replaced.
func ReportFileName(product, plate string, date Date, format ReportFormat) string {
	if strings.TrimSpace(plate) == "" {
		plate = "NO_PLATE"
	}
	parts := []string{"Inspection", sanitizeFileComponent(product), sanitizeFileComponent(plate)}
	if d := date.Compact(); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, "_") + "." + format.String()
}

func sanitizeFileComponent(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
}

// ReportRecord is a history entry for one generated report.
type ReportRecord struct {
	InspectionID string       `json:"inspection_id"`
	FileName     string       `json:"file_name"`
	Format       ReportFormat `json:"format"`
	Pages        int          `json:"pages"`
	SizeBytes    int          `json:"size_bytes"`
	GeneratedAt  time.Time    `json:"generated_at"`
}

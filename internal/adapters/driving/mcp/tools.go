package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/motocheck/internal/connectors/filesystem"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/reportfile"
)

// Empty is the input of tools that take no arguments.
type Empty struct{}

// InspectionOutput summarises the inspection in progress.
// Photos and signatures are reported as counts and flags.
type InspectionOutput struct {
	ID         string            `json:"id"`
	Date       string            `json:"date"`
	Identity   domain.Identity   `json:"identity"`
	Answers    map[string]string `json:"answers"`
	FinalNotes string            `json:"final_notes,omitempty"`
	Photos     map[string]int    `json:"photos"`
	Signatures map[string]bool   `json:"signatures"`
	Progress   domain.Completion `json:"progress"`
}

// SetFieldInput is the input schema for the set_field tool.
type SetFieldInput struct {
	Field string `json:"field" jsonschema:"identity field: client_name, renter_rg, vehicle_model, plate, color, odometer, chassis_number or engine_number"`
	Value string `json:"value" jsonschema:"the new value; empty clears the field"`
}

// SetDateInput is the input schema for the set_date tool.
type SetDateInput struct {
	Date string `json:"date" jsonschema:"inspection date as YYYY-MM-DD"`
}

// SetAnswerInput is the input schema for the set_answer tool.
type SetAnswerInput struct {
	ItemID string `json:"item_id" jsonschema:"checklist item id, see the motocheck://checklist resource"`
	Value  string `json:"value" jsonschema:"good, fair or needs_replacement for rated items; free text otherwise; empty clears"`
}

// PrefillInput is the input schema for the prefill tool.
type PrefillInput struct {
	Renter     domain.Renter     `json:"renter"`
	Motorcycle domain.Motorcycle `json:"motorcycle"`
}

// AddPhotosInput is the input schema for the add_photos tool.
type AddPhotosInput struct {
	ItemID string   `json:"item_id" jsonschema:"checklist item id"`
	Paths  []string `json:"paths" jsonschema:"local image files to attach"`
}

// GenerateReportInput is the input schema for the generate_report tool.
type GenerateReportInput struct {
	Format    string `json:"format,omitempty" jsonschema:"pdf (default) or xlsx"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"directory to write to; defaults to the configured output directory"`
}

// GenerateReportOutput is the output schema for the generate_report tool.
type GenerateReportOutput struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Pages  int    `json:"pages"`
	Bytes  int    `json:"bytes"`
}

// UpdateOutput acknowledges a change.
type UpdateOutput struct {
	Progress domain.Completion `json:"progress"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_inspection",
		Description: "Show the inspection in progress: identity, answers, photo counts and progress",
	}, s.handleGetInspection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_field",
		Description: "Set an identity field of the inspection",
	}, s.handleSetField)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_date",
		Description: "Set the inspection date",
	}, s.handleSetDate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_answer",
		Description: "Answer a checklist item",
	}, s.handleSetAnswer)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "prefill",
		Description: "Fill renter and motorcycle details; empty values are ignored",
	}, s.handlePrefill)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_inspection",
		Description: "Check whether the inspection is ready for a PDF report and what to fix first",
	}, s.handleValidate)

	if s.ports.Photos != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "add_photos",
			Description: "Attach local image files to a checklist item (at most 5 per item)",
		}, s.handleAddPhotos)
	}

	if s.ports.Reports != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_report",
			Description: "Render the inspection to a PDF report or XLSX summary and write it to disk",
		}, s.handleGenerateReport)
	}
}

func (s *Server) handleGetInspection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ Empty,
) (*mcp.CallToolResult, InspectionOutput, error) {
	record, err := s.ports.Inspections.Current(ctx)
	if err != nil {
		return nil, InspectionOutput{}, err
	}
	return nil, summarize(record, s.ports.Inspections.Schema()), nil
}

func summarize(record *domain.Inspection, schema *domain.Schema) InspectionOutput {
	out := InspectionOutput{
		ID:         record.ID,
		Date:       record.Date.String(),
		Identity:   record.Identity,
		Answers:    make(map[string]string),
		FinalNotes: record.FinalNotes,
		Photos:     make(map[string]int),
		Signatures: map[string]bool{
			domain.SignatureInspector.String(): !record.InspectorSignature.IsAbsent(),
			domain.SignatureRenter.String():    !record.RenterSignature.IsAbsent(),
		},
		Progress: record.Completion(schema),
	}
	for _, item := range schema.Items() {
		if item.Kind.RequiresAnswer() {
			out.Answers[item.ID] = record.AnswerFor(item).Value()
		}
		if n := len(record.Photos[item.ID]); n > 0 {
			out.Photos[item.ID] = n
		}
	}
	return out
}

func (s *Server) progress(ctx context.Context) (UpdateOutput, error) {
	status, err := s.ports.Inspections.Status(ctx)
	if err != nil {
		return UpdateOutput{}, err
	}
	return UpdateOutput{Progress: status}, nil
}

func (s *Server) handleSetField(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetFieldInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	field := domain.IdentityField(input.Field)
	if err := s.ports.Inspections.SetIdentityField(ctx, field, input.Value); err != nil {
		return nil, UpdateOutput{}, err
	}
	out, err := s.progress(ctx)
	return nil, out, err
}

func (s *Server) handleSetDate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetDateInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	if err := s.ports.Inspections.SetDate(ctx, date); err != nil {
		return nil, UpdateOutput{}, err
	}
	out, err := s.progress(ctx)
	return nil, out, err
}

func (s *Server) handleSetAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetAnswerInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	item, ok := s.ports.Inspections.Schema().Item(input.ItemID)
	if !ok {
		return nil, UpdateOutput{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, input.ItemID)
	}
	answer, err := domain.ParseAnswer(item, input.Value)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	if err := s.ports.Inspections.SetAnswer(ctx, item.ID, answer); err != nil {
		return nil, UpdateOutput{}, err
	}
	out, err := s.progress(ctx)
	return nil, out, err
}

func (s *Server) handlePrefill(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PrefillInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	p := domain.Prefill{Renter: input.Renter, Motorcycle: input.Motorcycle}
	if err := s.ports.Inspections.Prefill(ctx, p); err != nil {
		return nil, UpdateOutput{}, err
	}
	out, err := s.progress(ctx)
	return nil, out, err
}

func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ Empty,
) (*mcp.CallToolResult, domain.ValidationResult, error) {
	result, err := s.ports.Inspections.Validate(ctx)
	if err != nil {
		return nil, domain.ValidationResult{}, err
	}
	return nil, result, nil
}

func (s *Server) handleAddPhotos(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddPhotosInput,
) (*mcp.CallToolResult, domain.PhotoBatchResult, error) {
	if len(input.Paths) == 0 {
		return nil, domain.PhotoBatchResult{}, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}
	result, err := s.ports.Photos.AddPhotos(ctx, input.ItemID, filesystem.Candidates(input.Paths))
	if err != nil {
		return nil, domain.PhotoBatchResult{}, err
	}
	return nil, *result, nil
}

func (s *Server) handleGenerateReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateReportInput,
) (*mcp.CallToolResult, GenerateReportOutput, error) {
	format := domain.ReportFormatPDF
	if input.Format != "" {
		format = domain.ReportFormat(strings.ToLower(input.Format))
	}

	dir, err := reportfile.OutputDir(input.OutputDir, s.ports.Settings)
	if err != nil {
		return nil, GenerateReportOutput{}, err
	}

	report, err := s.ports.Reports.Generate(ctx, format)
	if err != nil {
		return nil, GenerateReportOutput{}, err
	}

	path, err := reportfile.Write(dir, report)
	if err != nil {
		return nil, GenerateReportOutput{}, err
	}

	return nil, GenerateReportOutput{
		Path:   path,
		Format: report.Format.String(),
		Pages:  report.Pages,
		Bytes:  len(report.Data),
	}, nil
}

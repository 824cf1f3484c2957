package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for motocheck resources.
	uriScheme = "motocheck://"

	historyLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "checklist",
		Name:        "checklist",
		Description: "Checklist items grouped by category, with kinds and mandatory photos",
		MIMEType:    "application/json",
	}, s.handleChecklistResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{itemId}",
		Name:        "checklist-item",
		Description: "One checklist item with its current answer and photo count",
		MIMEType:    "application/json",
	}, s.handleItemResource)

	if s.ports.Reports != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "reports",
			Name:        "reports",
			Description: "Recently generated reports, newest first",
			MIMEType:    "application/json",
		}, s.handleReportsResource)
	}
}

type checklistCategory struct {
	Name  string                 `json:"name"`
	Items []domain.ChecklistItem `json:"items"`
}

type checklistInfo struct {
	Categories      []checklistCategory `json:"categories"`
	MandatoryPhotos []string            `json:"mandatory_photos"`
	MaxPhotos       int                 `json:"max_photos_per_item"`
}

// handleChecklistResource returns the checklist definition.
func (s *Server) handleChecklistResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	schema := s.ports.Inspections.Schema()

	info := checklistInfo{
		MandatoryPhotos: schema.MandatoryPhotoItems(),
		MaxPhotos:       domain.MaxPhotosPerItem,
	}
	for _, c := range schema.Categories() {
		info.Categories = append(info.Categories, checklistCategory{
			Name:  c.String(),
			Items: schema.ItemsIn(c),
		})
	}

	return jsonResource(req.Params.URI, info)
}

type itemInfo struct {
	domain.ChecklistItem
	Answer string `json:"answer"`
	Photos int    `json:"photos"`
}

// handleItemResource returns one item of the current inspection.
func (s *Server) handleItemResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	itemID := extractItemID(req.Params.URI)
	item, ok := s.ports.Inspections.Schema().Item(itemID)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Inspections.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading inspection: %w", err)
	}

	return jsonResource(req.Params.URI, itemInfo{
		ChecklistItem: item,
		Answer:        record.AnswerFor(item).Value(),
		Photos:        len(record.Photos[item.ID]),
	})
}

// handleReportsResource returns recent report history.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Reports.History(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	if records == nil {
		records = []domain.ReportRecord{}
	}
	return jsonResource(req.Params.URI, records)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractItemID extracts the item ID from a URI like motocheck://items/{itemId}.
func extractItemID(uri string) string {
	const prefix = uriScheme + "items/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}

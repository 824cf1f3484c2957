package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

func TestServer_handleSetField(t *testing.T) {
	ctx := context.Background()

	t.Run("updates identity", func(t *testing.T) {
		inspections := newInspections()
		server := newTestServer(t, &Ports{Inspections: inspections})

		_, _, err := server.handleSetField(ctx, nil, SetFieldInput{Field: "plate", Value: "ABC-1234"})
		require.NoError(t, err)

		record, err := inspections.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ABC-1234", record.Identity.Plate)
	})

	t.Run("unknown field", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleSetField(ctx, nil, SetFieldInput{Field: "horsepower", Value: "12"})
		require.ErrorIs(t, err, domain.ErrUnknownField)
	})
}

func TestServer_handleSetDate(t *testing.T) {
	ctx := context.Background()
	inspections := newInspections()
	server := newTestServer(t, &Ports{Inspections: inspections})

	_, _, err := server.handleSetDate(ctx, nil, SetDateInput{Date: "2024-03-09"})
	require.NoError(t, err)
	record, err := inspections.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09/03/2024", record.Date.Display())

	_, _, err = server.handleSetDate(ctx, nil, SetDateInput{Date: "09/03/2024"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_handleSetAnswer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   SetAnswerInput
		wantErr error
		want    string
	}{
		{name: "rated alias", input: SetAnswerInput{ItemID: domain.ItemFrontTire, Value: "ok"}, want: "good"},
		{name: "text item", input: SetAnswerInput{ItemID: domain.ItemInstrumentPanel, Value: "15200"}, want: "15200"},
		{name: "unknown item", input: SetAnswerInput{ItemID: "sidecar", Value: "good"}, wantErr: domain.ErrUnknownItem},
		{name: "bad condition", input: SetAnswerInput{ItemID: domain.ItemEngine, Value: "shiny"}, wantErr: domain.ErrInvalidInput},
		{name: "photo item", input: SetAnswerInput{ItemID: domain.ItemPhotoFront, Value: "x"}, wantErr: domain.ErrWrongAnswerKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspections := newInspections()
			server := newTestServer(t, &Ports{Inspections: inspections})

			_, out, err := server.handleSetAnswer(ctx, nil, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, out.Progress.Answered)

			record, err := inspections.Current(ctx)
			require.NoError(t, err)
			item, _ := inspections.Schema().Item(tt.input.ItemID)
			assert.Equal(t, tt.want, record.AnswerFor(item).Value())
		})
	}
}

func TestServer_handlePrefillAndGet(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{})

	_, _, err := server.handlePrefill(ctx, nil, PrefillInput{
		Renter:     domain.Renter{Name: "Maria Souza", RG: "12.345.678-9"},
		Motorcycle: domain.Motorcycle{Model: "CG 160", Plate: "ABC-1234", ChassisNumber: "9C2KC1"},
	})
	require.NoError(t, err)

	_, out, err := server.handleGetInspection(ctx, nil, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", out.Identity.ClientName)
	assert.Equal(t, "CG 160", out.Identity.VehicleModel)
	assert.Equal(t, "9C2KC1", out.Answers[domain.ItemChassisNumber])
	assert.Equal(t, map[string]bool{"inspector": false, "renter": false}, out.Signatures)
	assert.Empty(t, out.Photos)
	assert.NotContains(t, out.Answers, domain.ItemPhotoFront)
}

func TestServer_handleValidate(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{})

	_, result, err := server.handleValidate(ctx, nil, Empty{})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, domain.ValidationMissingField, result.Code)
	assert.Equal(t, "client_name", result.Focus)
}

func TestServer_handleAddPhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("passes candidates to the pipeline", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "front.jpg")
		require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0}, 0o600))

		photos := &mockPhotoService{result: &domain.PhotoBatchResult{
			ItemID: domain.ItemPhotoFront, Outcome: domain.BatchComplete, Selected: 1, Added: 1, Total: 1,
		}}
		server := newTestServer(t, &Ports{Photos: photos})

		_, out, err := server.handleAddPhotos(ctx, nil, AddPhotosInput{
			ItemID: domain.ItemPhotoFront,
			Paths:  []string{path},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.BatchComplete, out.Outcome)
		assert.Equal(t, domain.ItemPhotoFront, photos.itemID)
		require.Len(t, photos.candidates, 1)
		assert.Equal(t, path, photos.candidates[0].Name)
		assert.Equal(t, "image/jpeg", photos.candidates[0].MediaType)
	})

	t.Run("no paths", func(t *testing.T) {
		server := newTestServer(t, &Ports{Photos: &mockPhotoService{}})

		_, _, err := server.handleAddPhotos(ctx, nil, AddPhotosInput{ItemID: domain.ItemPhotoFront})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("pipeline error", func(t *testing.T) {
		limitErr := &domain.PhotoLimitError{ItemID: domain.ItemPhotoRear, Limit: 5, Selected: 3, Existing: 4}
		server := newTestServer(t, &Ports{Photos: &mockPhotoService{err: limitErr}})

		_, _, err := server.handleAddPhotos(ctx, nil, AddPhotosInput{ItemID: domain.ItemPhotoRear, Paths: []string{"a.jpg"}})
		require.ErrorIs(t, err, domain.ErrPhotoLimitExceeded)
	})
}

func TestServer_handleGenerateReport(t *testing.T) {
	ctx := context.Background()
	report := &domain.Report{
		Format:   domain.ReportFormatPDF,
		FileName: "Inspection_Moto_ABC1234_20240309.pdf",
		Data:     []byte("%PDF-1.3"),
		Pages:    3,
	}

	t.Run("writes to the given directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		reports := &mockReportService{report: report}
		server := newTestServer(t, &Ports{Reports: reports})

		_, out, err := server.handleGenerateReport(ctx, nil, GenerateReportInput{OutputDir: dir})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, report.FileName), out.Path)
		assert.Equal(t, 3, out.Pages)
		assert.Equal(t, []domain.ReportFormat{domain.ReportFormatPDF}, reports.generated)

		data, err := os.ReadFile(out.Path)
		require.NoError(t, err)
		assert.Equal(t, report.Data, data)
	})

	t.Run("falls back to configured directory", func(t *testing.T) {
		dir := t.TempDir()
		settings := newSettings()
		require.NoError(t, settings.Set("report.output_dir", dir))

		reports := &mockReportService{report: report}
		server := newTestServer(t, &Ports{Reports: reports, Settings: settings})

		_, out, err := server.handleGenerateReport(ctx, nil, GenerateReportInput{Format: "XLSX"})
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(out.Path))
		assert.Equal(t, []domain.ReportFormat{domain.ReportFormatXLSX}, reports.generated)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		verr := &domain.ValidationError{Result: domain.ValidationResult{
			Code: domain.ValidationMissingSignatures, Reason: "signatures missing", Focus: "renter",
		}}
		server := newTestServer(t, &Ports{Reports: &mockReportService{err: verr}})

		_, _, err := server.handleGenerateReport(ctx, nil, GenerateReportInput{OutputDir: dir})
		require.ErrorIs(t, err, domain.ErrValidation)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("renderer error", func(t *testing.T) {
		boom := errors.New("boom")
		server := newTestServer(t, &Ports{Reports: &mockReportService{err: boom}})

		_, _, err := server.handleGenerateReport(ctx, nil, GenerateReportInput{OutputDir: t.TempDir()})
		require.ErrorIs(t, err, boom)
	})
}

package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/adapters/driven/imageproc"
	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/services"
	"github.com/custodia-labs/motocheck/internal/renderers/pdf"
	"github.com/custodia-labs/motocheck/internal/renderers/xlsx"
)

// testServices wires memory-backed services into the command tree.
func testServices(t *testing.T) Services {
	t.Helper()

	settings := services.NewSettingsService(memory.NewConfigStore())
	inspections := services.NewInspectionService(memory.NewKeyValueStore(), domain.DefaultSchema())
	s := Services{
		Inspections: inspections,
		Photos:      services.NewPhotoService(inspections, imageproc.NewCompressor(), 2),
		Reports: services.NewReportService(
			inspections, settings, nil, memory.NewReportHistoryStore(), pdf.NewRenderer(), xlsx.NewRenderer(),
		),
		Settings: settings,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(Services{}) })
	return s
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	showOutput = "text"
	resetConfirm = false
	prefillFrom = ""
	prefillInput = domain.Prefill{}
	reportFormat = "pdf"
	reportOutputDir = ""
	historyLimit = 10
	drawAppend = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// writePNG writes a small opaque PNG and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/signature"
)

var drawAppend bool

var signatureCmd = &cobra.Command{
	Use:     "signature",
	Aliases: []string{"sign"},
	Short:   "Capture inspector and renter signatures",
	Long: `Capture the signatures printed at the end of the report.

Roles are inspector and renter. Signatures are stored as 400x200 PNG
images regardless of the source size.`,
}

var signatureSetCmd = &cobra.Command{
	Use:   "set <role> <image>",
	Short: "Use an image file as a signature",
	Args:  cobra.ExactArgs(2),
	RunE:  runSignatureSet,
}

var signatureDrawCmd = &cobra.Command{
	Use:   "draw <role> <recording.json>",
	Short: "Replay recorded pen strokes as a signature",
	Long: `Replay pointer events recorded on a signature pad.

The recording is JSON:

  {"width": 400, "height": 200,
   "events": [{"type": "down", "x": 10, "y": 80},
              {"type": "move", "x": 60, "y": 40},
              {"type": "up"}]}

Event types are down, move, up, leave and clear. Coordinates are in the
recorded pad's size and are scaled to the stored image.`,
	Args: cobra.ExactArgs(2),
	RunE: runSignatureDraw,
}

var signatureClearCmd = &cobra.Command{
	Use:   "clear <role>",
	Short: "Remove a signature",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignatureClear,
}

var signatureExportCmd = &cobra.Command{
	Use:   "export <role> <file.png>",
	Short: "Write a signature to a PNG file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSignatureExport,
}

func init() {
	signatureDrawCmd.Flags().BoolVar(&drawAppend, "append", false, "draw over the existing signature instead of a blank pad")
	signatureCmd.AddCommand(signatureSetCmd, signatureDrawCmd, signatureClearCmd, signatureExportCmd)
	rootCmd.AddCommand(signatureCmd)
}

func parseRole(s string) (domain.SignatureRole, error) {
	role := domain.SignatureRole(strings.ToLower(s))
	if !role.IsValid() {
		return "", fmt.Errorf("%w: role must be inspector or renter, got %q", domain.ErrInvalidInput, s)
	}
	return role, nil
}

func runSignatureSet(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}
	role, err := parseRole(args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}
	mediaType := mimetype.Detect(data).String()
	if !strings.HasPrefix(mediaType, "image/") {
		return fmt.Errorf("%w: %s is %s", domain.ErrNotImage, args[1], mediaType)
	}

	pad, err := signature.NewPad(signature.BackingWidth, signature.BackingHeight)
	if err != nil {
		return err
	}
	if err := pad.Load(domain.EncodeImage(mediaType, data)); err != nil {
		return fmt.Errorf("failed to load %s: %w", args[1], err)
	}
	sig, err := pad.Snapshot()
	if err != nil {
		return err
	}

	if err := inspectionService.SetSignature(cmd.Context(), role, sig); err != nil {
		return fmt.Errorf("failed to save signature: %w", err)
	}
	cmd.Printf("%s signature saved\n", roleLabel(role))
	return nil
}

func runSignatureDraw(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}
	role, err := parseRole(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[1], err)
	}
	defer f.Close()
	rec, err := signature.ReadRecording(f)
	if err != nil {
		return err
	}

	var base domain.EncodedImage
	if drawAppend {
		record, err := inspectionService.Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load inspection: %w", err)
		}
		base = record.Signature(role)
	}

	sig, err := signature.Replay(rec, base)
	if err != nil {
		return fmt.Errorf("failed to replay %s: %w", args[1], err)
	}
	if err := inspectionService.SetSignature(cmd.Context(), role, sig); err != nil {
		return fmt.Errorf("failed to save signature: %w", err)
	}

	if sig.IsAbsent() {
		cmd.Printf("%s signature cleared\n", roleLabel(role))
	} else {
		cmd.Printf("%s signature saved\n", roleLabel(role))
	}
	return nil
}

func runSignatureClear(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}
	role, err := parseRole(args[0])
	if err != nil {
		return err
	}

	if err := inspectionService.SetSignature(cmd.Context(), role, ""); err != nil {
		return fmt.Errorf("failed to clear signature: %w", err)
	}
	cmd.Printf("%s signature cleared\n", roleLabel(role))
	return nil
}

func runSignatureExport(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}
	role, err := parseRole(args[0])
	if err != nil {
		return err
	}

	record, err := inspectionService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load inspection: %w", err)
	}
	sig := record.Signature(role)
	if sig.IsAbsent() {
		return fmt.Errorf("%w: no %s signature", domain.ErrNotFound, role)
	}
	_, data, err := sig.Decode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	cmd.Printf("Wrote %s\n", args[1])
	return nil
}

func roleLabel(role domain.SignatureRole) string {
	if role == domain.SignatureRenter {
		return "Renter"
	}
	return "Inspector"
}

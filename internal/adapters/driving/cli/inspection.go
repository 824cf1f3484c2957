package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

var (
	showOutput   string
	resetConfirm bool
	prefillFrom  string
	prefillInput domain.Prefill
)

var inspectionCmd = &cobra.Command{
	Use:     "inspection",
	Aliases: []string{"insp"},
	Short:   "Edit the inspection in progress",
	Long: `Commands for the inspection in progress.

Every change is saved immediately, so an interrupted inspection picks up
where it stopped.`,
}

var inspectionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the inspection record",
	Args:  cobra.NoArgs,
	RunE:  runInspectionShow,
}

var inspectionSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set an identity field",
	Long: `Set an identity field of the inspection.

Fields: client_name, renter_rg, vehicle_model, plate, color, odometer,
chassis_number, engine_number.

The odometer, chassis and engine fields also answer the matching
checklist items.`,
	Args: cobra.ExactArgs(2),
	RunE: runInspectionSet,
}

var inspectionDateCmd = &cobra.Command{
	Use:   "date <YYYY-MM-DD|today>",
	Short: "Set the inspection date",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspectionDate,
}

var inspectionAnswerCmd = &cobra.Command{
	Use:   "answer <item-id> [value]",
	Short: "Answer a checklist item",
	Long: `Answer a checklist item.

Rated items take good, fair or needs_replacement (aliases: ok, regular,
replace). Text and numeric items take the value as written. Omit the
value to clear the answer.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInspectionAnswer,
}

var inspectionNotesCmd = &cobra.Command{
	Use:   "notes [text]",
	Short: "Set the final notes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspectionNotes,
}

var inspectionPrefillCmd = &cobra.Command{
	Use:   "prefill",
	Short: "Fill renter and motorcycle details",
	Long: `Fill renter and motorcycle details from a rental.

Values come from flags or from a JSON file given with --from:

  {"renter": {"name": "...", "rg": "..."},
   "motorcycle": {"model": "...", "plate": "...", "color": "...",
                  "odometer": "...", "chassis_number": "...", "engine_number": "..."}}

Empty values leave the current fields untouched.`,
	Args: cobra.NoArgs,
	RunE: runInspectionPrefill,
}

var inspectionValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether the inspection is ready for a report",
	Args:  cobra.NoArgs,
	RunE:  runInspectionValidate,
}

var inspectionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show completion progress",
	Args:  cobra.NoArgs,
	RunE:  runInspectionStatus,
}

var inspectionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the inspection and start a new one",
	Args:  cobra.NoArgs,
	RunE:  runInspectionReset,
}

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "List the checklist items",
	Args:  cobra.NoArgs,
	RunE:  runChecklist,
}

func init() {
	inspectionShowCmd.Flags().StringVarP(&showOutput, "output", "o", "text", "output format: text, json or yaml")
	inspectionResetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "skip the confirmation prompt")

	f := inspectionPrefillCmd.Flags()
	f.StringVar(&prefillFrom, "from", "", "read values from a JSON file")
	f.StringVar(&prefillInput.Renter.Name, "renter-name", "", "renter name")
	f.StringVar(&prefillInput.Renter.RG, "renter-rg", "", "renter RG")
	f.StringVar(&prefillInput.Motorcycle.Model, "model", "", "motorcycle model")
	f.StringVar(&prefillInput.Motorcycle.Plate, "plate", "", "license plate")
	f.StringVar(&prefillInput.Motorcycle.Color, "color", "", "motorcycle color")
	f.StringVar(&prefillInput.Motorcycle.Odometer, "odometer", "", "odometer reading")
	f.StringVar(&prefillInput.Motorcycle.ChassisNumber, "chassis", "", "chassis number")
	f.StringVar(&prefillInput.Motorcycle.EngineNumber, "engine", "", "engine number")

	inspectionCmd.AddCommand(
		inspectionShowCmd,
		inspectionSetCmd,
		inspectionDateCmd,
		inspectionAnswerCmd,
		inspectionNotesCmd,
		inspectionPrefillCmd,
		inspectionValidateCmd,
		inspectionStatusCmd,
		inspectionResetCmd,
	)
	rootCmd.AddCommand(inspectionCmd, checklistCmd)
}

func requireInspections() error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}
	return nil
}

func runInspectionShow(cmd *cobra.Command, _ []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	record, err := inspectionService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load inspection: %w", err)
	}

	switch showOutput {
	case "json":
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode inspection: %w", err)
		}
		cmd.Println(string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode inspection: %w", err)
		}
		cmd.Print(string(data))
		return nil
	case "text", "":
		printInspection(cmd, record, inspectionService.Schema())
		return nil
	default:
		return fmt.Errorf("unknown output format %q", showOutput)
	}
}

func printInspection(cmd *cobra.Command, record *domain.Inspection, schema *domain.Schema) {
	cmd.Println("Inspection")
	cmd.Println("==========")
	cmd.Printf("  ID:   %s\n", record.ID)
	cmd.Printf("  Date: %s\n", orDash(record.Date.Display()))
	cmd.Println()

	cmd.Println("[Identity]")
	for _, f := range domain.IdentityFields() {
		cmd.Printf("  %-10s %s\n", f.Label()+":", orDash(record.Identity.Get(f)))
	}

	for _, category := range schema.Categories() {
		cmd.Println()
		cmd.Printf("[%s]\n", category)
		for _, item := range schema.ItemsIn(category) {
			line := fmt.Sprintf("  %-24s %s", item.Name, answerText(record, item))
			if n := len(record.Photos[item.ID]); n > 0 {
				line += fmt.Sprintf("  (%d photos)", n)
			}
			cmd.Println(line)
		}
	}

	cmd.Println()
	cmd.Println("[Signatures]")
	cmd.Printf("  Inspector: %s\n", presence(record.InspectorSignature))
	cmd.Printf("  Renter:    %s\n", presence(record.RenterSignature))
}

func answerText(record *domain.Inspection, item domain.ChecklistItem) string {
	answer := record.AnswerFor(item)
	switch item.Kind {
	case domain.ItemKindPhotoOnly:
		return ""
	case domain.ItemKindRated:
		if answer.IsEmpty() {
			return "-"
		}
		return answer.Condition.Label()
	default:
		return orDash(answer.Text)
	}
}

func runInspectionSet(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	field := domain.IdentityField(args[0])
	if err := inspectionService.SetIdentityField(cmd.Context(), field, args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", field, err)
	}
	cmd.Printf("%s set to %q\n", field.Label(), args[1])
	return nil
}

func runInspectionDate(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	date := domain.Today()
	if args[0] != "today" {
		parsed, err := domain.ParseDate(args[0])
		if err != nil {
			return err
		}
		date = parsed
	}
	if err := inspectionService.SetDate(cmd.Context(), date); err != nil {
		return fmt.Errorf("failed to set date: %w", err)
	}
	cmd.Printf("Date set to %s\n", orDash(date.Display()))
	return nil
}

func runInspectionAnswer(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	item, ok := inspectionService.Schema().Item(args[0])
	if !ok {
		return fmt.Errorf("%w: %s (run 'motocheck checklist' to list items)", domain.ErrUnknownItem, args[0])
	}
	var value string
	if len(args) == 2 {
		value = args[1]
	}
	answer, err := domain.ParseAnswer(item, value)
	if err != nil {
		return err
	}
	if err := inspectionService.SetAnswer(cmd.Context(), item.ID, answer); err != nil {
		return fmt.Errorf("failed to answer %s: %w", item.ID, err)
	}

	if answer.IsEmpty() {
		cmd.Printf("%s cleared\n", item.Name)
		return nil
	}
	if item.Kind == domain.ItemKindRated {
		cmd.Printf("%s: %s\n", item.Name, answer.Condition.Label())
		return nil
	}
	cmd.Printf("%s: %s\n", item.Name, answer.Text)
	return nil
}

func runInspectionNotes(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	var notes string
	if len(args) == 1 {
		notes = args[0]
	}
	if err := inspectionService.SetFinalNotes(cmd.Context(), notes); err != nil {
		return fmt.Errorf("failed to set notes: %w", err)
	}
	if strings.TrimSpace(notes) == "" {
		cmd.Println("Final notes cleared")
	} else {
		cmd.Println("Final notes saved")
	}
	return nil
}

func runInspectionPrefill(cmd *cobra.Command, _ []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	p := prefillInput
	if prefillFrom != "" {
		data, err := os.ReadFile(prefillFrom)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", prefillFrom, err)
		}
		var fromFile domain.Prefill
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", prefillFrom, err)
		}
		p = mergePrefill(fromFile, prefillInput)
	}

	if err := inspectionService.Prefill(cmd.Context(), p); err != nil {
		return fmt.Errorf("failed to prefill inspection: %w", err)
	}
	cmd.Println("Inspection prefilled")
	return nil
}

// mergePrefill lets flag values override values read from a file.
func mergePrefill(base, override domain.Prefill) domain.Prefill {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return domain.Prefill{
		Renter: domain.Renter{
			Name: pick(base.Renter.Name, override.Renter.Name),
			RG:   pick(base.Renter.RG, override.Renter.RG),
		},
		Motorcycle: domain.Motorcycle{
			Model:         pick(base.Motorcycle.Model, override.Motorcycle.Model),
			Plate:         pick(base.Motorcycle.Plate, override.Motorcycle.Plate),
			Color:         pick(base.Motorcycle.Color, override.Motorcycle.Color),
			Odometer:      pick(base.Motorcycle.Odometer, override.Motorcycle.Odometer),
			ChassisNumber: pick(base.Motorcycle.ChassisNumber, override.Motorcycle.ChassisNumber),
			EngineNumber:  pick(base.Motorcycle.EngineNumber, override.Motorcycle.EngineNumber),
		},
	}
}

func runInspectionValidate(cmd *cobra.Command, _ []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	result, err := inspectionService.Validate(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to validate inspection: %w", err)
	}
	if result.OK {
		cmd.Println("Ready for report")
		return nil
	}
	cmd.Println("Not ready for report")
	cmd.Printf("  Reason: %s\n", result.Reason)
	cmd.Printf("  Fix:    %s\n", result.Focus)
	return nil
}

func runInspectionStatus(cmd *cobra.Command, _ []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	status, err := inspectionService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load status: %w", err)
	}
	cmd.Println("Progress")
	cmd.Println("--------")
	cmd.Printf("  Items answered:   %d of %d\n", status.Answered, status.Required)
	cmd.Printf("  Photos attached:  %d\n", status.PhotoCount)
	cmd.Printf("  Mandatory photos: %s\n", yesNo(status.PhotoComplete))
	cmd.Printf("  Signed:           %s\n", yesNo(status.Signed))
	return nil
}

func runInspectionReset(cmd *cobra.Command, _ []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	if !resetConfirm {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to reset without a terminal; pass --yes")
		}
		cmd.Print("Discard the current inspection? [y/N]: ")
		answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
		if answer != "y" && answer != "yes" {
			cmd.Println("Aborted")
			return nil
		}
	}

	if err := inspectionService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset inspection: %w", err)
	}
	cmd.Println("Inspection reset")
	return nil
}

func runChecklist(cmd *cobra.Command, _ []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	schema := inspectionService.Schema()
	mandatory := make(map[string]bool)
	for _, id := range schema.MandatoryPhotoItems() {
		mandatory[id] = true
	}

	for i, category := range schema.Categories() {
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("[%s]\n", category)
		for _, item := range schema.ItemsIn(category) {
			line := fmt.Sprintf("  %-20s %-24s %s", item.ID, item.Name, item.Kind.Description())
			if mandatory[item.ID] {
				line += " (photo required)"
			}
			cmd.Println(line)
		}
	}
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func presence(sig domain.EncodedImage) string {
	if sig.IsAbsent() {
		return "missing"
	}
	return "captured"
}

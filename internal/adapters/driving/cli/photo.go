package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motocheck/internal/connectors/filesystem"
	"github.com/custodia-labs/motocheck/internal/core/domain"
)

var watchDebounce time.Duration

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage checklist photos",
	Long: `Attach, list and remove photos of checklist items.

Each item holds at most 5 photos. Photos are resized to fit 1024x1024
and recompressed before they are stored.`,
}

var photoAddCmd = &cobra.Command{
	Use:   "add <item-id> <file>...",
	Short: "Attach photos to an item",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPhotoAdd,
}

var photoListCmd = &cobra.Command{
	Use:   "list [item-id]",
	Short: "List attached photos",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPhotoList,
}

var photoRemoveCmd = &cobra.Command{
	Use:   "remove <item-id> <number>",
	Short: "Remove a photo by its number in 'photo list'",
	Args:  cobra.ExactArgs(2),
	RunE:  runPhotoRemove,
}

var photoWatchCmd = &cobra.Command{
	Use:   "watch <item-id> <folder>",
	Short: "Attach photos dropped into a folder",
	Long: `Watch a folder and attach every image copied into it to an item.

Files are picked up once the folder has been quiet for the debounce
interval. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(2),
	RunE: runPhotoWatch,
}

func init() {
	photoWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", filesystem.DefaultDebounce, "quiet period before a batch is attached")
	photoCmd.AddCommand(photoAddCmd, photoListCmd, photoRemoveCmd, photoWatchCmd)
	rootCmd.AddCommand(photoCmd)
}

func runPhotoAdd(cmd *cobra.Command, args []string) error {
	if photoService == nil {
		return errors.New("photo service not configured")
	}

	return addPhotoFiles(cmd.Context(), cmd, args[0], args[1:])
}

func addPhotoFiles(ctx context.Context, cmd *cobra.Command, itemID string, paths []string) error {
	result, err := photoService.AddPhotos(ctx, itemID, filesystem.Candidates(paths))
	if err != nil {
		if result != nil {
			printRejected(cmd, result)
		}
		var limitErr *domain.PhotoLimitError
		if errors.As(err, &limitErr) {
			return fmt.Errorf("%s already has %d of %d photos; %d more selected",
				itemID, limitErr.Existing, limitErr.Limit, limitErr.Selected)
		}
		return fmt.Errorf("failed to add photos: %w", err)
	}

	printBatch(cmd, result)
	return nil
}

func printBatch(cmd *cobra.Command, result *domain.PhotoBatchResult) {
	cmd.Printf("%s (%d on %s)\n", result.Summary(), result.Total, result.ItemID)
	printRejected(cmd, result)
	for _, r := range result.Failed {
		cmd.Printf("  failed %s: %s\n", r.Name, r.Reason)
	}
	for _, w := range result.Warnings {
		cmd.Printf("  warning: %s\n", w)
	}
}

func printRejected(cmd *cobra.Command, result *domain.PhotoBatchResult) {
	for _, r := range result.Rejected {
		cmd.Printf("  skipped %s: %s\n", r.Name, r.Reason)
	}
}

func runPhotoList(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	record, err := inspectionService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load inspection: %w", err)
	}
	schema := inspectionService.Schema()

	items := schema.Items()
	if len(args) == 1 {
		item, ok := schema.Item(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownItem, args[0])
		}
		items = []domain.ChecklistItem{item}
	}

	total := 0
	for _, item := range items {
		photos := record.Photos[item.ID]
		if len(photos) == 0 && len(args) == 0 {
			continue
		}
		cmd.Printf("%s (%d/%d)\n", item.Name, len(photos), domain.MaxPhotosPerItem)
		for i, p := range photos {
			cmd.Printf("  %d. %s, %s\n", i+1, p.MediaType(), formatBytes(p.Size()))
		}
		total += len(photos)
	}
	if total == 0 && len(args) == 0 {
		cmd.Println("No photos attached")
	}
	return nil
}

func runPhotoRemove(cmd *cobra.Command, args []string) error {
	if err := requireInspections(); err != nil {
		return err
	}

	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: photo number must be an integer", domain.ErrInvalidInput)
	}
	if err := inspectionService.RemovePhoto(cmd.Context(), args[0], n-1); err != nil {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	cmd.Printf("Removed photo %d from %s\n", n, args[0])
	return nil
}

func runPhotoWatch(cmd *cobra.Command, args []string) error {
	if photoService == nil {
		return errors.New("photo service not configured")
	}
	if err := requireInspections(); err != nil {
		return err
	}

	itemID, dir := args[0], args[1]
	if _, ok := inspectionService.Schema().Item(itemID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}

	w, err := filesystem.NewWatcher(dir, filesystem.WatcherOptions{
		Debounce: watchDebounce,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for %s photos (Ctrl+C to stop)\n", dir, itemID)
	return w.Run(cmd.Context(), func(ctx context.Context, paths []string) error {
		return addPhotoFiles(ctx, cmd, itemID, paths)
	})
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

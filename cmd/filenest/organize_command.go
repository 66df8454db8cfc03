package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Run one organize pass over a directory",
		Long:  "Classifies every top-level file in the directory and moves it into its category subfolder. With no argument the configured watch directory is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dir := ctx.targetDir(args)
			org, cleanup := ctx.newOrganizer()
			defer cleanup()

			var bar *pb.ProgressBar
			if !noProgress {
				org.OnProgress = func(processed, total int) {
					if bar == nil {
						bar = pb.StartNew(total)
					}
					bar.SetCurrent(int64(processed))
				}
			}

			result, err := org.OrganizeDirectory(runCtx, dir, dryRun)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			label := "Organized"
			if dryRun {
				label = "Would organize"
			}
			fmt.Fprintf(out, "%s %d file(s) in %s (%d skipped, %d error(s), %s)\n",
				label, result.Organized, dir, result.Skipped, result.Errors,
				result.Duration.Round(0))

			if dryRun && len(result.Moves) > 0 {
				rows := make([][]string, 0, len(result.Moves))
				for _, move := range result.Moves {
					rows = append(rows, []string{
						filepath.Base(move.SourcePath),
						move.Category,
						move.TargetPath,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Category", "Target"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
			}

			if result.Errors > 0 {
				return fmt.Errorf("%d file(s) could not be organized", result.Errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report intended moves without touching the filesystem")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently performed moves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.RecentMoves(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No moves recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				kind := "moved"
				if rec.DryRun {
					kind = "dry-run"
				}
				rows = append(rows, []string{
					rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
					kind,
					filepath.Base(rec.SourcePath),
					rec.Category,
					rec.TargetPath,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Kind", "File", "Category", "Target"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to show")

	return cmd
}

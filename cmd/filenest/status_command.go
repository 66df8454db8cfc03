package main

import (
	"fmt"
	"sort"

	"github.com/Rizirfan/FileNest/filenest/organize"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Show the organized state of a directory",
		Long:  "Lists how many files sit in each category folder, at the root, and under protection.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ctx.targetDir(args)
			org, cleanup := ctx.newOrganizer()
			defer cleanup()

			snap, err := org.Snapshot(cmd.Context(), dir)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(snap.Categories))
			for name := range snap.Categories {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([][]string, 0, len(names)+2)
			for _, name := range names {
				files := snap.Categories[name]
				rows = append(rows, []string{name, fmt.Sprintf("%d", len(files)), humanSize(totalSize(files))})
			}
			if len(snap.Protected) > 0 {
				rows = append(rows, []string{"protected_files", fmt.Sprintf("%d", len(snap.Protected)), humanSize(totalSize(snap.Protected))})
			}
			rows = append(rows, []string{organize.CategoryRoot, fmt.Sprintf("%d", len(snap.RootFiles)), humanSize(totalSize(snap.RootFiles))})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s — %d file(s)\n", snap.Root, snap.TotalFiles)
			fmt.Fprintln(out, renderTable(
				[]string{"Folder", "Files", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

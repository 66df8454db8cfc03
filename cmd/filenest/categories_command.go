package main

import (
	"fmt"
	"strings"

	"github.com/Rizirfan/FileNest/filenest/organize"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the category table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := organize.NewRegistry(ctx.cfg.FileNest.CategoryTable())

			rows := make([][]string, 0)
			for _, cat := range registry.Categories() {
				rows = append(rows, []string{
					cat.Name,
					fmt.Sprintf("%d", len(cat.Extensions)),
					strings.Join(cat.Extensions, " "),
				})
			}
			rows = append(rows, []string{organize.CategoryOthers, "-", "everything unmatched"})

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Category", "Count", "Extensions"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

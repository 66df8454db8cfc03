package main

import (
	"fmt"
	"path/filepath"

	internal "github.com/Rizirfan/FileNest/filenest"

	"github.com/spf13/cobra"
)

func newProtectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "protect <file>...",
		Short: "Move files into the protected folder",
		Long:  "Moves files into the reserved protected_files folder under the watch directory, where organize passes never touch them.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, cleanup := ctx.newOrganizer()
			defer cleanup()

			watchDir := ctx.cfg.FileNest.WatchDir
			out := cmd.OutOrStdout()

			for _, path := range args {
				rec, err := org.Protect(cmd.Context(), path, watchDir)
				if err != nil {
					return err
				}
				if rec == nil {
					fmt.Fprintf(out, "Skipped %s: no such file\n", path)
					continue
				}
				fmt.Fprintf(out, "Protected %s\n", filepath.Base(rec.TargetPath))
			}
			return nil
		},
	}
}

func newUnprotectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unprotect <file>...",
		Short: "Move files out of the protected folder",
		Long:  "Moves files from the protected_files folder back to the watch directory root, where the next organize pass will route them normally.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, cleanup := ctx.newOrganizer()
			defer cleanup()

			watchDir := ctx.cfg.FileNest.WatchDir
			protectedDir := filepath.Join(watchDir, internal.ProtectedDirName)
			out := cmd.OutOrStdout()

			for _, arg := range args {
				path := arg
				// A bare name refers to a file inside the protected folder.
				if filepath.Base(path) == path {
					path = filepath.Join(protectedDir, path)
				}
				rec, err := org.Unprotect(cmd.Context(), path, watchDir)
				if err != nil {
					return err
				}
				if rec == nil {
					fmt.Fprintf(out, "Skipped %s: no such file\n", arg)
					continue
				}
				fmt.Fprintf(out, "Restored %s\n", filepath.Base(rec.TargetPath))
			}
			return nil
		},
	}
}

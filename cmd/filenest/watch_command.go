package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rizirfan/FileNest/filenest/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var poll bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Continuously organize a directory as files arrive",
		Long:  "Runs one organize pass, then keeps the directory organized as new files appear. Uses filesystem notifications by default; --poll falls back to interval re-scanning.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dir := ctx.targetDir(args)
			org, cleanup := ctx.newOrganizer()
			defer cleanup()

			cfg := watch.DefaultConfig()
			cfg.SettleDelay = ctx.cfg.FileNest.SettleDelay()
			cfg.PollInterval = ctx.cfg.FileNest.PollInterval()
			if interval > 0 {
				cfg.PollInterval = interval
			}

			mode := watch.ModeNotify
			if poll {
				mode = watch.ModePoll
			}

			controller := watch.NewController(org, cfg)
			session, err := controller.Start(runCtx, dir, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			baseline := controller.Baseline()
			fmt.Fprintf(out, "Watching %s (%s mode, session %s)\n", session.Dir, session.Mode, session.ID)
			if baseline != nil {
				fmt.Fprintf(out, "Initial pass: %d organized, %d skipped, %d error(s)\n",
					baseline.Organized, baseline.Skipped, baseline.Errors)
			}
			fmt.Fprintln(out, "Press Ctrl+C to stop.")

			<-runCtx.Done()
			fmt.Fprintln(out, "Stopping...")

			if err := controller.Stop(); err != nil {
				return err
			}
			controller.Wait()
			fmt.Fprintln(out, "Watch session stopped.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&poll, "poll", false, "Use interval re-scanning instead of filesystem notifications")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (overrides the configured value)")

	return cmd
}

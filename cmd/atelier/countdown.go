package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"atelier/internal/countdown"
	"atelier/internal/param"
)

var (
	countdownTo     string
	countdownFollow bool
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Print the time left until a time of day",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if countdownTo == "" {
			return fmt.Errorf("--to is required")
		}
		target := param.ParseTimeOfDay(countdownTo)
		if !countdownFollow {
			fmt.Fprintln(cmd.OutOrStdout(), countdownLine(target, time.Now()))
			return nil
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		followCountdown(ctx, cmd, target)
		return nil
	},
}

func init() {
	countdownCmd.Flags().StringVar(&countdownTo, "to", "", "target time of day, H:MM in 24-hour form")
	countdownCmd.Flags().BoolVarP(&countdownFollow, "follow", "f", false, "keep printing every second")
	rootCmd.AddCommand(countdownCmd)
}

func countdownLine(target param.TimeOfDay, now time.Time) string {
	return fmt.Sprintf("%s (at %s)", countdown.Format(target, now), countdown.AtLabel(target))
}

func followCountdown(ctx context.Context, cmd *cobra.Command, target param.TimeOfDay) {
	out := cmd.OutOrStdout()
	countdown.Run(ctx, countdown.DefaultTick, func(now time.Time) {
		fmt.Fprintf(out, "\r%s   ", countdownLine(target, now))
	})
	fmt.Fprintln(out)
}

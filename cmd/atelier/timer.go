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
)

var timerMinutes string

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run the full-screen timer in the terminal",
	Long: `Run the full-screen timer in the terminal. The timer starts right away ` +
		`and keeps counting past zero until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		runTimer(ctx, cmd, countdown.ParseMinutes(timerMinutes), time.Now)
		return nil
	},
}

func init() {
	timerCmd.Flags().StringVarP(&timerMinutes, "minutes", "m", "", "timer length in minutes (default 2)")
	rootCmd.AddCommand(timerCmd)
}

func runTimer(ctx context.Context, cmd *cobra.Command, minutes float64, now func() time.Time) {
	t := countdown.NewTimer(minutes)
	t.Press(now())

	out := cmd.OutOrStdout()
	countdown.Run(ctx, countdown.DefaultTick, func(time.Time) {
		at := now()
		mark := ""
		if t.Expired(at) {
			mark = " overtime"
		}
		fmt.Fprintf(out, "\r%s%s   ", t.Text(at), mark)
	})
	fmt.Fprintln(out)
}

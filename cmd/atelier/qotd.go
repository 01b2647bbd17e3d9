package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"atelier/internal/logger"
	"atelier/internal/qotd"
)

var qotdLocation string

var qotdCmd = &cobra.Command{
	Use:   "qotd",
	Short: "Ask for question-of-the-day suggestions for today",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
		gen := newGenerator(cfg.QOTD, log)
		if gen == nil {
			return fmt.Errorf("set OPENAI_API_KEY or qotd.api_key to ask for suggestions")
		}

		st := qotd.NewWidget(gen, log.Named("qotd")).Load(cmd.Context(), qotdLocation, time.Now())
		if st.State == qotd.StateError {
			return fmt.Errorf("suggestions unavailable: %s", st.Error)
		}
		out := cmd.OutOrStdout()
		for _, c := range st.Categories {
			fmt.Fprintf(out, "%s:\n", c.Name)
			for _, q := range c.Questions {
				fmt.Fprintf(out, "  - %s\n", q)
			}
		}
		return nil
	},
}

func init() {
	qotdCmd.Flags().StringVar(&qotdLocation, "location", "Vancouver, BC, Canada", "location the questions should relate to")
	rootCmd.AddCommand(qotdCmd)
}

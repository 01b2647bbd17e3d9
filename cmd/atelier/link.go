package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atelier/internal/param"
	"atelier/internal/preset"
)

var linkCmd = &cobra.Command{
	Use:   "link PRESET STAGE",
	Short: "Print the board URL for a preset stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		engine := preset.NewEngine(preset.DefaultCatalog(), nil)
		link, ok, err := engine.Link(cfg.Board.BaseURL, param.ParseMode(cfg.Board.URLMode), args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown preset %q or stage %q", args[0], args[1])
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in presets and their stages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, p := range preset.DefaultCatalog().Presets {
			fmt.Fprintln(out, p.Name)
			for _, st := range p.Stages {
				fmt.Fprintf(out, "  %s\n", st.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd, presetsCmd)
}

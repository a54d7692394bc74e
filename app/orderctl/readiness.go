package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Print which order fields are still missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		_, utts, err := loadFixture(path)
		if err != nil {
			return err
		}
		return runReadiness(cmd.OutOrStdout(), utts)
	},
}

type readinessOutput struct {
	State   extraction.State   `json:"state"`
	Missing []extraction.Field `json:"missing"`
	Prompts []string           `json:"prompts"`
}

func runReadiness(w io.Writer, utts []models.Utterance) error {
	r := extraction.Evaluate(extraction.New(extraction.DefaultConfig()).Extract(utts))
	return writeJSON(w, readinessOutput{
		State:   r.State,
		Missing: append([]extraction.Field{}, r.Missing...),
		Prompts: r.Prompts(),
	})
}

func init() {
	rootCmd.AddCommand(readinessCmd)
}

package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the order recovered from a transcript",
	Long: `Extract runs the rule chains over every turn of the fixture and prints the
resulting order as JSON. With --explain the winning rule and raw match of each
recovered field are printed too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		explain, _ := cmd.Flags().GetBool("explain")

		f, utts, err := loadFixture(path)
		if err != nil {
			return err
		}
		price := viper.GetFloat64("unit_price")
		if !cmd.Flags().Changed("unit-price") && f.UnitPrice > 0 {
			price = f.UnitPrice
		}
		return runExtract(cmd.OutOrStdout(), f.RoomID, utts, price, explain)
	},
}

type extractOutput struct {
	Order      models.Order           `json:"order"`
	Readiness  extraction.Readiness   `json:"readiness"`
	Candidates []extraction.Candidate `json:"candidates,omitempty"`
}

func runExtract(w io.Writer, roomID string, utts []models.Utterance, unitPrice float64, explain bool) error {
	ex := extraction.New(extraction.Config{UnitPrice: unitPrice})
	order, cands := ex.Explain(utts)
	order.RoomID = roomID

	out := extractOutput{Order: order, Readiness: extraction.Evaluate(order)}
	if explain {
		out.Candidates = cands
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	extractCmd.Flags().Float64("unit-price", extraction.DefaultUnitPrice, "catalog price per copy")
	extractCmd.Flags().Bool("explain", false, "include the winning rule of every recovered field")
	_ = viper.BindPFlag("unit_price", extractCmd.Flags().Lookup("unit-price"))

	rootCmd.AddCommand(extractCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
)

// layoutCmd extracts visuals using the native layout strategy.
var layoutCmd = &cobra.Command{
	Use:   "layout [pdf files...]",
	Short: "Extract visuals from the PDF content streams",
	Long: `Extract embedded images and their captions directly from the PDF
content streams. Element positions come out of the document in points,
so no rasterization or OCR engine is needed.

Examples:
  visex layout thesis.pdf
  visex layout thesis.pdf --direction down --offset 4 --keywords figure,figuur
  visex layout *.pdf --output-dir results --format both`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		applyExtractionFlags(cmd, cfg, &cfg.Layout.Caption, &cfg.Layout.Image)
		return runExtraction(cmd, args, cfg, "layout")
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	addExtractionFlags(layoutCmd)
}

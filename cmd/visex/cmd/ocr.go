package cmd

import (
	"github.com/spf13/cobra"
)

// ocrCmd extracts visuals using the raster strategy.
var ocrCmd = &cobra.Command{
	Use:   "ocr [pdf files...]",
	Short: "Extract visuals by rasterizing pages and mining OCR output",
	Long: `Rasterize every page, run the OCR engine over it, and mine the hOCR
output for image-like regions and their captions. Useful for scanned
documents where the layout strategy finds nothing. Requires pdftoppm
and tesseract on the PATH.

Examples:
  visex ocr thesis.pdf
  visex ocr thesis.pdf --resolution 250 --workers 4
  visex ocr thesis.pdf --overlay`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		applyExtractionFlags(cmd, cfg, &cfg.OCR.Caption, &cfg.OCR.Image)

		if cmd.Flags().Changed("resolution") {
			cfg.OCR.Resolution, _ = cmd.Flags().GetInt("resolution")
		}
		if cmd.Flags().Changed("workers") {
			cfg.Batch.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if cmd.Flags().Changed("overlay") {
			cfg.Output.Overlay, _ = cmd.Flags().GetBool("overlay")
		}
		if cmd.Flags().Changed("tesseract-bin") {
			cfg.OCR.Binary, _ = cmd.Flags().GetString("tesseract-bin")
		}
		if cmd.Flags().Changed("tesseract-flags") {
			cfg.OCR.Tesseract, _ = cmd.Flags().GetString("tesseract-flags")
		}

		return runExtraction(cmd, args, cfg, "ocr")
	},
}

func init() {
	rootCmd.AddCommand(ocrCmd)
	addExtractionFlags(ocrCmd)
	ocrCmd.Flags().IntP("resolution", "r", 0, "rasterization resolution in DPI (default from config)")
	ocrCmd.Flags().IntP("workers", "w", 0, "page workers (0 means one per CPU)")
	ocrCmd.Flags().Bool("overlay", false, "write debug page images with detected boxes drawn in")
	ocrCmd.Flags().String("tesseract-bin", "", "tesseract executable path")
	ocrCmd.Flags().String("tesseract-flags", "", "extra flags passed to tesseract")
}

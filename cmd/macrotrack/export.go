package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/internal/service"
)

var (
	exportOutput string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the food log",
	Long: `Export logged meals and foods.

FORMATS:

  csv    One row per food (spreadsheet friendly)
  json   Full document with per-meal totals
  yaml   Same document as YAML

EXAMPLES:

  macrotrack export csv                          # Whole log to stdout
  macrotrack export json -o backup.json          # Save to file
  macrotrack export yaml --from 2024-03-01 --to 2024-03-31`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := service.ParseExportFormat(args[0])
		if err != nil {
			return err
		}
		file, err := services.Export.Export(cmd.Context(), currentUser.ID, format, exportFrom, exportTo)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err := os.Stdout.Write(file.Data)
			return err
		}
		if err := os.WriteFile(exportOutput, file.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "first day to include (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "last day to include (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}

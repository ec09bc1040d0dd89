// Command aggpack generates 2D random aggregate packings from a JSON
// configuration and exports them to CSV, XLSX, DXF and PDF.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aggpack",
		Short: "2D random aggregate packing generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(initCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [config-path]",
		Short: "Run the packing engine and export the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], opts)
		},
	}

	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed override (0 = time-based)")
	cmd.Flags().StringVar(&opts.index, "index", "", "spatial index override (quadtree, kdtree)")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the particle table as CSV")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write the particle table as XLSX")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "write a layered CAD drawing as DXF")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a drawing and statistics report as PDF")
	cmd.Flags().StringVar(&opts.cardPath, "runcard", "", "write a QR-coded run card as PDF")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-path]",
		Short: "Validate a packing configuration without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [config-path]",
		Short: "Write a default configuration to start from",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInit(args[0])
		},
	}
}

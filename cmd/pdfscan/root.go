package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pdfscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfscan",
		Short: "Capture PDF pages from a browser as numbered screenshots",
		Long: `pdfscan captures the pages of a PDF document open in a browser,
saving one screenshot per page to a destination folder.

It launches a visible browser window, waits while you log in and open
the PDF, then pages through the document automatically.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

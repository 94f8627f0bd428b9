package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "portfolio",
	Short:   "Anup Kumar Tiwari's portfolio site",
	Long:    "Serves the single-page portfolio with live scroll, reveal and contact updates, or exports it as static HTML.",
	Version: version,
	// Running without a subcommand serves the site.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

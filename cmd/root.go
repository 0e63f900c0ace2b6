package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "barpos",
	Short: "BarPOS backend CLI",
	Long:  "Maintenance commands for the BarPOS backend: migrations, seed data and cron jobs.",
}

// Execute runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

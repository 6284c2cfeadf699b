package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const service = "catalog"

var configFile string

var rootCmd = &cobra.Command{
	Use:          service,
	Short:        "In-memory product catalog API",
	Long:         "Serves a token-protected REST API over an in-memory product catalog.",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(routesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

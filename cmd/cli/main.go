package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL string = "http://localhost:3000"
	output string = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "tunegraph",
	Short: "Tunegraph CLI - exercise the recommendation API",
	Long: `Tunegraph CLI provides command-line access to a running Tunegraph server.
Record follows and listens, fetch recommendations, and reset the user store.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

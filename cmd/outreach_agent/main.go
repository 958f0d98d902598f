// Package main provides the entry point for the faculty outreach agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outreach_agent",
	Short: "Faculty research outreach agent",
	Long:  "outreach_agent scrapes university faculty directories, summarizes each professor's research focus, and drafts a personalized outreach email per faculty member matched against the applicant's resume.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

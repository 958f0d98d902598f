package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/config"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/sources"
)

var sourcesConfigPath string

var sourcesCommand = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources and registered adapter kinds",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("Registered adapter kinds:")
		for _, kind := range sources.Kinds() {
			fmt.Printf("  %s\n", kind)
		}

		if sourcesConfigPath == "" {
			return nil
		}

		cfg, err := config.LoadConfig(sourcesConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Printf("\nConfigured sources (%d):\n", len(cfg.Sources))
		for _, spec := range cfg.Sources {
			marker := ""
			if !spec.AdapterKind.Valid() {
				marker = "  [unknown adapter kind]"
			}
			fmt.Printf("  %-35s %-10s %s%s\n", spec.InstitutionName, spec.AdapterKind, spec.DirectoryURL, marker)
		}
		return nil
	},
}

func init() {
	sourcesCommand.Flags().StringVar(&sourcesConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(sourcesCommand)
}

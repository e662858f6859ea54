package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"casefold-hq/triage/pkg/catalog"
)

var validateFlags struct {
	catalogPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and catalog files",
	Long: `Validate the configuration file and the reference-data catalog
without opening any case.

The catalog check verifies internal consistency: every topic referenced
by the risk domain map exists, every program criterion points at a known
indicator topic, and domain weights are positive.

Examples:
  # Validate the default config
  triage validate

  # Validate a specific config and catalog override file
  triage validate --config /etc/triage/config.yaml --catalog catalog.yaml`,
	RunE: validateFiles,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.catalogPath, "catalog", "", "catalog override file (defaults to config's catalog.path)")
}

func validateFiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Println("✓ Configuration valid")

	catalogPath := validateFlags.catalogPath
	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}

	if catalogPath == "" {
		if err := catalog.Default().Validate(); err != nil {
			return fmt.Errorf("built-in catalog invalid: %w", err)
		}
		fmt.Println("✓ Built-in catalog valid")
		return nil
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	if err := cat.Validate(); err != nil {
		return err
	}
	fmt.Printf("✓ Catalog valid: %d topics, %d programs, %d risk domains\n",
		len(cat.Topics()), len(cat.Programs()), len(cat.Domains()))
	return nil
}

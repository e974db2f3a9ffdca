//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for cohort-report.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/irynapp/cohort-analysis/internal/config"
	"github.com/irynapp/cohort-analysis/internal/logging"
	"github.com/irynapp/cohort-analysis/internal/timezone"
	"github.com/irynapp/cohort-analysis/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "cohort-report",
		Short: "Weekly cohort retention reports from customers and orders data",
		Long: `cohort-report buckets customers into weekly signup cohorts and, for
each cohort, counts how many distinct customers placed at least one order
within successive 7-day windows measured from signup.

Inputs are customers and orders tables, read from CSV files or from
PostgreSQL; the report is written as a CSV table with one row per cohort
and one column pair per elapsed-time bucket.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./cohort-report.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	zonesCmd.Flags().StringVar(&zonesFilter, "filter", "",
		"only list zones containing this substring")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(zonesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var zonesFilter string

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the timezone catalog",
	Long: `List the common timezone identifiers accepted by --timezone. The
--filter flag narrows the list to matching names.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filter := strings.ToLower(zonesFilter)
		for _, zone := range timezone.Catalog() {
			if filter != "" && !strings.Contains(strings.ToLower(zone), filter) {
				continue
			}
			cmd.Println(zone)
		}
	},
}

//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for cohort-report.
// Configuration is loaded from config files and CLI flags; CLI flags take
// precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/timezone"
)

// Config holds all configuration for cohort-report.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// RunConfig holds configuration for report generation.
type RunConfig struct {
	// Customers and Orders are the input CSV paths.
	Customers string `mapstructure:"customers"`
	Orders    string `mapstructure:"orders"`

	// Connection is a PostgreSQL connection string; when set, inputs are
	// loaded from CustomersTable and OrdersTable instead of CSV files.
	Connection     string `mapstructure:"connection"`
	CustomersTable string `mapstructure:"customers_table"`
	OrdersTable    string `mapstructure:"orders_table"`

	// Output is the report file path.
	Output string `mapstructure:"output"`

	// Cohorts is the requested number of signup cohorts.
	Cohorts int `mapstructure:"cohorts"`

	// Timezone is the display timezone for window and bucket arithmetic.
	Timezone string `mapstructure:"timezone"`

	// FirstTime adds first-time-orderer lines to report cells.
	FirstTime bool `mapstructure:"first_time"`
}

// SampleConfig holds configuration for sample data generation.
type SampleConfig struct {
	// Customers and Orders are the CSV paths to write.
	Customers string `mapstructure:"customers"`
	Orders    string `mapstructure:"orders"`

	// Size is the number of customers to generate.
	Size int `mapstructure:"size"`

	// Weeks is the signup range span in weeks.
	Weeks int `mapstructure:"weeks"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Run: RunConfig{
			CustomersTable: "customers",
			OrdersTable:    "orders",
			Output:         "output.csv",
			Cohorts:        8,
			Timezone:       "US/Pacific",
		},
		Sample: SampleConfig{
			Customers: "customers.csv",
			Orders:    "orders.csv",
			Size:      500,
			Weeks:     12,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./cohort-report.yaml
// 3. ~/.config/cohort-report/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("cohort-report")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "cohort-report"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateRun checks configuration required for the run command. All
// failures here happen before any input is read or output written.
func (c *Config) ValidateRun() error {
	haveCSV := c.Run.Customers != "" || c.Run.Orders != ""
	haveDB := c.Run.Connection != ""

	switch {
	case haveCSV && haveDB:
		return fmt.Errorf("customers/orders files and a connection string are mutually exclusive")
	case haveDB:
		if c.Run.CustomersTable == "" || c.Run.OrdersTable == "" {
			return fmt.Errorf("customers_table and orders_table are required with a connection string")
		}
	case haveCSV:
		if c.Run.Customers == "" || c.Run.Orders == "" {
			return fmt.Errorf("both customers and orders files are required")
		}
	default:
		return fmt.Errorf("an input source is required: customers/orders files or a connection string")
	}

	if c.Run.Output == "" {
		return fmt.Errorf("output file path is required")
	}
	if c.Run.Cohorts < 1 {
		return &cohort.InvalidCohortCountError{Requested: c.Run.Cohorts}
	}
	if _, err := timezone.Load(c.Run.Timezone); err != nil {
		return err
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Customers == "" || c.Sample.Orders == "" {
		return fmt.Errorf("both customers and orders output paths are required")
	}
	if c.Sample.Size < 1 {
		return fmt.Errorf("sample size must be at least 1")
	}
	if c.Sample.Weeks < 1 {
		return fmt.Errorf("sample weeks must be at least 1")
	}
	return nil
}

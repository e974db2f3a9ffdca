package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/timezone"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}

	// Run defaults
	if cfg.Run.Output != "output.csv" {
		t.Errorf("Expected Run.Output 'output.csv', got '%s'", cfg.Run.Output)
	}
	if cfg.Run.Cohorts != 8 {
		t.Errorf("Expected Run.Cohorts 8, got %d", cfg.Run.Cohorts)
	}
	if cfg.Run.Timezone != "US/Pacific" {
		t.Errorf("Expected Run.Timezone 'US/Pacific', got '%s'", cfg.Run.Timezone)
	}
	if cfg.Run.CustomersTable != "customers" {
		t.Errorf("Expected Run.CustomersTable 'customers', got '%s'", cfg.Run.CustomersTable)
	}
	if cfg.Run.OrdersTable != "orders" {
		t.Errorf("Expected Run.OrdersTable 'orders', got '%s'", cfg.Run.OrdersTable)
	}
	if cfg.Run.FirstTime {
		t.Error("Expected Run.FirstTime false")
	}

	// Sample defaults
	if cfg.Sample.Size != 500 {
		t.Errorf("Expected Sample.Size 500, got %d", cfg.Sample.Size)
	}
	if cfg.Sample.Weeks != 12 {
		t.Errorf("Expected Sample.Weeks 12, got %d", cfg.Sample.Weeks)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cohort-report.yaml")
	content := "log_level: debug\nrun:\n  cohorts: 4\n  timezone: UTC\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.Run.Cohorts != 4 {
		t.Errorf("Expected Run.Cohorts 4, got %d", cfg.Run.Cohorts)
	}
	if cfg.Run.Timezone != "UTC" {
		t.Errorf("Expected Run.Timezone 'UTC', got '%s'", cfg.Run.Timezone)
	}
	// Unset fields keep defaults.
	if cfg.Run.Output != "output.csv" {
		t.Errorf("Expected default Run.Output, got '%s'", cfg.Run.Output)
	}
}

func TestValidateRun(t *testing.T) {
	csvRun := func() *Config {
		cfg := DefaultConfig()
		cfg.Run.Customers = "customers.csv"
		cfg.Run.Orders = "orders.csv"
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid csv run",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name: "valid database run",
			mutate: func(c *Config) {
				c.Run.Customers = ""
				c.Run.Orders = ""
				c.Run.Connection = "postgres://localhost/shop"
			},
			wantError: false,
		},
		{
			name: "no input source",
			mutate: func(c *Config) {
				c.Run.Customers = ""
				c.Run.Orders = ""
			},
			wantError: true,
		},
		{
			name: "only one csv file",
			mutate: func(c *Config) {
				c.Run.Orders = ""
			},
			wantError: true,
		},
		{
			name: "csv and database together",
			mutate: func(c *Config) {
				c.Run.Connection = "postgres://localhost/shop"
			},
			wantError: true,
		},
		{
			name: "missing output",
			mutate: func(c *Config) {
				c.Run.Output = ""
			},
			wantError: true,
		},
		{
			name: "missing table names",
			mutate: func(c *Config) {
				c.Run.Customers = ""
				c.Run.Orders = ""
				c.Run.Connection = "postgres://localhost/shop"
				c.Run.CustomersTable = ""
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := csvRun()
			tt.mutate(cfg)
			err := cfg.ValidateRun()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateRunCohortCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		cfg := DefaultConfig()
		cfg.Run.Customers = "customers.csv"
		cfg.Run.Orders = "orders.csv"
		cfg.Run.Cohorts = n

		err := cfg.ValidateRun()
		if err == nil {
			t.Fatalf("Expected error for cohorts=%d, got nil", n)
		}
		var invalid *cohort.InvalidCohortCountError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected InvalidCohortCountError, got %T: %v", err, err)
		}
	}
}

func TestValidateRunTimezone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.Customers = "customers.csv"
	cfg.Run.Orders = "orders.csv"
	cfg.Run.Timezone = "Mars/Olympus_Mons"

	err := cfg.ValidateRun()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	var invalid *timezone.InvalidTimezoneError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidTimezoneError, got %T: %v", err, err)
	}
}

func TestValidateSample(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero size", func(c *Config) { c.Sample.Size = 0 }, true},
		{"zero weeks", func(c *Config) { c.Sample.Weeks = 0 }, true},
		{"missing paths", func(c *Config) { c.Sample.Customers = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.ValidateSample()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

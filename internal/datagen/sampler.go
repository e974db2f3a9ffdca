//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/irynapp/cohort-analysis/internal/loader"
	"github.com/irynapp/cohort-analysis/internal/logging"
)

// SampleConfig controls sample data generation.
type SampleConfig struct {
	// CustomersPath and OrdersPath are the CSV files to write.
	CustomersPath string
	OrdersPath    string

	// Size is the number of customers.
	Size int

	// Weeks is the span of the signup range.
	Weeks int

	// Seed makes generation reproducible when non-zero.
	Seed uint64
}

// SampleStats reports what a generation run produced.
type SampleStats struct {
	Customers int
	Orders    int
}

// orderCounts weights how many orders a sample customer places; most place
// one or two, a long tail places none.
var (
	orderCounts  = []int{0, 1, 2, 3, 4, 5}
	orderWeights = []int{25, 30, 20, 12, 8, 5}
)

// GenerateSample writes well-formed customers and orders CSV files:
// cfg.Size customers signed up over cfg.Weeks weeks, each with a weighted
// number of orders placed between signup and the end of the range.
func GenerateSample(cfg SampleConfig) (SampleStats, error) {
	if cfg.Size < 1 {
		return SampleStats{}, fmt.Errorf("sample size must be at least 1, got %d", cfg.Size)
	}
	if cfg.Weeks < 1 {
		return SampleStats{}, fmt.Errorf("sample weeks must be at least 1, got %d", cfg.Weeks)
	}

	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}

	end := time.Now().UTC().Truncate(time.Hour)
	start := end.Add(-time.Duration(cfg.Weeks) * 7 * 24 * time.Hour)

	customers := [][]string{{"customer_id", "signup_date_utc"}}
	orders := [][]string{{"order_id", "order_number", "customer_id", "order_date_utc"}}

	orderID := 1
	for i := 1; i <= cfg.Size; i++ {
		id := strconv.Itoa(i)
		signup := f.DateRange(start, end)
		customers = append(customers, []string{id, signup.Format(loader.TimeLayout)})

		for n := ChooseWeighted(f, orderCounts, orderWeights); n > 0; n-- {
			ordered := f.DateRange(signup, end)
			orders = append(orders, []string{
				strconv.Itoa(orderID),
				"SO-" + f.Digits(6),
				id,
				ordered.Format(loader.TimeLayout),
			})
			orderID++
		}
	}

	if err := writeCSV(cfg.CustomersPath, customers); err != nil {
		return SampleStats{}, err
	}
	if err := writeCSV(cfg.OrdersPath, orders); err != nil {
		return SampleStats{}, err
	}

	stats := SampleStats{Customers: cfg.Size, Orders: orderID - 1}
	logging.Info().
		Str("customers_file", cfg.CustomersPath).
		Str("orders_file", cfg.OrdersPath).
		Int("customers", stats.Customers).
		Int("orders", stats.Orders).
		Msg("Sample data written")

	return stats, nil
}

func writeCSV(path string, records [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	w := csv.NewWriter(out)
	if err := w.WriteAll(records); err != nil {
		out.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return out.Close()
}

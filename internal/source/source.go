//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package source abstracts where customers and orders come from. The
// pipeline consumes a Source; CSV files and PostgreSQL tables are the two
// implementations.
package source

import (
	"context"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/loader"
)

// Source supplies the two input tables for a report run.
type Source interface {
	Customers(ctx context.Context) (map[string]cohort.Customer, error)
	Orders(ctx context.Context) ([]cohort.Order, error)
}

// CSV loads inputs from delimited files via the loader.
type CSV struct {
	CustomersPath string
	OrdersPath    string
}

// Customers implements Source.
func (s *CSV) Customers(_ context.Context) (map[string]cohort.Customer, error) {
	return loader.LoadCustomers(s.CustomersPath)
}

// Orders implements Source.
func (s *CSV) Orders(_ context.Context) ([]cohort.Order, error) {
	return loader.LoadOrders(s.OrdersPath)
}

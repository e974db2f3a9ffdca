//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irynapp/cohort-analysis/internal/cohort"
)

// Postgres loads inputs from two PostgreSQL tables. The customers table
// needs (customer_id, signup_at) columns, the orders table
// (order_id, order_number, customer_id, ordered_at); timestamps are read
// as timestamptz and normalized to UTC.
type Postgres struct {
	pool           *pgxpool.Pool
	customersTable string
	ordersTable    string
}

// NewPostgres creates a Postgres source over an existing pool.
func NewPostgres(pool *pgxpool.Pool, customersTable, ordersTable string) *Postgres {
	return &Postgres{
		pool:           pool,
		customersTable: customersTable,
		ordersTable:    ordersTable,
	}
}

// Customers implements Source.
func (s *Postgres) Customers(ctx context.Context) (map[string]cohort.Customer, error) {
	sql := fmt.Sprintf(
		"SELECT customer_id, signup_at FROM %s",
		pgx.Identifier{s.customersTable}.Sanitize(),
	)

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := make(map[string]cohort.Customer)
	for rows.Next() {
		var id string
		var signup time.Time
		if err := rows.Scan(&id, &signup); err != nil {
			return nil, fmt.Errorf("scan customers: %w", err)
		}
		customers[id] = cohort.Customer{ID: id, SignupAt: signup.UTC()}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read customers: %w", err)
	}
	return customers, nil
}

// Orders implements Source.
func (s *Postgres) Orders(ctx context.Context) ([]cohort.Order, error) {
	sql := fmt.Sprintf(
		"SELECT order_id, order_number, customer_id, ordered_at FROM %s",
		pgx.Identifier{s.ordersTable}.Sanitize(),
	)

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []cohort.Order
	for rows.Next() {
		var o cohort.Order
		var ordered time.Time
		if err := rows.Scan(&o.ID, &o.Number, &o.CustomerID, &ordered); err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		o.OrderedAt = ordered.UTC()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return orders, nil
}

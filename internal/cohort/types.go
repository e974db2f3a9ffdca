//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package cohort implements the weekly cohort retention computation.
package cohort

import (
	"fmt"
	"time"
)

// Window is the width of a signup cohort and of an elapsed-time bucket.
const Window = 7 * 24 * time.Hour

// Customer is a single row from the customers input, timestamps in UTC.
type Customer struct {
	ID       string
	SignupAt time.Time
}

// Order is a single row from the orders input, timestamps in UTC.
type Order struct {
	ID         string
	Number     string
	CustomerID string
	OrderedAt  time.Time
}

// Cell holds the aggregate counts for one (cohort, bucket) pair.
type Cell struct {
	// Distinct is the number of unique customers in the cohort with at
	// least one order landing in the bucket.
	Distinct int

	// FirstTime is the number of unique customers whose earliest retained
	// order landed in the bucket.
	FirstTime int
}

// Row is the aggregate for one cohort. Cells is indexed by bucket and its
// length equals the number of buckets observable for this cohort's age;
// younger cohorts have shorter rows.
type Row struct {
	// Start and End bound the signup window, [Start, End), in the
	// report's display zone.
	Start time.Time
	End   time.Time

	// Customers is the total number of customers in the cohort, the
	// denominator for percentage columns.
	Customers int

	Cells []Cell
}

// Report is the complete aggregation result. Rows are ordered newest
// cohort first.
type Report struct {
	Rows []Row

	// MaxBuckets is the largest Cells length across rows, i.e. the number
	// of bucket columns the rendered table needs.
	MaxBuckets int

	// Zone is the display timezone all windows were computed in.
	Zone *time.Location
}

// InvalidCohortCountError reports a non-positive requested cohort count.
type InvalidCohortCountError struct {
	Requested int
}

func (e *InvalidCohortCountError) Error() string {
	return fmt.Sprintf("cohort count must be a positive integer, got %d", e.Requested)
}

//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package loader reads customers and orders from delimited files into
// typed in-memory tables. It is a pure format adapter: the customer/order
// join is enforced by the cohort engine, not here.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/logging"
)

// TimeLayout is the timestamp format of both input files; values are UTC.
const TimeLayout = "2006-01-02 15:04:05"

// InputAccessError reports an input file that could not be opened or read.
type InputAccessError struct {
	Path string
	Err  error
}

func (e *InputAccessError) Error() string {
	return fmt.Sprintf("cannot read input file %s: %v", e.Path, e.Err)
}

func (e *InputAccessError) Unwrap() error { return e.Err }

// MalformedInputError reports a structurally invalid row. Structural errors
// are fatal for the whole run; there is no row-level recovery.
type MalformedInputError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// LoadCustomers reads a customers file with rows
// (customer_id, signup_date_utc) and a header line. Duplicate ids keep the
// last row, matching map semantics of the input.
func LoadCustomers(path string) (map[string]cohort.Customer, error) {
	customers := make(map[string]cohort.Customer)

	err := readRows(path, 2, func(line int, rec []string) error {
		id := strings.TrimSpace(rec[0])
		if id == "" {
			return &MalformedInputError{Path: path, Line: line, Reason: "empty customer id"}
		}
		ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(rec[1]), time.UTC)
		if err != nil {
			return &MalformedInputError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("invalid signup timestamp %q", rec[1]),
			}
		}
		customers[id] = cohort.Customer{ID: id, SignupAt: ts}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("file", path).
		Int("customers", len(customers)).
		Msg("Loaded customers")

	return customers, nil
}

// LoadOrders reads an orders file with rows
// (order_id, order_number, customer_id, order_date_utc) and a header line.
func LoadOrders(path string) ([]cohort.Order, error) {
	var orders []cohort.Order

	err := readRows(path, 4, func(line int, rec []string) error {
		customerID := strings.TrimSpace(rec[2])
		if customerID == "" {
			return &MalformedInputError{Path: path, Line: line, Reason: "empty customer id"}
		}
		ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(rec[3]), time.UTC)
		if err != nil {
			return &MalformedInputError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("invalid order timestamp %q", rec[3]),
			}
		}
		orders = append(orders, cohort.Order{
			ID:         strings.TrimSpace(rec[0]),
			Number:     strings.TrimSpace(rec[1]),
			CustomerID: customerID,
			OrderedAt:  ts,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("file", path).
		Int("orders", len(orders)).
		Msg("Loaded orders")

	return orders, nil
}

// readRows streams a CSV file, skips the header line, checks the column
// count and hands each remaining record to fn with its line number.
func readRows(path string, columns int, fn func(line int, rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &InputAccessError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Header line; an empty file simply yields no rows.
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &MalformedInputError{Path: path, Line: 1, Reason: err.Error()}
	}

	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return &MalformedInputError{Path: path, Line: line, Reason: err.Error()}
		}
		if len(rec) != columns {
			return &MalformedInputError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("expected %d columns, got %d", columns, len(rec)),
			}
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package report renders a cohort aggregation into the delimited output
// table.
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/logging"
)

const labelLayout = "01/02"

// Options control optional report columns.
type Options struct {
	// FirstTime adds a first-time-orderers line to every populated cell.
	FirstTime bool
}

// Render turns a Report into the output table, header row first. Cells a
// cohort is too young to have observed render blank, distinguishing "not
// yet observable" from "observed zero". Render is a pure function of its
// input: identical reports produce identical tables.
func Render(rep *cohort.Report, opts Options) [][]string {
	header := []string{"Cohort", "Customers"}
	for b := 0; b < rep.MaxBuckets; b++ {
		header = append(header, fmt.Sprintf("%d-%d days", b*7, b*7+6))
	}

	records := [][]string{header}
	for _, row := range rep.Rows {
		rec := []string{
			formatLabel(row),
			fmt.Sprintf("%d customers", row.Customers),
		}
		for b := 0; b < rep.MaxBuckets; b++ {
			if b >= len(row.Cells) {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, formatCell(row.Cells[b], row.Customers, opts))
		}
		records = append(records, rec)
	}
	return records
}

// WriteCSV writes the rendered table to path. Callers run it only on a
// complete render, so a fatal error earlier in the pipeline never leaves a
// partial report behind.
func WriteCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("cannot write output file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write output file %s: %w", path, err)
	}

	logging.Info().
		Str("file", path).
		Int("cohorts", len(records)-1).
		Msg("Report written")

	return nil
}

// formatLabel renders the signup window as MM/DD-MM/DD with an inclusive
// last day. The last day is derived calendar-wise from Start so that
// windows crossing a DST transition still label all seven days.
func formatLabel(row cohort.Row) string {
	last := row.Start.AddDate(0, 0, 6)
	return row.Start.Format(labelLayout) + "-" + last.Format(labelLayout)
}

func formatCell(cell cohort.Cell, total int, opts Options) string {
	s := fmt.Sprintf("%s%% orderers (%d)", FormatPercent(cell.Distinct, total), cell.Distinct)
	if opts.FirstTime {
		s += fmt.Sprintf("\n%s%% 1st time (%d)", FormatPercent(cell.FirstTime, total), cell.FirstTime)
	}
	return s
}

// FormatPercent renders count/total as a percentage with exactly two
// decimal places, rounded half up. The arithmetic stays in integers so
// ties never reach the float formatter (3 of 151 is "1.99", not "2").
func FormatPercent(count, total int) string {
	if total <= 0 {
		return "0.00"
	}
	// Hundredths of a percent, rounded half up.
	p := (count*20000 + total) / (2 * total)
	return fmt.Sprintf("%d.%02d", p/100, p%100)
}

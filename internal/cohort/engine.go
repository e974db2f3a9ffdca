//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package cohort

import (
	"sort"
	"time"

	"github.com/irynapp/cohort-analysis/internal/logging"
)

// Compute joins orders to customers, buckets them into weekly signup
// cohorts and 7-day elapsed-time buckets, and aggregates distinct-customer
// counts per (cohort, bucket).
//
// All timestamps are converted to loc before any window arithmetic. The
// weekly window grid is anchored at the earliest signup; when requested is
// smaller than the number of windows in the signup range, the newest
// windows are kept. Orders referencing unknown customers and orders placed
// before their customer's signup are dropped, never fatal.
func Compute(customers map[string]Customer, orders []Order, loc *time.Location, requested int) (*Report, error) {
	if requested <= 0 {
		return nil, &InvalidCohortCountError{Requested: requested}
	}
	if loc == nil {
		loc = time.UTC
	}
	if len(customers) == 0 {
		return &Report{Zone: loc}, nil
	}

	// Convert signups up front and find the signup range.
	signups := make(map[string]time.Time, len(customers))
	var minSignup, maxSignup time.Time
	for id, c := range customers {
		ts := c.SignupAt.In(loc)
		signups[id] = ts
		if minSignup.IsZero() || ts.Before(minSignup) {
			minSignup = ts
		}
		if maxSignup.IsZero() || ts.After(maxSignup) {
			maxSignup = ts
		}
	}

	// Window w covers [min+w*7d, min+(w+1)*7d). The latest signup pins the
	// total window count, so every customer has a window.
	total := int(maxSignup.Sub(minSignup)/Window) + 1
	produced := requested
	if produced > total {
		produced = total
	}
	oldest := total - produced

	// Kept cohorts indexed oldest first; a cohort with window index w can
	// observe total-w buckets before running past the signup range.
	sizes := make([]int, produced)
	distinct := make([][]map[string]struct{}, produced)
	firstTime := make([][]map[string]struct{}, produced)
	for k := range distinct {
		n := total - (oldest + k)
		distinct[k] = make([]map[string]struct{}, n)
		firstTime[k] = make([]map[string]struct{}, n)
		for b := 0; b < n; b++ {
			distinct[k][b] = make(map[string]struct{})
			firstTime[k][b] = make(map[string]struct{})
		}
	}

	cohortOf := make(map[string]int, len(signups))
	clamped := 0
	for id, ts := range signups {
		w := int(ts.Sub(minSignup) / Window)
		if w < oldest {
			clamped++
			continue
		}
		cohortOf[id] = w - oldest
		sizes[w-oldest]++
	}
	if clamped > 0 {
		logging.Debug().
			Int("customers", clamped).
			Int("requested_cohorts", requested).
			Msg("Customers outside the reported cohort range")
	}

	// Group retained orders per customer; orphans are a data-quality note,
	// not an error.
	byCustomer := make(map[string][]time.Time)
	orphans := 0
	for _, o := range orders {
		if _, ok := signups[o.CustomerID]; !ok {
			orphans++
			continue
		}
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o.OrderedAt.In(loc))
	}
	if orphans > 0 {
		logging.Info().
			Int("orders", orphans).
			Msg("Dropped orders referencing unknown customers")
	}

	for id, times := range byCustomer {
		k, ok := cohortOf[id]
		if !ok {
			continue
		}
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
		signup := signups[id]
		avail := len(distinct[k])
		first := true
		for _, ts := range times {
			elapsed := ts.Sub(signup)
			if elapsed < 0 {
				// Order before signup: data anomaly, excluded.
				continue
			}
			b := int(elapsed / Window)
			if b >= avail {
				// Beyond the observable horizon; times are sorted, so the
				// rest are too.
				break
			}
			if first {
				firstTime[k][b][id] = struct{}{}
				first = false
			}
			distinct[k][b][id] = struct{}{}
		}
	}

	// Emit rows newest cohort first.
	rows := make([]Row, 0, produced)
	maxBuckets := 0
	for k := produced - 1; k >= 0; k-- {
		start := minSignup.Add(time.Duration(oldest+k) * Window)
		cells := make([]Cell, len(distinct[k]))
		for b := range cells {
			cells[b] = Cell{
				Distinct:  len(distinct[k][b]),
				FirstTime: len(firstTime[k][b]),
			}
		}
		if len(cells) > maxBuckets {
			maxBuckets = len(cells)
		}
		rows = append(rows, Row{
			Start:     start,
			End:       start.Add(Window),
			Customers: sizes[k],
			Cells:     cells,
		})
	}

	logging.Debug().
		Int("cohorts", len(rows)).
		Int("buckets", maxBuckets).
		Time("min_signup", minSignup).
		Time("max_signup", maxSignup).
		Msg("Cohort aggregation complete")

	return &Report{Rows: rows, MaxBuckets: maxBuckets, Zone: loc}, nil
}

//-------------------------------------------------------------------------
//
// Cohort Retention Report
//
// Copyright (c) 2025 - 2026, the cohort-analysis authors
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package timezone resolves display timezone identifiers against the IANA
// database embedded in the binary, so reports come out the same on hosts
// without a system zoneinfo directory.
package timezone

import (
	"fmt"
	"sort"
	"strings"
	"time"

	// Embed the IANA timezone database.
	_ "time/tzdata"
)

// InvalidTimezoneError reports an identifier the timezone database does
// not know, with catalog entries that look close to what was asked for.
type InvalidTimezoneError struct {
	Name        string
	Suggestions []string
}

func (e *InvalidTimezoneError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown timezone %q; see 'cohort-report zones' for the catalog", e.Name)
	}
	return fmt.Sprintf("unknown timezone %q; did you mean one of %s?",
		e.Name, strings.Join(e.Suggestions, ", "))
}

// Load resolves a timezone identifier.
func Load(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &InvalidTimezoneError{Name: name, Suggestions: suggest(name)}
	}
	return loc, nil
}

// Catalog returns the curated list of common timezone identifiers, sorted.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	sort.Strings(out)
	return out
}

// suggest returns up to five catalog entries sharing a name component with
// the unknown identifier.
func suggest(name string) []string {
	parts := strings.Split(strings.ToLower(name), "/")
	needle := parts[len(parts)-1]
	if needle == "" {
		return nil
	}

	var hits []string
	for _, zone := range Catalog() {
		if strings.Contains(strings.ToLower(zone), needle) {
			hits = append(hits, zone)
			if len(hits) == 5 {
				break
			}
		}
	}
	return hits
}

// catalog mirrors the commonly used subset of the IANA database, including
// the legacy US/* aliases the default configuration relies on.
var catalog = []string{
	"UTC",
	"US/Eastern",
	"US/Central",
	"US/Mountain",
	"US/Pacific",
	"US/Alaska",
	"US/Hawaii",
	"US/Arizona",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Phoenix",
	"America/Los_Angeles",
	"America/Anchorage",
	"America/Toronto",
	"America/Vancouver",
	"America/Winnipeg",
	"America/Halifax",
	"America/St_Johns",
	"America/Mexico_City",
	"America/Bogota",
	"America/Lima",
	"America/Caracas",
	"America/Santiago",
	"America/Sao_Paulo",
	"America/Argentina/Buenos_Aires",
	"Europe/London",
	"Europe/Dublin",
	"Europe/Lisbon",
	"Europe/Madrid",
	"Europe/Paris",
	"Europe/Brussels",
	"Europe/Amsterdam",
	"Europe/Berlin",
	"Europe/Zurich",
	"Europe/Rome",
	"Europe/Vienna",
	"Europe/Prague",
	"Europe/Warsaw",
	"Europe/Stockholm",
	"Europe/Oslo",
	"Europe/Copenhagen",
	"Europe/Helsinki",
	"Europe/Athens",
	"Europe/Bucharest",
	"Europe/Kyiv",
	"Europe/Istanbul",
	"Europe/Moscow",
	"Africa/Cairo",
	"Africa/Lagos",
	"Africa/Nairobi",
	"Africa/Johannesburg",
	"Africa/Casablanca",
	"Asia/Jerusalem",
	"Asia/Dubai",
	"Asia/Riyadh",
	"Asia/Tehran",
	"Asia/Karachi",
	"Asia/Kolkata",
	"Asia/Dhaka",
	"Asia/Bangkok",
	"Asia/Jakarta",
	"Asia/Singapore",
	"Asia/Kuala_Lumpur",
	"Asia/Manila",
	"Asia/Hong_Kong",
	"Asia/Shanghai",
	"Asia/Taipei",
	"Asia/Seoul",
	"Asia/Tokyo",
	"Australia/Perth",
	"Australia/Adelaide",
	"Australia/Brisbane",
	"Australia/Sydney",
	"Australia/Melbourne",
	"Pacific/Auckland",
	"Pacific/Fiji",
	"Pacific/Honolulu",
	"Pacific/Guam",
}

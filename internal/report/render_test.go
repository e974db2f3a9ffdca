package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/timezone"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name  string
		count int
		total int
		want  string
	}{
		{"whole cohort", 1, 1, "100.00"},
		{"half", 1, 2, "50.00"},
		{"third rounds down", 1, 3, "33.33"},
		{"two thirds rounds up", 2, 3, "66.67"},
		{"3 of 151 rounds half up", 3, 151, "1.99"},
		{"tie rounds up", 1, 4000, "0.03"},
		{"zero count", 0, 42, "0.00"},
		{"zero total", 1, 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPercent(tt.count, tt.total); got != tt.want {
				t.Errorf("FormatPercent(%d, %d) = %q, want %q",
					tt.count, tt.total, got, tt.want)
			}
		})
	}
}

func testReport() *cohort.Report {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour
	return &cohort.Report{
		Zone:       time.UTC,
		MaxBuckets: 2,
		Rows: []cohort.Row{
			{
				Start:     start.Add(week),
				End:       start.Add(2 * week),
				Customers: 2,
				Cells:     []cohort.Cell{{Distinct: 1, FirstTime: 1}},
			},
			{
				Start:     start,
				End:       start.Add(week),
				Customers: 3,
				Cells: []cohort.Cell{
					{Distinct: 2, FirstTime: 2},
					{Distinct: 0, FirstTime: 0},
				},
			},
		},
	}
}

func TestRender(t *testing.T) {
	records := Render(testReport(), Options{})

	want := [][]string{
		{"Cohort", "Customers", "0-6 days", "7-13 days"},
		{"01/08-01/14", "2 customers", "50.00% orderers (1)", ""},
		{"01/01-01/07", "3 customers", "66.67% orderers (2)", "0.00% orderers (0)"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Render mismatch:\ngot  %v\nwant %v", records, want)
	}
}

func TestRenderFirstTime(t *testing.T) {
	records := Render(testReport(), Options{FirstTime: true})

	got := records[2][2]
	want := "66.67% orderers (2)\n66.67% 1st time (2)"
	if got != want {
		t.Errorf("Expected cell %q, got %q", want, got)
	}
	// Blank cells stay blank in first-time mode.
	if records[1][3] != "" {
		t.Errorf("Expected blank unobservable cell, got %q", records[1][3])
	}
}

func TestRenderBlankVersusZero(t *testing.T) {
	records := Render(testReport(), Options{})

	// The younger cohort has not aged into bucket 1: blank, not zero.
	if records[1][3] != "" {
		t.Errorf("Expected blank cell for unobservable bucket, got %q", records[1][3])
	}
	// The older cohort observed bucket 1 with no orders: an explicit zero.
	if records[2][3] != "0.00% orderers (0)" {
		t.Errorf("Expected measured-zero cell, got %q", records[2][3])
	}
}

func TestFormatLabelAcrossDSTFallBack(t *testing.T) {
	loc, err := timezone.Load("US/Pacific")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// A 168h window starting 2020-10-30 spans the Nov 1 fall-back
	// transition, so End lands at 23:00 of Nov 5. The label must still
	// cover all seven calendar days.
	start := time.Date(2020, 10, 30, 0, 0, 0, 0, loc)
	row := cohort.Row{Start: start, End: start.Add(7 * 24 * time.Hour)}

	if got := formatLabel(row); got != "10/30-11/05" {
		t.Errorf("Expected label '10/30-11/05', got %q", got)
	}
}

func TestRenderEmptyReport(t *testing.T) {
	records := Render(&cohort.Report{Zone: time.UTC}, Options{})

	if len(records) != 1 {
		t.Fatalf("Expected header only, got %d records", len(records))
	}
	want := []string{"Cohort", "Customers"}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("Expected header %v, got %v", want, records[0])
	}
}

func TestRenderIdempotent(t *testing.T) {
	rep := testReport()
	first := Render(rep, Options{FirstTime: true})
	for i := 0; i < 3; i++ {
		if again := Render(rep, Options{FirstTime: true}); !reflect.DeepEqual(first, again) {
			t.Fatal("Render is not deterministic for identical input")
		}
	}
}

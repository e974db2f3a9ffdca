package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/irynapp/cohort-analysis/internal/cohort"
	"github.com/irynapp/cohort-analysis/internal/db"
	"github.com/irynapp/cohort-analysis/internal/logging"
	"github.com/irynapp/cohort-analysis/internal/report"
	"github.com/irynapp/cohort-analysis/internal/source"
	"github.com/irynapp/cohort-analysis/internal/timezone"
)

var (
	runCustomers      string
	runOrders         string
	runConnection     string
	runCustomersTable string
	runOrdersTable    string
	runOutput         string
	runCohorts        int
	runTimezone       string
	runFirstTime      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute a cohort retention report",
	Long: `Compute the weekly cohort retention report and write it as CSV.

Inputs come either from two CSV files (--customers, --orders) or from two
PostgreSQL tables (--connection with --customers-table/--orders-table);
the two source kinds are mutually exclusive.

Example:
  cohort-report run --customers customers.csv --orders orders.csv
  cohort-report run --customers customers.csv --orders orders.csv --cohorts 12 --timezone US/Eastern
  cohort-report run --connection "postgres://localhost/shop" --output retention.csv`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runCustomers, "customers", "",
		"customers CSV file (customer_id, signup_date_utc)")
	runCmd.Flags().StringVar(&runOrders, "orders", "",
		"orders CSV file (order_id, order_number, customer_id, order_date_utc)")
	runCmd.Flags().StringVar(&runConnection, "connection", "",
		"PostgreSQL connection string (alternative to CSV inputs)")
	runCmd.Flags().StringVar(&runCustomersTable, "customers-table", "",
		"customers table name (with --connection)")
	runCmd.Flags().StringVar(&runOrdersTable, "orders-table", "",
		"orders table name (with --connection)")
	runCmd.Flags().StringVar(&runOutput, "output", "",
		"output CSV file")
	runCmd.Flags().IntVar(&runCohorts, "cohorts", 0,
		"number of weekly cohorts to report")
	runCmd.Flags().StringVar(&runTimezone, "timezone", "",
		"display timezone for cohort windows (see 'cohort-report zones')")
	runCmd.Flags().BoolVar(&runFirstTime, "first-time", false,
		"add first-time-orderer lines to report cells")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runCustomers != "" {
		cfg.Run.Customers = runCustomers
	}
	if runOrders != "" {
		cfg.Run.Orders = runOrders
	}
	if runConnection != "" {
		cfg.Run.Connection = runConnection
	}
	if runCustomersTable != "" {
		cfg.Run.CustomersTable = runCustomersTable
	}
	if runOrdersTable != "" {
		cfg.Run.OrdersTable = runOrdersTable
	}
	if runOutput != "" {
		cfg.Run.Output = runOutput
	}
	// An explicit --cohorts 0 must fail validation rather than fall back
	// to the config default.
	if cmd.Flags().Changed("cohorts") {
		cfg.Run.Cohorts = runCohorts
	}
	if runTimezone != "" {
		cfg.Run.Timezone = runTimezone
	}
	if runFirstTime {
		cfg.Run.FirstTime = true
	}

	// Validate configuration; every fatal condition surfaces before any
	// input is read or output written.
	if err := cfg.ValidateRun(); err != nil {
		return err
	}
	loc, err := timezone.Load(cfg.Run.Timezone)
	if err != nil {
		return err
	}

	ctx := context.Background()
	src, cleanup, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	customers, err := src.Customers(ctx)
	if err != nil {
		return err
	}
	orders, err := src.Orders(ctx)
	if err != nil {
		return err
	}

	logging.Info().
		Int("customers", len(customers)).
		Int("orders", len(orders)).
		Str("timezone", cfg.Run.Timezone).
		Int("requested_cohorts", cfg.Run.Cohorts).
		Msg("Computing cohort report")

	rep, err := cohort.Compute(customers, orders, loc, cfg.Run.Cohorts)
	if err != nil {
		return err
	}

	records := report.Render(rep, report.Options{FirstTime: cfg.Run.FirstTime})
	return report.WriteCSV(cfg.Run.Output, records)
}

// openSource builds the configured input source. The cleanup func closes
// the database pool for the PostgreSQL source and is a no-op for CSV.
func openSource(ctx context.Context) (source.Source, func(), error) {
	if cfg.Run.Connection == "" {
		src := &source.CSV{
			CustomersPath: cfg.Run.Customers,
			OrdersPath:    cfg.Run.Orders,
		}
		return src, func() {}, nil
	}

	pool, err := db.Connect(ctx, cfg.Run.Connection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	src := source.NewPostgres(pool, cfg.Run.CustomersTable, cfg.Run.OrdersTable)
	return src, pool.Close, nil
}

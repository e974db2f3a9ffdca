package cli

import (
	"github.com/spf13/cobra"

	"github.com/irynapp/cohort-analysis/internal/datagen"
)

var (
	sampleCustomers string
	sampleOrders    string
	sampleSize      int
	sampleWeeks     int
	sampleSeed      uint64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate sample customers and orders files",
	Long: `Generate well-formed sample input files for trying out the report
pipeline. Customers sign up across the configured number of weeks and place
a weighted number of orders between signup and the end of the range.

Example:
  cohort-report sample --size 1000 --weeks 16
  cohort-report sample --seed 42 --customers c.csv --orders o.csv`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleCustomers, "customers", "",
		"customers CSV file to write")
	sampleCmd.Flags().StringVar(&sampleOrders, "orders", "",
		"orders CSV file to write")
	sampleCmd.Flags().IntVar(&sampleSize, "size", 0,
		"number of customers to generate")
	sampleCmd.Flags().IntVar(&sampleWeeks, "weeks", 0,
		"signup range span in weeks")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
}

func runSample(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if sampleCustomers != "" {
		cfg.Sample.Customers = sampleCustomers
	}
	if sampleOrders != "" {
		cfg.Sample.Orders = sampleOrders
	}
	if sampleSize > 0 {
		cfg.Sample.Size = sampleSize
	}
	if sampleWeeks > 0 {
		cfg.Sample.Weeks = sampleWeeks
	}
	if sampleSeed != 0 {
		cfg.Sample.Seed = sampleSeed
	}

	if err := cfg.ValidateSample(); err != nil {
		return err
	}

	_, err := datagen.GenerateSample(datagen.SampleConfig{
		CustomersPath: cfg.Sample.Customers,
		OrdersPath:    cfg.Sample.Orders,
		Size:          cfg.Sample.Size,
		Weeks:         cfg.Sample.Weeks,
		Seed:          cfg.Sample.Seed,
	})
	return err
}

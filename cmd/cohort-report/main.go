// Package main is the entry point for cohort-report.
package main

import (
	"fmt"
	"os"

	"github.com/irynapp/cohort-analysis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

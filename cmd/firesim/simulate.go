package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/config"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/output"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/tui"
)

var (
	simYears      int
	simTrials     int
	simBalance    float64
	simWithdrawal float64
	simSeed       int64
	simFormat     string
	simPlain      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo retirement simulation",
	Long:  "Runs N random multi-asset return paths over the retirement horizon and reports success rate, percentile bands and the final-value distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		params := parametersFromFlags(cmd, settings)
		logger := newLogger()
		logger.Debugf("running %d trials over %d years", params.NumSimulations, params.RetirementYears)

		engineConfig := settings.EngineConfig()
		if cmd.Flags().Changed("seed") {
			engineConfig.Seed = simSeed
		}

		formatter, err := output.NewFormatter(simFormat)
		if err != nil {
			return err
		}

		var results *simulation.Results
		if simPlain || simFormat == "csv" || simFormat == "json" {
			results, err = simulation.NewEngine(engineConfig).Run(cmd.Context(), params)
		} else {
			results, err = tui.Run(cmd.Context(), engineConfig, params)
		}
		if err != nil {
			return err
		}

		if simFormat == "" || simFormat == "table" {
			if !simPlain {
				fmt.Println(tui.SummaryBanner(results))
				fmt.Println()
			}
		}

		rendered, err := formatter.FormatResults(params, results)
		if err != nil {
			return err
		}

		if simFormat == "markdown" && !simPlain {
			pretty, err := glamour.Render(rendered, "dark")
			if err == nil {
				rendered = pretty
			}
		}

		fmt.Fprint(os.Stdout, rendered)
		return nil
	},
}

// parametersFromFlags layers explicit flags over the settings file.
func parametersFromFlags(cmd *cobra.Command, settings *config.Settings) simulation.Parameters {
	params := settings.ToParameters()

	if cmd.Flags().Changed("years") {
		params.RetirementYears = simYears
	}
	if cmd.Flags().Changed("trials") {
		params.NumSimulations = simTrials
	}
	if cmd.Flags().Changed("balance") {
		params.InitialPortfolio = decimal.NewFromFloat(simBalance)
	}
	if cmd.Flags().Changed("withdrawal") {
		params.AnnualWithdrawal = decimal.NewFromFloat(simWithdrawal)
	}

	return params
}

func init() {
	simulateCmd.Flags().IntVarP(&simYears, "years", "y", 30, "retirement horizon in years")
	simulateCmd.Flags().IntVarP(&simTrials, "trials", "t", 10000, "number of simulation trials")
	simulateCmd.Flags().Float64VarP(&simBalance, "balance", "b", 1000000, "initial portfolio value")
	simulateCmd.Flags().Float64VarP(&simWithdrawal, "withdrawal", "w", 40000, "gross annual withdrawal in year 1")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed for reproducible runs (0 = fresh entropy)")
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "table", "output format: table, csv, json, markdown")
	simulateCmd.Flags().BoolVar(&simPlain, "plain", false, "disable the progress display and styled output")
}

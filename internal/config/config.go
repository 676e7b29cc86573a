// Package config loads simulation settings from YAML files: default asset
// allocation, per-class market assumptions, withdrawal policy, simulation
// defaults and scenario presets. It plays the role of the settings store the
// engine's callers read their defaults from.
package config

import (
	"fmt"
	"os"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PortfolioSettings seeds the initial capital. In the full application this
// value comes from the portfolio valuation service; standalone runs read it
// from the file or a flag.
type PortfolioSettings struct {
	InitialValue decimal.Decimal `yaml:"initial_value"`
}

// WithdrawalSettings describes the withdrawal policy.
type WithdrawalSettings struct {
	AnnualAmount decimal.Decimal                 `yaml:"annual_amount"`
	Adjustment   simulation.WithdrawalAdjustment `yaml:"adjustment"`
}

// SimulationSettings holds run-shape defaults.
type SimulationSettings struct {
	RetirementYears int   `yaml:"retirement_years"`
	NumSimulations  int   `yaml:"num_simulations"`
	Seed            int64 `yaml:"seed"`
	Workers         int   `yaml:"workers"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Settings is the root of the YAML settings file.
type Settings struct {
	Portfolio  PortfolioSettings            `yaml:"portfolio"`
	Withdrawal WithdrawalSettings           `yaml:"withdrawal"`
	Inflation  decimal.Decimal              `yaml:"inflation_rate"`
	Allocation simulation.Allocation        `yaml:"allocation"`
	Market     simulation.MarketAssumptions `yaml:"market"`
	Simulation SimulationSettings           `yaml:"simulation"`
	Scenarios  []scenario.Definition        `yaml:"scenarios"`
	Server     ServerSettings               `yaml:"server"`
}

// DefaultSettings returns the spec's reference configuration: a $1M 60/40
// portfolio drawing an inflation-adjusted $40K per year for 30 years.
func DefaultSettings() *Settings {
	return &Settings{
		Portfolio: PortfolioSettings{
			InitialValue: decimal.NewFromInt(1000000),
		},
		Withdrawal: WithdrawalSettings{
			AnnualAmount: decimal.NewFromInt(40000),
			Adjustment:   simulation.WithdrawalInflation,
		},
		Inflation: decimal.NewFromInt(2),
		Allocation: simulation.Allocation{
			Equity: decimal.NewFromInt(60),
			Bonds:  decimal.NewFromInt(40),
		},
		Market: simulation.MarketAssumptions{
			Equity: simulation.ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(7),
				Volatility:     decimal.NewFromInt(18),
			},
			Bonds: simulation.ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(3),
				Volatility:     decimal.NewFromInt(6),
			},
			RealEstate: simulation.ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(5),
				Volatility:     decimal.NewFromInt(12),
			},
			Commodities: simulation.ClassAssumptions{
				ExpectedReturn: decimal.NewFromInt(4),
				Volatility:     decimal.NewFromInt(15),
			},
		},
		Simulation: SimulationSettings{
			RetirementYears: 30,
			NumSimulations:  10000,
		},
		Scenarios: scenario.Presets(),
		Server: ServerSettings{
			ListenAddr: ":8080",
		},
	}
}

// InputParser handles parsing of settings files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads a YAML settings file over the defaults: fields absent
// from the file keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.validate(settings); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return settings, nil
}

// validate rejects structurally broken files early; the full parameter
// validation still happens inside the engine.
func (ip *InputParser) validate(settings *Settings) error {
	if settings.Simulation.RetirementYears <= 0 {
		return fmt.Errorf("simulation.retirement_years must be positive")
	}
	if settings.Simulation.NumSimulations <= 0 {
		return fmt.Errorf("simulation.num_simulations must be positive")
	}

	names := make(map[string]bool, len(settings.Scenarios))
	for _, def := range settings.Scenarios {
		if def.Name == "" {
			return fmt.Errorf("scenario definitions need a name")
		}
		if names[def.Name] {
			return fmt.Errorf("duplicate scenario %q", def.Name)
		}
		names[def.Name] = true
	}

	return nil
}

// ToParameters assembles the engine parameter set from the settings.
func (s *Settings) ToParameters() simulation.Parameters {
	return simulation.Parameters{
		InitialPortfolio:     s.Portfolio.InitialValue,
		RetirementYears:      s.Simulation.RetirementYears,
		Allocation:           s.Allocation,
		AnnualWithdrawal:     s.Withdrawal.AnnualAmount,
		WithdrawalAdjustment: s.Withdrawal.Adjustment,
		Market:               s.Market,
		InflationRate:        s.Inflation,
		NumSimulations:       s.Simulation.NumSimulations,
	}
}

// EngineConfig assembles the engine knobs from the settings.
func (s *Settings) EngineConfig() simulation.EngineConfig {
	return simulation.EngineConfig{
		Seed:    s.Simulation.Seed,
		Workers: s.Simulation.Workers,
	}
}
